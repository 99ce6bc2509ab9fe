// Package session binds a logged-in user to the browser through a signed
// HttpOnly cookie. The cookie value is an HMAC-SHA256 JWT carrying the user
// id; nothing is stored server-side.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/parvez-irfan/BlogSite/internal/models"
)

// CookieName is the session cookie set after register/login.
const CookieName = "blogsite_session"

var ErrNoSession = errors.New("session: no valid session")

// ==========================
// Manager
// ==========================
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewManager(secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, secure: secure}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a session token for user and sets it as the session cookie.
func (m *Manager) Issue(w http.ResponseWriter, user *models.User) error {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"jti":     uuid.New().String(),
		"exp":     time.Now().Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserID returns the user id bound to the request's session cookie, or
// ErrNoSession when the cookie is absent, expired, or tampered with.
func (m *Manager) UserID(r *http.Request) (int, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return 0, ErrNoSession
	}

	token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrNoSession
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrNoSession
	}
	return int(id), nil
}
