package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// Iterations is the PBKDF2 work factor for newly hashed passwords.
	// Stored hashes embed their own iteration count, so this can be raised
	// without invalidating existing credentials.
	Iterations = 600000

	saltLength = 16
	keyLength  = 32
)

var (
	ErrPasswordMismatch = errors.New("password does not match")
	ErrMalformedHash    = errors.New("malformed password hash")
)

const saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// HashPassword derives a salted PBKDF2-HMAC-SHA256 hash and encodes it as
// "pbkdf2:sha256:<iterations>$<salt>$<hexdigest>". The plaintext is never
// stored anywhere.
func HashPassword(plaintext string) (string, error) {
	salt, err := randomSalt(saltLength)
	if err != nil {
		return "", fmt.Errorf("auth: generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(plaintext), []byte(salt), Iterations, keyLength, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", Iterations, salt, hex.EncodeToString(key)), nil
}

// CheckPassword re-derives the hash from the stored salt and iteration count
// and compares digests in constant time. Returns ErrPasswordMismatch when the
// plaintext does not match, ErrMalformedHash when the stored value cannot be
// parsed.
func CheckPassword(stored, plaintext string) error {
	method, salt, digest, ok := splitHash(stored)
	if !ok {
		return ErrMalformedHash
	}

	parts := strings.Split(method, ":")
	if len(parts) != 3 || parts[0] != "pbkdf2" || parts[1] != "sha256" {
		return ErrMalformedHash
	}
	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations <= 0 {
		return ErrMalformedHash
	}

	want, err := hex.DecodeString(digest)
	if err != nil || len(want) == 0 {
		return ErrMalformedHash
	}

	got := pbkdf2.Key([]byte(plaintext), []byte(salt), iterations, len(want), sha256.New)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

// splitHash breaks "method$salt$digest" into its parts.
func splitHash(stored string) (method, salt, digest string, ok bool) {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

func randomSalt(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = saltAlphabet[int(b)%len(saltAlphabet)]
	}
	return string(buf), nil
}
