package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// PostsCreated counts blog posts accepted by the submission pipeline.
	PostsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_posts_created_total",
			Help: "Total number of blog posts created",
		},
	)

	// CommentsCreated counts comments accepted by the submission pipeline.
	CommentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_comments_created_total",
			Help: "Total number of comments created",
		},
	)

	// LoginsTotal counts login attempts by result (success, not_found, bad_password).
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_logins_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, PostsCreated, CommentsCreated, LoginsTotal)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /post/123 -> /post/{id}, /edit-post/45 -> /edit-post/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncPostsCreated increments the created-posts counter.
func IncPostsCreated() {
	PostsCreated.Inc()
}

// IncCommentsCreated increments the created-comments counter.
func IncCommentsCreated() {
	CommentsCreated.Inc()
}

// IncLogins increments the login counter for the given result (success, not_found, bad_password).
func IncLogins(result string) {
	LoginsTotal.WithLabelValues(result).Inc()
}
