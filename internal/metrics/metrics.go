package metrics

import (
	"regexp"
	"strconv"

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

	// PostsTotal is the number of stored posts, refreshed periodically from the DB.
	PostsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "blog_posts_total",
			Help: "Number of stored blog posts",
		},
	)

	// LikesTotal is the sum of like counts across all posts.
	LikesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "blog_likes_total",
			Help: "Sum of like counts across all blog posts",
		},
	)
)

var numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, PostsTotal, LikesTotal)
}

// NormalizePath reduces label cardinality by replacing numeric path segments
// with {id}. E.g. /posts/123 -> /posts/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for one HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// SetBlogGauges updates the post and like gauges.
func SetBlogGauges(posts, likes int) {
	PostsTotal.Set(float64(posts))
	LikesTotal.Set(float64(likes))
}
