package middleware

import (
	"github.com/gin-gonic/gin"
)

// unmatchedRoute labels requests that hit no registered route so 404 scans
// cannot blow up label cardinality.
const unmatchedRoute = "unmatched"

// RequestRecorder starts timing a request and returns the function that records its outcome
type RequestRecorder interface {
	HTTPStarted() func(method, route string, status int)
}

// Metrics records request count, latency and in-flight gauge per route template
func Metrics(rec RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		done := rec.HTTPStarted()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		done(c.Request.Method, route, c.Writer.Status())
	}
}
