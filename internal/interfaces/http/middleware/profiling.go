package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/propmanager/backend/internal/infrastructure/telemetry"
)

// Profiling attaches pyroscope labels to the rest of the chain: method,
// matched route, resource and caller role. Mount it after JWTAuth so the
// role is known.
func Profiling() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		labels := map[string]string{
			telemetry.ProfilingLabelMethod:   c.Request.Method,
			telemetry.ProfilingLabelRoute:    route,
			telemetry.ProfilingLabelResource: resourceFromRoute(route),
			telemetry.ProfilingLabelRole:     GetRole(c).String(),
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// resourceFromRoute returns the first path segment after the API prefix,
// e.g. "/api/v1/properties/:id" -> "properties".
func resourceFromRoute(route string) string {
	rest := strings.TrimPrefix(route, "/api")
	rest = strings.TrimPrefix(rest, "/v1")
	rest = strings.TrimPrefix(rest, "/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	if strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, "*") {
		return ""
	}
	return rest
}
