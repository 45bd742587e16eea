package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bimbel-api/internal/service"
)

// roleAnonymous labels requests that never resolved a session user.
const roleAnonymous = "anonymous"

// Metrics returns middleware that captures request metrics using the provided service. Each
// request is also counted by the role of the session user and by its access outcome. Paths in
// skip, such as health checks and the scrape endpoint, are not observed.
func Metrics(metricsSvc *service.MetricsService, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		if _, ok := skipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, status, duration)

		role := roleAnonymous
		if user := CurrentUser(c); user != nil {
			role = string(user.Role)
		}
		metricsSvc.ObserveAccess(role, accessOutcome(status))
	}
}

func accessOutcome(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return service.AccessUnauthenticated
	case status == http.StatusForbidden:
		return service.AccessForbidden
	case status >= http.StatusInternalServerError:
		return service.AccessFailed
	default:
		return service.AccessAllowed
	}
}
