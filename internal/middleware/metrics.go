package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"trip-roster-api/internal/metrics"
)

// unmatchedRoute labels requests no route matched, keeping label cardinality
// bounded against path scans
const unmatchedRoute = "unmatched"

// Metrics records count and latency per route pattern. Probe and scrape
// endpoints are not recorded.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics.ShouldSkipEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
