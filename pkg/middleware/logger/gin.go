package logger

import (
	"time"

	"github.com/gin-gonic/gin"
)

// LogWithWriter logs one line per request. 5xx responses log at error level.
func LogWithWriter() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		ctx := c.Request.Context()
		switch {
		case status >= 500:
			Errorf(ctx, "%s %s %d %s %s errs: %s", c.Request.Method, path, status, latency, c.ClientIP(), c.Errors.String())
		case len(c.Errors) > 0:
			Warnf(ctx, "%s %s %d %s %s errs: %s", c.Request.Method, path, status, latency, c.ClientIP(), c.Errors.String())
		default:
			Infof(ctx, "%s %s %d %s %s", c.Request.Method, path, status, latency, c.ClientIP())
		}
	}
}
