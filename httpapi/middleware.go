package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// requestLogger logs one entry per request. Server errors are logged at error
// level together with the errors attached to the gin context.
func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()

		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"client_ip":   c.ClientIP(),
			"duration_ns": time.Since(begin).Nanoseconds(),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
		})

		if len(c.Errors) > 0 {
			entry = entry.WithField("err", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request")
		default:
			entry.Info("request")
		}
	}
}
