package server

import (
	"annotator/controllers"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	uuid "github.com/twinj/uuid"
)

// corsMiddleware allows any origin to call the API with GET and POST.
// TODO: take the allowed origins from the config once the service runs behind a public hostname.
func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "X-Request-Id"},
		ExposeHeaders:   []string{"X-Request-Id"},
		MaxAge:          12 * time.Hour,
	})
}

// requestIDMiddleware attaches an id to each request, reusing the X-Request-Id header when the
// client sent one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewV4().String()
		}
		c.Set(controllers.RequestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// loggerMiddleware writes one log line per request
func loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(log.Fields{
			"status":     status,
			"method":     c.Request.Method,
			"path":       path,
			"latency":    time.Since(start),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(controllers.RequestIDKey),
		})
		switch {
		case status >= 500:
			entry.Error("Request")
		case status >= 400:
			entry.Warn("Request")
		default:
			entry.Info("Request")
		}
	}
}
