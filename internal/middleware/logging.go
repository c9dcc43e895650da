package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LogMiddleware 使用 logrus 記錄每個請求的方法、路徑、狀態碼與耗時
func LogMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		logger.WithFields(logrus.Fields{
			"method":   method,
			"path":     path,
			"status":   c.Writer.Status(),
			"duration": duration,
			"remote":   c.ClientIP(),
		}).Info("HTTP Request")
	}
}
