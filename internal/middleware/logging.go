package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/colabnow/internal/logger"
)

// RequestLogger пишет метод, путь, статус и длительность каждого запроса
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.HTTPLog(c.Request.Method, path, c.Writer.Status(), time.Since(start), c.Writer.Size())
	}
}
