// README: Request logging middleware, now wired on every route. Emits the
// structured, grep-friendly line format §7 requires of component logs
// (`[component] event key=value ...`).
package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logging logs one line per request after it completes, with status and
// latency, in the "[http] request ..." shape used across this service.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[http] request method=%s path=%s status=%d latency=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
