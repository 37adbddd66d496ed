package middleware

import (
	"github.com/ErlanBelekov/taskboard/internal/requestid"
	"github.com/gin-gonic/gin"
)

// RequestID attaches a request ID to the context and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := requestid.FromClient(c.GetHeader(requestid.Header))
		c.Request = c.Request.WithContext(requestid.WithRequestID(c.Request.Context(), id))
		c.Header(requestid.Header, id)
		c.Next()
	}
}
