package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// KeyRequestID doubles as the HTTP header name and the gin context key.
const KeyRequestID = "X-Request-ID"

// RequestID keeps an inbound X-Request-ID so ids survive proxy hops and
// mints a uuid when the client sent none. The id is echoed on the response
// and stashed in the context for the access log to pick up.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(KeyRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(KeyRequestID, id)
		c.Writer.Header().Set(KeyRequestID, id)
		c.Next()
	}
}
