package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iamatos3/roamer-api/utils"
)

// RequestID propagates an inbound X-Request-ID or assigns a fresh uuid, so
// log lines can be correlated across services.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(utils.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Writer.Header().Set(utils.RequestIDHeader, id)
		ctx.Next()
	}
}
