package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskflow-dev/taskflow/internal/types"
)

// RequestLogger tags every request with an id and logs it on completion.
// An incoming X-Request-ID header is reused when it parses as a UUID.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(types.RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		reqLogger := logger.With().Str("request_id", requestID).Logger()

		ctx.Set(types.ContextLoggerKey, reqLogger)
		ctx.Header(types.RequestIDHeader, requestID)

		start := time.Now()
		ctx.Next()

		status := ctx.Writer.Status()
		event := reqLogger.Info()
		if status >= 500 {
			event = reqLogger.Error()
		}

		event.
			Str("method", ctx.Request.Method).
			Str("path", ctx.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request completed")
	}
}
