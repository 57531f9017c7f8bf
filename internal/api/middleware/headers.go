package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/flatbridge/internal/infrastructure/logging"
	"github.com/GriffinCanCode/flatbridge/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/flatbridge/internal/shared/types"
)

// NoStore marks every response as uncacheable; pages and bodies may carry
// the session token.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

// Recovery turns a panic into a JSON 500 instead of a dropped connection.
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Panic serving request",
			append(tracing.Fields(c.Request.Context()),
				zap.String("path", c.Request.URL.Path),
				zap.Any("panic", recovered),
			)...,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
			Ok:    false,
			Error: "Internal error",
		})
	})
}

// RequestLog writes one debug line per request.
func RequestLog(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if ce := logger.Check(zap.DebugLevel, "Request"); ce != nil {
			ce.Write(append(tracing.Fields(c.Request.Context()),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", c.Writer.Status()),
			)...)
		}
	}
}
