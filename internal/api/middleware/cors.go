package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/flatbridge/internal/shared/types"
)

// CORSConfig defines CORS configuration options.
type CORSConfig struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
	MaxAge       time.Duration
}

// BridgeCORSConfig only admits pages served by the bridge itself on port.
// Both loopback spellings are accepted since browsers keep them distinct.
func BridgeCORSConfig(port int) CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{
			fmt.Sprintf("http://127.0.0.1:%d", port),
			fmt.Sprintf("http://localhost:%d", port),
		},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{
			"Content-Type",
			types.TokenHeader,
		},
		MaxAge: 10 * time.Minute,
	}
}

// CORS creates a CORS middleware with the provided configuration.
// Requests from any other origin are refused with 403.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		AllowCredentials: false,
		MaxAge:           cfg.MaxAge,
	})
}
