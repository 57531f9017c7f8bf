package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/flatbridge/internal/auth"
	"github.com/GriffinCanCode/flatbridge/internal/shared/types"
)

// BadTokenMessage is the body of every authentication failure.
const BadTokenMessage = "Bad token"

// RequireToken rejects requests whose X-Installer-Token header does not
// match token. Nothing behind it runs for a rejected request.
func RequireToken(token auth.Token) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !token.Verify(c.GetHeader(types.TokenHeader)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{
				Ok:    false,
				Error: BadTokenMessage,
			})
			return
		}
		c.Next()
	}
}
