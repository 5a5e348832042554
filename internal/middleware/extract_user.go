package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nosakhare/simple-payroll/internal/shared/response"
)

// ExtractUserID reads the caller identity from the X-User-ID header and makes
// it available to handlers and downstream middleware under the "user_id"
// context key. A missing header passes through unchanged; write operations
// that require an actor reject it at the service layer.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.Next()
			return
		}

		if _, err := uuid.Parse(userID); err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_USER_ID", "invalid user id format", nil)
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
