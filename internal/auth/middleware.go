package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextUserID is the key of the authenticated user's ID in the gin context.
const ContextUserID = "userID"

type httpError struct {
	Error string `json:"error"`
}

// Middleware rejects requests without a valid bearer token and stores the
// ID of the authenticated user in the context.
func Middleware(tokens Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: ErrMissingToken.Error()})
			return
		}

		id, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: err.Error()})
			return
		}

		c.Set(ContextUserID, id)
		c.Next()
	}
}

// UserID returns the ID of the authenticated user. It is the Nil UUID for
// requests that did not pass the middleware.
func UserID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil
	}

	id, _ := v.(uuid.UUID)
	return id
}
