package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-study-session/internal/domain"
)

const userIDKey = "userID"

// anonymousUser keys idempotency records and rate buckets when nobody is
// signed in.
const anonymousUser = "anonymous"

// CurrentUser stores the signed-in user's id under "userID" for logging,
// rate limiting and idempotency. current is called once per request.
func CurrentUser(current func() *domain.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if current != nil {
			if u := current(); u != nil && u.ID != "" {
				c.Set(userIDKey, u.ID)
			}
		}
		c.Next()
	}
}

// UserIDFrom returns the id stored by CurrentUser, or "" when signed out.
func UserIDFrom(c *gin.Context) string {
	return c.GetString(userIDKey)
}
