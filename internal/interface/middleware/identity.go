package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/event-guestlist-api/internal/application"
	"github.com/oksasatya/event-guestlist-api/pkg/response"
)

// CtxIdentityKey holds the resolved *application.Identity in the Gin
// context. Present only after a successful hard or soft gate pass.
const CtxIdentityKey = "identity"

const (
	msgUnauthorized    = "You don't have access to this resource"
	msgUnauthenticated = "User unauthenticated, please contact support."
)

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireIdentity is the hard gate: no handler runs without a verified
// identity. All verification failures collapse into a uniform 401 so
// internals never leak; the pending-approval state gets its own message.
func RequireIdentity(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := auth.Verify(c.Request.Context(), bearerToken(c))
		if err != nil {
			if errors.Is(err, application.ErrNotAuthenticated) {
				response.AbortUnauthorized(c, msgUnauthenticated)
				return
			}
			response.AbortUnauthorized(c, msgUnauthorized)
			return
		}
		c.Set(CtxIdentityKey, id)
		c.Next()
	}
}

// OptionalIdentity is the soft gate used by public entry points: it
// always proceeds, attaching the identity when a valid token is present
// and leaving it unset otherwise.
func OptionalIdentity(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := auth.Verify(c.Request.Context(), bearerToken(c)); err == nil {
			c.Set(CtxIdentityKey, id)
		}
		c.Next()
	}
}

// IdentityFrom returns the caller identity attached by a gate, or nil.
func IdentityFrom(c *gin.Context) *application.Identity {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*application.Identity)
	return id
}
