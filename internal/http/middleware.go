package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sourceboard/internal/domain"
)

const identityKey = "identity"

// resolveIdentity maps the session cookie to an identity on every request.
// Missing or invalid cookies resolve to the anonymous identity.
func (h *Handler) resolveIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := domain.Anonymous()
		if token, err := c.Cookie(SessionCookie); err == nil {
			identity = h.sessions.Resolve(c.Request.Context(), token)
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// requireUser aborts unauthenticated requests before the handler runs.
func (h *Handler) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentIdentity(c).IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func currentIdentity(c *gin.Context) domain.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(domain.Identity); ok {
			return identity
		}
	}
	return domain.Anonymous()
}
