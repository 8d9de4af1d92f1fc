package middleware

import (
	"net/http"

	"github.com/buwaneka1/shop-mapper/internal/models"
	"github.com/buwaneka1/shop-mapper/internal/session"

	"github.com/gin-gonic/gin"
)

// contextSession is the gin context key the decoded claims are stored under.
const contextSession = "sessionClaims"

// Gate runs on every request, authenticated or not. When the request
// carries a valid session it slides the expiry forward (re-encode + re-set
// cookie) and stashes the decoded claims for handlers. Invalid and missing
// tokens are treated identically: no claims in the context.
func Gate(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := m.FromRequest(c); claims != nil {
			_ = m.Refresh(c, claims)
			c.Set(contextSession, claims)
		}
		c.Next()
	}
}

// Claims returns the decoded session placed by Gate, or nil when the
// request is anonymous.
func Claims(c *gin.Context) *session.Claims {
	v, ok := c.Get(contextSession)
	if !ok {
		return nil
	}
	claims, ok := v.(*session.Claims)
	if !ok {
		return nil
	}
	return claims
}

// RequireSession redirects anonymous requests to the login page.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Claims(c) == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		}
	}
}

// RedirectAuthenticated sends already-logged-in users from the login page
// back to the dashboard.
func RedirectAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Claims(c) != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
		}
	}
}

// RequireAdminPage guards admin pages: anonymous users go to login,
// non-admins back to the dashboard.
func RequireAdminPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if claims.User.Role != models.RoleAdmin {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
		}
	}
}
