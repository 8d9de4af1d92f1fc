package session

import (
	"time"

	"github.com/gin-gonic/gin"
)

// CookieName is the cookie that carries the signed session token.
const CookieName = "session"

// Manager reads and writes the session cookie. The expiry is a sliding
// window: every refresh issues a token valid for the full TTL from "now",
// not from the original login.
type Manager struct {
	secret string
	ttl    time.Duration
}

// NewManager returns a Manager. ttlHours defaults to 24 when non-positive.
func NewManager(secret string, ttlHours int) *Manager {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &Manager{
		secret: secret,
		ttl:    time.Duration(ttlHours) * time.Hour,
	}
}

// FromRequest decodes the session cookie. It returns nil for a missing,
// malformed, tampered or expired token; callers never distinguish those.
func (m *Manager) FromRequest(c *gin.Context) *Claims {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie == "" {
		return nil
	}
	claims, err := Decode(m.secret, cookie)
	if err != nil {
		return nil
	}
	return claims
}

// Issue creates a fresh session for user in territoryID and sets the
// cookie. Returns the absolute expiry of the issued token.
func (m *Manager) Issue(c *gin.Context, user User, territoryID uint) (time.Time, error) {
	expires := time.Now().Add(m.ttl)
	token, err := Encode(m.secret, user, territoryID, expires)
	if err != nil {
		return time.Time{}, err
	}
	m.setCookie(c, token)
	return expires, nil
}

// Refresh re-issues the session carried by claims with a new expiry and
// re-sets the cookie. The identity and territory are copied unchanged.
func (m *Manager) Refresh(c *gin.Context, claims *Claims) error {
	_, err := m.Issue(c, claims.User, claims.TerritoryID)
	return err
}

// Clear removes the session cookie outright. There is no revocation list;
// a stolen token remains valid until its own expiry.
func (m *Manager) Clear(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

func (m *Manager) setCookie(c *gin.Context, token string) {
	c.SetCookie(CookieName, token, int(m.ttl.Seconds()), "/", "", false, true)
}
