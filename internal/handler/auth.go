package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/buwaneka1/shop-mapper/internal/middleware"
	"github.com/buwaneka1/shop-mapper/internal/models"
	"github.com/buwaneka1/shop-mapper/internal/session"
	"github.com/buwaneka1/shop-mapper/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler implements login, logout and the session profile.
type AuthHandler struct {
	DB       *gorm.DB
	Sessions *session.Manager
}

func NewAuthHandler(db *gorm.DB, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{DB: db, Sessions: sessions}
}

// Login handles the login form: username, password and a chosen territory.
// Every failure mode (missing field, bad territory, unknown user, wrong
// password, rep outside their lorry's territory) is indistinguishable to
// the client: it lands back on the login page with no session issued.
func (h *AuthHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	territoryID, err := strconv.ParseUint(c.PostForm("territoryId"), 10, 32)
	if username == "" || password == "" || err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var user models.User
	if err := h.DB.Preload("Lorry").Where("username = ?", username).
		First(&user).Error; err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash), []byte(password)); err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	// Territory access check. A rep may only enter the territory of the
	// lorry they are bound to; other roles may pick any existing territory.
	if user.Role == models.RoleRep {
		if user.Lorry == nil || user.Lorry.TerritoryID != uint(territoryID) {
			c.Redirect(http.StatusFound, "/login")
			return
		}
	} else {
		var territory models.Territory
		if err := h.DB.First(&territory, uint(territoryID)).Error; err != nil {
			c.Redirect(http.StatusFound, "/login")
			return
		}
	}

	sessUser := session.User{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		LorryID:  user.LorryID,
	}
	if _, err := h.Sessions.Issue(c, sessUser, uint(territoryID)); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create session")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session cookie and returns to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Sessions.Clear(c)
	c.Redirect(http.StatusFound, "/login")
}

// GetMe returns the identity and territory context of the current session.
func (h *AuthHandler) GetMe(c *gin.Context) {
	claims := middleware.Claims(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":       claims.User.ID,
			"username": claims.User.Username,
			"role":     claims.User.Role,
			"lorry_id": claims.User.LorryID,
		},
		"territory_id": claims.TerritoryID,
		"expires_at":   claims.ExpiresAt.Time,
	})
}
