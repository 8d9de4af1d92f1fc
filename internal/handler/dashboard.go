package handler

import (
	"net/http"

	"github.com/buwaneka1/shop-mapper/internal/auth"
	"github.com/buwaneka1/shop-mapper/internal/middleware"
	"github.com/buwaneka1/shop-mapper/internal/models"
	"github.com/buwaneka1/shop-mapper/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler serves the page payloads: the scoped map/list data for
// "/" and the territory choices for the login form.
type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// Index returns the session-scoped dashboard data. The lorry and shop sets
// are filtered here, at query time, so the client never receives data
// outside its territory (or, for a rep, outside its lorry).
func (h *DashboardHandler) Index(c *gin.Context) {
	claims := middleware.Claims(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	lorries, err := auth.ScopedLorries(h.DB, claims)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load lorries")
		return
	}
	shops, err := auth.ScopedShops(h.DB, lorries)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load shops")
		return
	}

	routes := make([]models.Route, 0)
	for _, l := range lorries {
		routes = append(routes, l.Routes...)
	}

	util.Success(c, util.Response{
		"username": claims.User.Username,
		"role":     claims.User.Role,
		"lorries":  lorries,
		"routes":   routes,
		"shops":    shops,
	})
}

// LoginPage returns the territory list the login form offers.
func (h *DashboardHandler) LoginPage(c *gin.Context) {
	var territories []models.Territory
	if err := h.DB.Find(&territories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load territories")
		return
	}
	util.Success(c, util.Response{"territories": territories})
}
