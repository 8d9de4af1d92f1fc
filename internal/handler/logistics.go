package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/buwaneka1/shop-mapper/internal/auth"
	"github.com/buwaneka1/shop-mapper/internal/middleware"
	"github.com/buwaneka1/shop-mapper/internal/models"
	"github.com/buwaneka1/shop-mapper/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogisticsHandler implements admin management of lorries and routes.
type LogisticsHandler struct {
	DB *gorm.DB
}

func NewLogisticsHandler(db *gorm.DB) *LogisticsHandler {
	return &LogisticsHandler{DB: db}
}

// Overview returns territories, lorries and routes for the logistics admin
// page. Admin only.
func (h *LogisticsHandler) Overview(c *gin.Context) {
	if err := auth.Require(middleware.Claims(c), models.RoleAdmin); err != nil {
		denied(c, err)
		return
	}

	var territories []models.Territory
	if err := h.DB.Find(&territories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list territories")
		return
	}
	var lorries []models.Lorry
	if err := h.DB.Preload("Territory").Preload("Routes").Find(&lorries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list lorries")
		return
	}
	var routes []models.Route
	if err := h.DB.Preload("Lorry").Find(&routes).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list routes")
		return
	}

	util.Success(c, util.Response{
		"territories": territories,
		"lorries":     lorries,
		"routes":      routes,
	})
}

// ---------- lorries ----------

func (h *LogisticsHandler) lorryForm(c *gin.Context) (name string, territoryID uint, ok bool) {
	name = strings.TrimSpace(c.PostForm("name"))
	id, err := strconv.ParseUint(c.PostForm("territoryId"), 10, 32)
	if name == "" || err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing required fields")
		return "", 0, false
	}
	return name, uint(id), true
}

// CreateLorry adds a lorry to a territory. Admin only.
func (h *LogisticsHandler) CreateLorry(c *gin.Context) {
	if err := auth.Require(middleware.Claims(c), models.RoleAdmin); err != nil {
		denied(c, err)
		return
	}

	name, territoryID, ok := h.lorryForm(c)
	if !ok {
		return
	}

	lorry := models.Lorry{Name: name, TerritoryID: territoryID}
	if err := h.DB.Create(&lorry).Error; err != nil {
		util.Error(c, http.StatusConflict, util.CodeConflict, "failed to create lorry")
		return
	}
	util.Success(c, util.Response{"lorry": lorry})
}

// UpdateLorry renames a lorry or moves it to another territory. Admin only.
func (h *LogisticsHandler) UpdateLorry(c *gin.Context) {
	if err := auth.Require(middleware.Claims(c), models.RoleAdmin); err != nil {
		denied(c, err)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid lorry id")
		return
	}
	name, territoryID, ok := h.lorryForm(c)
	if !ok {
		return
	}

	res := h.DB.Model(&models.Lorry{}).Where("id = ?", uint(id)).
		Updates(map[string]interface{}{"name": name, "territory_id": territoryID})
	if res.Error != nil {
		util.Error(c, http.StatusConflict, util.CodeConflict, "failed to update lorry")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "lorry not found")
		return
	}
	util.Success(c, util.Response{"updated": id})
}

// DeleteLorry removes a lorry. Users bound to it are unassigned first, in
// the same transaction; routes still referencing it make the delete fail.
// Admin only.
func (h *LogisticsHandler) DeleteLorry(c *gin.Context) {
	if err := auth.Require(middleware.Claims(c), models.RoleAdmin); err != nil {
		denied(c, err)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid lorry id")
		return
	}

	notFound := false
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("lorry_id = ?", uint(id)).
			Update("lorry_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Lorry{}, uint(id))
		if res.Error != nil {
			return res.Error
		}
		notFound = res.RowsAffected == 0
		return nil
	})
	if err != nil {
		util.Error(c, http.StatusConflict, util.CodeConflict, "failed to delete lorry (ensure no routes are assigned)")
		return
	}
	if notFound {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "lorry not found")
		return
	}

	util.Success(c, util.Response{"deleted": id})
}

// ---------- routes ----------

func (h *LogisticsHandler) routeForm(c *gin.Context) (name string, lorryID uint, ok bool) {
	name = strings.TrimSpace(c.PostForm("name"))
	id, err := strconv.ParseUint(c.PostForm("lorryId"), 10, 32)
	if name == "" || err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing required fields")
		return "", 0, false
	}
	return name, uint(id), true
}

// CreateRoute adds a route to a lorry. Admin only.
func (h *LogisticsHandler) CreateRoute(c *gin.Context) {
	if err := auth.Require(middleware.Claims(c), models.RoleAdmin); err != nil {
		denied(c, err)
		return
	}

	name, lorryID, ok := h.routeForm(c)
	if !ok {
		return
	}

	route := models.Route{Name: name, LorryID: lorryID}
	if err := h.DB.Create(&route).Error; err != nil {
		util.Error(c, http.StatusConflict, util.CodeConflict, "failed to create route")
		return
	}
	util.Success(c, util.Response{"route": route})
}

// UpdateRoute renames a route or moves it to another lorry. Admin only.
func (h *LogisticsHandler) UpdateRoute(c *gin.Context) {
	if err := auth.Require(middleware.Claims(c), models.RoleAdmin); err != nil {
		denied(c, err)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid route id")
		return
	}
	name, lorryID, ok := h.routeForm(c)
	if !ok {
		return
	}

	res := h.DB.Model(&models.Route{}).Where("id = ?", uint(id)).
		Updates(map[string]interface{}{"name": name, "lorry_id": lorryID})
	if res.Error != nil {
		util.Error(c, http.StatusConflict, util.CodeConflict, "failed to update route")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "route not found")
		return
	}
	util.Success(c, util.Response{"updated": id})
}

// DeleteRoute removes a route. Shops still referencing it make the delete
// fail. Admin only.
func (h *LogisticsHandler) DeleteRoute(c *gin.Context) {
	if err := auth.Require(middleware.Claims(c), models.RoleAdmin); err != nil {
		denied(c, err)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid route id")
		return
	}

	res := h.DB.Delete(&models.Route{}, uint(id))
	if res.Error != nil {
		util.Error(c, http.StatusConflict, util.CodeConflict, "failed to delete route (ensure no shops are assigned)")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "route not found")
		return
	}

	util.Success(c, util.Response{"deleted": id})
}
