package handler

import (
	"net/http"
	"strconv"

	"github.com/buwaneka1/shop-mapper/internal/auth"
	"github.com/buwaneka1/shop-mapper/internal/middleware"
	"github.com/buwaneka1/shop-mapper/internal/models"
	"github.com/buwaneka1/shop-mapper/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditHandler lists the audit trail for admins.
type AuditHandler struct {
	DB *gorm.DB
}

func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{DB: db}
}

// List returns recent audit entries, newest first. Admin only.
func (h *AuditHandler) List(c *gin.Context) {
	if err := auth.Require(middleware.Claims(c), models.RoleAdmin); err != nil {
		denied(c, err)
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	var entries []models.AuditLog
	if err := h.DB.Order("id DESC").Limit(limit).Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list audit entries")
		return
	}

	util.Success(c, util.Response{"entries": entries})
}
