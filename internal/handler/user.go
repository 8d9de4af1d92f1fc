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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserHandler implements admin user management.
type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// List returns every user with their lorry binding, plus the lorries
// available for the create form. Admin only.
func (h *UserHandler) List(c *gin.Context) {
	if err := auth.Require(middleware.Claims(c), models.RoleAdmin); err != nil {
		denied(c, err)
		return
	}

	var users []models.User
	if err := h.DB.Preload("Lorry").Find(&users).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list users")
		return
	}
	var lorries []models.Lorry
	if err := h.DB.Find(&lorries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list lorries")
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		row := gin.H{
			"id":       u.ID,
			"username": u.Username,
			"role":     u.Role,
		}
		if u.Lorry != nil {
			row["lorry"] = gin.H{"id": u.Lorry.ID, "name": u.Lorry.Name}
		}
		out = append(out, row)
	}

	util.Success(c, util.Response{
		"users":   out,
		"lorries": lorries,
	})
}

// Create adds a user. Admin only. The lorryId field is optional and only
// meaningful for reps.
func (h *UserHandler) Create(c *gin.Context) {
	if err := auth.Require(middleware.Claims(c), models.RoleAdmin); err != nil {
		denied(c, err)
		return
	}

	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	role := c.PostForm("role")
	if username == "" || password == "" || !models.ValidRole(role) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing required fields")
		return
	}

	var lorryID *uint
	if raw := c.PostForm("lorryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid lorry id")
			return
		}
		v := uint(id)
		lorryID = &v
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.Role(role),
		LorryID:      lorryID,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		// usually a duplicate username; don't leak constraint details
		util.Error(c, http.StatusConflict, util.CodeConflict, "failed to create user (username might be taken)")
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{"id": user.ID, "username": user.Username, "role": user.Role},
	})
}

// Delete removes a user. Admin only, and the acting user can never be the
// target, whatever their role.
func (h *UserHandler) Delete(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid user id")
		return
	}

	if err := auth.RequireUserDelete(middleware.Claims(c), uint(targetID)); err != nil {
		denied(c, err)
		return
	}

	res := h.DB.Delete(&models.User{}, uint(targetID))
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete user")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		return
	}

	util.Success(c, util.Response{"deleted": targetID})
}
