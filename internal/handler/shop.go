package handler

import (
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/buwaneka1/shop-mapper/internal/auth"
	"github.com/buwaneka1/shop-mapper/internal/middleware"
	"github.com/buwaneka1/shop-mapper/internal/models"
	"github.com/buwaneka1/shop-mapper/internal/storage"
	"github.com/buwaneka1/shop-mapper/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ShopHandler implements shop create/update/delete. Creating and updating
// is open to admins and reps; deleting is admin only.
type ShopHandler struct {
	DB     *gorm.DB
	Images storage.ImageStore
}

func NewShopHandler(db *gorm.DB, images storage.ImageStore) *ShopHandler {
	return &ShopHandler{DB: db, Images: images}
}

// shopForm holds the parsed and validated shop fields.
type shopForm struct {
	Name          string
	OwnerName     string
	ContactNumber string
	PaymentMethod string
	CreditPeriod  *int
	PaymentStatus string
	AvgBillValue  float64
	Latitude      float64
	Longitude     float64
	RouteID       uint
}

func (h *ShopHandler) parseShopForm(c *gin.Context) (*shopForm, bool) {
	f := &shopForm{
		Name:          strings.TrimSpace(c.PostForm("name")),
		OwnerName:     strings.TrimSpace(c.PostForm("ownerName")),
		ContactNumber: strings.TrimSpace(c.PostForm("contactNumber")),
		PaymentMethod: c.PostForm("paymentMethod"),
		PaymentStatus: c.PostForm("paymentStatus"),
	}

	if f.Name == "" || !models.ValidPaymentMethod(f.PaymentMethod) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing required fields")
		return nil, false
	}
	if f.PaymentStatus == "" {
		f.PaymentStatus = models.StatusOnTime
	} else if !models.ValidPaymentStatus(f.PaymentStatus) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid payment status")
		return nil, false
	}

	routeID, err := strconv.ParseUint(c.PostForm("routeId"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid route id")
		return nil, false
	}
	f.RouteID = uint(routeID)

	f.Latitude, err = strconv.ParseFloat(c.PostForm("latitude"), 64)
	if err == nil {
		f.Longitude, err = strconv.ParseFloat(c.PostForm("longitude"), 64)
	}
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid location")
		return nil, false
	}

	if raw := c.PostForm("avgBillValue"); raw != "" {
		f.AvgBillValue, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid bill value")
			return nil, false
		}
	}
	// credit period only matters for CREDIT shops but is stored as given
	if raw := c.PostForm("creditPeriod"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid credit period")
			return nil, false
		}
		f.CreditPeriod = &days
	}

	return f, true
}

// saveImage uploads the optional photo and returns its URL. Upload
// problems are logged and swallowed: the shop is saved without an image
// rather than failing the whole mutation.
func (h *ShopHandler) saveImage(file *multipart.FileHeader) string {
	if file == nil || file.Size == 0 {
		return ""
	}
	src, err := file.Open()
	if err != nil {
		log.Printf("open shop image: %v", err)
		return ""
	}
	defer src.Close()

	url, err := h.Images.Save(file.Filename, src)
	if err != nil {
		log.Printf("upload shop image: %v", err)
		return ""
	}
	return url
}

// Create adds a shop to a route. Admins and reps.
func (h *ShopHandler) Create(c *gin.Context) {
	if err := auth.Require(middleware.Claims(c), models.RoleAdmin, models.RoleRep); err != nil {
		denied(c, err)
		return
	}

	f, ok := h.parseShopForm(c)
	if !ok {
		return
	}

	shop := models.Shop{
		Name:          f.Name,
		OwnerName:     f.OwnerName,
		ContactNumber: f.ContactNumber,
		PaymentMethod: f.PaymentMethod,
		CreditPeriod:  f.CreditPeriod,
		PaymentStatus: f.PaymentStatus,
		AvgBillValue:  f.AvgBillValue,
		Latitude:      f.Latitude,
		Longitude:     f.Longitude,
		RouteID:       f.RouteID,
	}
	if file, err := c.FormFile("image"); err == nil {
		shop.ImageURL = h.saveImage(file)
	}

	if err := h.DB.Create(&shop).Error; err != nil {
		util.Error(c, http.StatusConflict, util.CodeConflict, "failed to create shop")
		return
	}
	util.Success(c, util.Response{"shop": shop})
}

// Update rewrites a shop's fields. The stored image is only replaced when
// a new one is uploaded. Admins and reps.
func (h *ShopHandler) Update(c *gin.Context) {
	if err := auth.Require(middleware.Claims(c), models.RoleAdmin, models.RoleRep); err != nil {
		denied(c, err)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid shop id")
		return
	}

	f, ok := h.parseShopForm(c)
	if !ok {
		return
	}

	updates := map[string]interface{}{
		"name":           f.Name,
		"owner_name":     f.OwnerName,
		"contact_number": f.ContactNumber,
		"payment_method": f.PaymentMethod,
		"credit_period":  f.CreditPeriod,
		"payment_status": f.PaymentStatus,
		"avg_bill_value": f.AvgBillValue,
		"latitude":       f.Latitude,
		"longitude":      f.Longitude,
		"route_id":       f.RouteID,
	}
	if file, err := c.FormFile("image"); err == nil {
		if url := h.saveImage(file); url != "" {
			updates["image_url"] = url
		}
	}

	res := h.DB.Model(&models.Shop{}).Where("id = ?", uint(id)).Updates(updates)
	if res.Error != nil {
		util.Error(c, http.StatusConflict, util.CodeConflict, "failed to update shop")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "shop not found")
		return
	}
	util.Success(c, util.Response{"updated": id})
}

// Delete removes a shop. Admin only.
func (h *ShopHandler) Delete(c *gin.Context) {
	if err := auth.Require(middleware.Claims(c), models.RoleAdmin); err != nil {
		denied(c, err)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid shop id")
		return
	}

	res := h.DB.Delete(&models.Shop{}, uint(id))
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete shop")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "shop not found")
		return
	}
	util.Success(c, util.Response{"deleted": id})
}
