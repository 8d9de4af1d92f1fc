package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/buwaneka1/shop-mapper/internal/auth"
	"github.com/buwaneka1/shop-mapper/internal/middleware"
	"github.com/buwaneka1/shop-mapper/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler writes the session-scoped shop register as an .xlsx file.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

// ExportShops streams an .xlsx of every shop visible to the session. The
// same scoping as the dashboard applies, so a rep exports only their own
// lorry's shops.
func (h *ExportHandler) ExportShops(c *gin.Context) {
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

	routeNames := make(map[uint]string)
	for _, l := range lorries {
		for _, r := range l.Routes {
			routeNames[r.ID] = r.Name
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Shops"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Name", "Owner", "Contact", "Route",
		"Payment Method", "Credit Period", "Payment Status",
		"Avg Bill Value", "Latitude", "Longitude"}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for row, s := range shops {
		creditPeriod := ""
		if s.CreditPeriod != nil {
			creditPeriod = fmt.Sprintf("%d days", *s.CreditPeriod)
		}
		values := []interface{}{
			s.ID, s.Name, s.OwnerName, s.ContactNumber, routeNames[s.RouteID],
			s.PaymentMethod, creditPeriod, s.PaymentStatus,
			s.AvgBillValue, s.Latitude, s.Longitude,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("shops-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write export")
	}
}
