package middleware

import (
	"net/http"

	"github.com/buwaneka1/shop-mapper/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Audit records every mutating request after it completes. Read requests
// are skipped to keep the table small. Failures to write the audit row are
// ignored; auditing never blocks the operation itself.
func Audit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		entry := models.AuditLog{
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		if claims := Claims(c); claims != nil {
			id := claims.User.ID
			entry.UserID = &id
			entry.Username = claims.User.Username
		}

		_ = db.Create(&entry).Error
	}
}
