package router

import (
	"github.com/buwaneka1/shop-mapper/internal/config"
	"github.com/buwaneka1/shop-mapper/internal/handler"
	"github.com/buwaneka1/shop-mapper/internal/middleware"
	"github.com/buwaneka1/shop-mapper/internal/session"
	"github.com/buwaneka1/shop-mapper/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the gin engine: the session gate, the audit
// trail, page routes with their redirect rules, and the form API.
func SetupRouter(cfg *config.Config, db *gorm.DB, images storage.ImageStore) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.ExpireHours)

	// The gate runs on every request: it slides the session expiry and
	// exposes the decoded claims. Audit records mutations after the fact.
	r.Use(middleware.Gate(sessions))
	r.Use(middleware.Audit(db))

	// uploaded shop photos
	r.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)

	authHandler := handler.NewAuthHandler(db, sessions)
	dashHandler := handler.NewDashboardHandler(db)
	userHandler := handler.NewUserHandler(db)
	logisticsHandler := handler.NewLogisticsHandler(db)
	shopHandler := handler.NewShopHandler(db, images)
	exportHandler := handler.NewExportHandler(db)
	auditHandler := handler.NewAuditHandler(db)

	// ====== pages ======
	r.GET("/", middleware.RequireSession(), dashHandler.Index)
	r.GET("/login", middleware.RedirectAuthenticated(), dashHandler.LoginPage)
	r.POST("/login", middleware.RedirectAuthenticated(), authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	admin := r.Group("/admin", middleware.RequireAdminPage())
	admin.GET("/users", userHandler.List)
	admin.GET("/logistics", logisticsHandler.Overview)
	admin.GET("/audit", auditHandler.List)

	// ====== API ======
	// No blanket auth middleware here: every mutating handler re-derives
	// authorization from the session claims itself.
	api := r.Group("/api")

	api.GET("/me", authHandler.GetMe)

	api.POST("/users", userHandler.Create)
	api.DELETE("/users/:id", userHandler.Delete)

	api.POST("/lorries", logisticsHandler.CreateLorry)
	api.PUT("/lorries/:id", logisticsHandler.UpdateLorry)
	api.DELETE("/lorries/:id", logisticsHandler.DeleteLorry)

	api.POST("/routes", logisticsHandler.CreateRoute)
	api.PUT("/routes/:id", logisticsHandler.UpdateRoute)
	api.DELETE("/routes/:id", logisticsHandler.DeleteRoute)

	api.POST("/shops", shopHandler.Create)
	api.PUT("/shops/:id", shopHandler.Update)
	api.DELETE("/shops/:id", shopHandler.Delete)
	api.GET("/shops/export", exportHandler.ExportShops)

	return r
}
