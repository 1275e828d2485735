package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kdsprimark-ship-it/shipdesk/internal/config"
	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/handler"
	"github.com/kdsprimark-ship-it/shipdesk/internal/middleware"
)

// Collections bundles the per-kind CRUD handlers.
type Collections struct {
	IndianEntries    *handler.CollectionHandler[domain.IndianEntry]
	BillInfos        *handler.CollectionHandler[domain.BillInfo]
	AccountEntries   *handler.CollectionHandler[domain.AccountEntry]
	TruckInfos       *handler.CollectionHandler[domain.TruckInfo]
	BusinessEntities *handler.CollectionHandler[domain.BusinessEntity]
	DepotCodes       *handler.CollectionHandler[domain.DepotCode]
	PriceRates       *handler.CollectionHandler[domain.PriceRate]
	Users            *handler.CollectionHandler[domain.User]
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	log zerolog.Logger,
	sessions middleware.TokenValidator,
	authH *handler.AuthHandler,
	colls Collections,
	billH *handler.BillHandler,
	syncH *handler.SyncHandler,
	settingsH *handler.SettingsHandler,
	statsH *handler.StatsHandler,
	sheetH *handler.SheetHandler,
	backupH *handler.BackupHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(sessions))

	protected.POST("/auth/logout", authH.Logout)
	protected.GET("/auth/session", authH.Session)

	// Entity collections
	colls.IndianEntries.Register(protected, "/entries")
	colls.BillInfos.Register(protected, "/bills")
	colls.AccountEntries.Register(protected, "/accounts")
	colls.TruckInfos.Register(protected, "/trucks")
	colls.BusinessEntities.Register(protected, "/entities")
	colls.DepotCodes.Register(protected, "/depot-codes")
	colls.PriceRates.Register(protected, "/price-rates")

	// User records are admin territory.
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(domain.RoleAdministrator))
	colls.Users.Register(users, "")

	// Bill creation from a matched invoice
	billing := protected.Group("/billing")
	billing.GET("/match", billH.Preview)
	billing.POST("/match", billH.Create)

	// Sync cycle
	protected.GET("/sync/status", syncH.Status)
	protected.POST("/sync/refresh", syncH.Refresh)

	// Settings and factory reset
	protected.GET("/settings", settingsH.Get)
	protected.PUT("/settings", settingsH.Update)
	protected.PATCH("/settings", settingsH.Update)
	protected.POST("/system/reset", middleware.RequireRole(domain.RoleAdministrator), settingsH.Reset)

	// Aggregates
	protected.GET("/stats/dashboard", statsH.Dashboard)
	protected.POST("/stats/depot-cutoff", statsH.Cutoff)

	// Master data sheet
	protected.GET("/sheet", sheetH.List)
	protected.GET("/sheet/export.csv", sheetH.ExportCSV)
	protected.GET("/sheet/export.xlsx", sheetH.ExportXLSX)

	// Backups
	backups := protected.Group("/backup")
	backups.GET("/export", backupH.Export)
	backups.POST("/import", middleware.RequireRole(domain.RoleAdministrator), backupH.Import)
	backups.POST("/archive", middleware.RequireRole(domain.RoleAdministrator), backupH.Archive)
	backups.POST("/restore", middleware.RequireRole(domain.RoleAdministrator), backupH.Restore)

	return r
}
