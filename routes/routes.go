package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ismaeltironi-cloud/locadora-pro/configs"
	"github.com/ismaeltironi-cloud/locadora-pro/controllers"
	"github.com/ismaeltironi-cloud/locadora-pro/middlewares"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/cache"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/oficina"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/storage"
	"github.com/ismaeltironi-cloud/locadora-pro/repository"
	"github.com/ismaeltironi-cloud/locadora-pro/services"
	"github.com/ismaeltironi-cloud/locadora-pro/ws"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, store storage.ObjectStore, hub *ws.ChangeHub) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	queryCache := cache.New(cfg.CacheTTL)

	// Repositories
	userRepo := repository.NewUserRepository(db, queryCache, hub)
	clientRepo := repository.NewClientRepository(db, queryCache, hub)
	vehicleRepo := repository.NewVehicleRepository(db, queryCache, hub)
	photoRepo := repository.NewPhotoRepository(db, queryCache, hub)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	clientSvc := services.NewClientService(clientRepo, authSvc)
	vehicleSvc := services.NewVehicleService(db, vehicleRepo, photoRepo, authSvc, store)
	userSvc := services.NewUserService(userRepo, authSvc)
	reportSvc := services.NewReportService(vehicleRepo, userRepo)

	oficinaClient := oficina.NewClient(cfg.OficinaProURL, cfg.OficinaProAPIKey,
		oficina.Variant(cfg.OficinaProVariant), store)
	orderSvc := services.NewServiceOrderService(oficinaClient, authSvc)

	extractor := services.NewHTTPExtractor(cfg.ExtractorURL, cfg.ExtractorAPIKey)
	intakeSvc := services.NewIntakeService(clientRepo, vehicleRepo, extractor)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	clientCtrl := controllers.NewClientController(clientSvc)
	vehicleCtrl := controllers.NewVehicleController(vehicleSvc)
	userCtrl := controllers.NewUserController(userSvc)
	reportCtrl := controllers.NewReportController(reportSvc)
	dashCtrl := controllers.NewDashboardController(vehicleRepo)
	orderCtrl := controllers.NewServiceOrderController(orderSvc)
	intakeCtrl := controllers.NewIntakeController(intakeSvc)

	// Auth (public)
	r.POST("/auth/login", authCtrl.Login)

	// Everything else requires a session; capability checks live in the
	// services.
	auth := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		auth.GET("/auth/me", authCtrl.Me)
		auth.PATCH("/auth/me", authCtrl.UpdateMe)

		auth.GET("/clients", clientCtrl.List)
		auth.GET("/clients/:id", clientCtrl.Get)
		auth.POST("/clients", clientCtrl.Create)
		auth.PATCH("/clients/:id", clientCtrl.Update)
		auth.DELETE("/clients/:id", clientCtrl.Delete)

		auth.GET("/vehicles", vehicleCtrl.List)
		auth.GET("/vehicles/prefill", vehicleCtrl.Prefill)
		auth.GET("/vehicles/:id", vehicleCtrl.Get)
		auth.POST("/vehicles", vehicleCtrl.Create)
		auth.PATCH("/vehicles/:id", vehicleCtrl.Update)
		auth.GET("/vehicles/:id/photos", vehicleCtrl.Photos)
		auth.POST("/vehicles/:id/checkin", vehicleCtrl.CheckIn)
		auth.POST("/vehicles/:id/checkout", vehicleCtrl.CheckOut)
		auth.POST("/vehicles/:id/cancel", vehicleCtrl.Cancel)

		auth.GET("/dashboard", dashCtrl.Summary)
		auth.GET("/reports/vehicles", reportCtrl.Vehicles)
		auth.GET("/reports/vehicles/pdf", reportCtrl.VehiclesPDF)

		auth.POST("/service-orders", orderCtrl.Dispatch)
		auth.POST("/intake/service-requests", intakeCtrl.Process)
	}

	// User administration (admin only; the services re-check).
	admin := r.Group("/users", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		admin.GET("", userCtrl.List)
		admin.POST("", userCtrl.Create)
		admin.PUT("/:id/role", userCtrl.UpdateRole)
	}

	// Change feed. The handshake carries the token in the query string
	// because browsers cannot set headers on a WebSocket upgrade.
	r.GET("/ws/changes", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)
}
