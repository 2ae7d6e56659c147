package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/returnhelper/returnsvc/internal/domain/model"
	"github.com/returnhelper/returnsvc/internal/server/http/handlers"
	"github.com/returnhelper/returnsvc/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ReturnHelperFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	profileHandler := handlers.NewProfileHandler(facade)
	addressHandler := handlers.NewAddressHandler(facade)
	returnHandler := handlers.NewReturnHandler(facade)
	pickupHandler := handlers.NewPickupHandler(facade)

	api := engine.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/profile", profileHandler.Profile)
	authed.POST("/push/token", profileHandler.RegisterPushToken)
	authed.POST("/addresses", addressHandler.Create)
	authed.GET("/addresses", addressHandler.List)
	authed.POST("/returns", returnHandler.Create)
	authed.GET("/returns", returnHandler.List)
	authed.GET("/returns/stats", returnHandler.Stats)
	authed.GET("/returns/:id", returnHandler.Get)
	authed.POST("/returns/:id/cancel", returnHandler.Cancel)

	driver := authed.Group("")
	driver.Use(middleware.RoleRequired(model.RoleDriver))
	driver.GET("/pickups", pickupHandler.Available)
	driver.GET("/pickups/mine", pickupHandler.Mine)
	driver.POST("/pickups/:id/accept", pickupHandler.Accept)
	driver.POST("/pickups/:id/status", pickupHandler.ReportStatus)

	return engine
}
