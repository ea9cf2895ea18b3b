package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"fleetops/internal/auth"
	"fleetops/internal/domain"
	"fleetops/internal/handler"
	"fleetops/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthService        *auth.Service
	AuthHandler        *handler.AuthHandler
	VehicleHandler     *handler.VehicleHandler
	DriverHandler      *handler.DriverHandler
	TicketHandler      *handler.TicketHandler
	FuelHandler        *handler.FuelHandler
	MaintenanceHandler *handler.MaintenanceHandler
	DashboardHandler   *handler.DashboardHandler
	SystemHandler      *handler.SystemHandler
	RedisClient        *redis.Client
	NewRelicApp        *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.Idempotency(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authed := middleware.Authenticate(deps.AuthService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/login", deps.AuthHandler.Login)
			authRoutes.POST("/logout", deps.AuthHandler.Logout)
		}

		systemRoutes := v1.Group("/system")
		{
			systemRoutes.GET("/status", deps.SystemHandler.GetStatus)
		}

		vehicles := v1.Group("/vehicles", authed)
		{
			vehicles.POST("", adminOnly, deps.VehicleHandler.CreateVehicle)
			vehicles.GET("", deps.VehicleHandler.ListVehicles)
			vehicles.GET("/:id", deps.VehicleHandler.GetVehicle)
			vehicles.PUT("/:id", adminOnly, deps.VehicleHandler.UpdateVehicle)
			vehicles.POST("/:id/retire", adminOnly, deps.VehicleHandler.RetireVehicle)
		}

		drivers := v1.Group("/drivers", authed)
		{
			drivers.POST("", adminOnly, deps.DriverHandler.CreateDriver)
			drivers.GET("", adminOnly, deps.DriverHandler.ListDrivers)
			drivers.GET("/:id", deps.DriverHandler.GetDriver)
			drivers.PUT("/:id", adminOnly, deps.DriverHandler.UpdateDriver)
		}

		tickets := v1.Group("/tickets", authed)
		{
			tickets.POST("", deps.TicketHandler.SubmitTicket)
			tickets.GET("", deps.TicketHandler.ListTickets)
			tickets.GET("/:id", deps.TicketHandler.GetTicket)
			tickets.POST("/:id/approve", adminOnly, deps.TicketHandler.ApproveTicket)
			tickets.POST("/:id/reject", adminOnly, deps.TicketHandler.RejectTicket)
			tickets.GET("/:id/document", deps.TicketHandler.GetTicketDocument)
		}

		fuel := v1.Group("/fuel", authed)
		{
			fuel.POST("", adminOnly, deps.FuelHandler.CreateFuelRecord)
			fuel.GET("", deps.FuelHandler.ListFuelRecords)
		}

		accounts := v1.Group("/accounts", authed, adminOnly)
		{
			accounts.POST("", deps.FuelHandler.CreateAccount)
			accounts.GET("", deps.FuelHandler.ListAccounts)
		}

		maintenance := v1.Group("/maintenance", authed)
		{
			maintenance.POST("", adminOnly, deps.MaintenanceHandler.CreateMaintenance)
			maintenance.GET("", deps.MaintenanceHandler.ListMaintenance)
			maintenance.PUT("/:id", adminOnly, deps.MaintenanceHandler.UpdateMaintenance)
		}

		dashboard := v1.Group("/dashboard", authed)
		{
			dashboard.GET("/summary", deps.DashboardHandler.GetSummary)
		}
	}

	return router
}
