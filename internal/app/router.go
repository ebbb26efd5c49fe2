package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"cab/internal/handler"
	"cab/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	ClientHandler  *handler.ClientHandler
	BookingHandler *handler.BookingHandler
	PaymentHandler *handler.PaymentHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
		router.Use(middleware.NoticeErrors())
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Client directory routes.
		clients := v1.Group("/clients")
		{
			clients.POST("", deps.ClientHandler.Create)
			clients.GET("", deps.ClientHandler.GetAll)
			clients.GET("/:id", deps.ClientHandler.Get)
			clients.PUT("/:id", deps.ClientHandler.Update)
			clients.DELETE("/:id", deps.ClientHandler.Delete)
		}

		// Booking routes.
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", deps.BookingHandler.BookCab)
			bookings.POST("/finish", deps.BookingHandler.FinishBookingCab)
			bookings.POST("/validate", deps.BookingHandler.Validate)
			bookings.POST("/summary", deps.BookingHandler.Summary)
			bookings.GET("", deps.BookingHandler.GetAll)
			bookings.GET("/:id", deps.BookingHandler.GetBooking)
		}

		// Payment routes.
		payments := v1.Group("/payments")
		{
			payments.POST("/request", deps.PaymentHandler.RequestPayment)
			payments.POST("/confirm", deps.PaymentHandler.Confirm)
			payments.POST("/can-process", deps.PaymentHandler.CanProcess)
			payments.POST("/summary", deps.PaymentHandler.Summary)
		}
	}

	return router
}
