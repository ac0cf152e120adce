package api

import (
	"log"
	stdhttp "net/http"

	intconfig "wheelie-backend/internal/config"
	"wheelie-backend/internal/domain"
	h "wheelie-backend/internal/http/handlers"
	"wheelie-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Public catalog
		vehicles := api.Group("/vehicles")
		vehicles.GET("", h.GetVehicles)
		vehicles.GET("/:id", h.GetVehicleByID)

		locations := api.Group("/locations")
		locations.GET("", h.GetLocations)
		locations.GET("/:id", h.GetLocationByID)
		locations.GET("/city/:slug", h.GetLocationBySlug)

		// Signed-in customers
		authed := api.Group("")
		authed.Use(middleware.Auth(env))
		{
			users := authed.Group("/users")
			users.GET("/me", h.GetMe)
			users.PUT("/me", h.UpdateMe)
			users.GET("/:id/bookings", h.GetUserBookings)

			bookings := authed.Group("/bookings")
			bookings.POST("", h.CreateBooking)
			bookings.GET("/me", h.GetMyBookings)
			bookings.GET("/:id", h.GetBookingByID)
			bookings.POST("/:id/payments", h.CreatePayment)
			bookings.GET("/:id/payments", h.GetBookingPayments)
			bookings.GET("/:id/voucher", h.GetBookingVoucherPDF)
			bookings.GET("/:id/invoice", h.GetBookingInvoicePDF)
		}

		// Back office
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(env), middleware.RequireRoles(domain.RoleAdmin))
		{
			admin.GET("/stats", h.GetDashboardStats)
			admin.POST("/seed", h.RunSeed)

			admin.POST("/vehicles", h.CreateVehicle)
			admin.PUT("/vehicles/:id", h.UpdateVehicle)
			admin.DELETE("/vehicles/:id", h.DeleteVehicle)

			admin.POST("/locations", h.CreateLocation)
			admin.PUT("/locations/:id", h.UpdateLocation)
			admin.DELETE("/locations/:id", h.DeleteLocation)

			admin.GET("/bookings", h.GetBookings)
			admin.PATCH("/bookings/:id/status", h.UpdateBookingStatus)

			admin.GET("/payments", h.GetPayments)
			admin.PATCH("/payments/:id/status", h.UpdatePaymentStatus)

			admin.GET("/users", h.GetUsers)
			admin.GET("/users/:id", h.GetUserByID)
			admin.PUT("/users/:id", h.UpdateUser)
			admin.DELETE("/users/:id", h.DeleteUser)
		}
	}

	h.SetRouter(r)
	return r
}
