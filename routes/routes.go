package routes

import (
	"net/http"
	"time"

	"github.com/KasenaM/kisite-canines/handlers"
	"github.com/KasenaM/kisite-canines/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the wired handlers for route registration.
type HandlerBundle struct {
	Booking   *handlers.BookingHandler
	Instance  *handlers.InstanceHandler
	Dog       *handlers.DogHandler
	Payment   *handlers.PaymentHandler
	Analytics *handlers.AnalyticsHandler
	Activity  *handlers.ActivityHandler
}

// RegisterRoutes wires up CORS, the public endpoints and the authenticated
// API groups.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	registerHealthRoute(r)
	registerPublicRoutes(r)
	registerBookingRoutes(r, hb)
	registerDogRoutes(r, hb)
	registerPaymentRoutes(r, hb)
	registerAnalyticsRoutes(r, hb)
	registerAdminRoutes(r, hb)
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Kisite Canines booking service"})
	})
}

func registerPublicRoutes(r *gin.Engine) {
	r.GET("/api/packages", handlers.ListServicePackages)
}

func registerBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Booking.CreateBooking)
		api.GET("", hb.Booking.ListMyBookings)
		api.PATCH("/:id/cancel", hb.Booking.CancelBooking)
		api.PATCH("/:id/reschedule", hb.Booking.RescheduleBooking)
		api.PATCH("/:id/dogs/:dogItemId/services/:serviceIndex/cancel", hb.Booking.CancelService)
		api.PATCH("/:id/dogs/:dogItemId/services/:serviceIndex/reschedule", hb.Booking.RescheduleService)
	}

	instances := r.Group("/api/service-instances")
	{
		instances.Use(middleware.JWTAuthMiddleware())
		instances.GET("", hb.Instance.ListMyInstances)
		instances.GET("/:id", hb.Instance.GetInstance)
	}
}

func registerDogRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/dogs")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Dog.ListMyDogs)
		api.POST("", hb.Dog.CreateDog)
		api.PATCH("/:id", hb.Dog.UpdateDog)
	}
}

func registerPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Payment.CreatePayment)
		api.GET("", hb.Payment.ListMyPayments)
	}
}

func registerAnalyticsRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/analytics")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Analytics.UserAnalytics)
		api.GET("/range", hb.Analytics.UserAnalyticsByDate)
	}

	activities := r.Group("/api/activities")
	{
		activities.Use(middleware.JWTAuthMiddleware())
		activities.GET("", hb.Activity.RecentActivities)
	}
}

func registerAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AdminAuthMiddleware())
		api.GET("/analytics", hb.Analytics.AdminAnalytics)
		api.GET("/activities", hb.Activity.AllRecentActivities)
		api.GET("/payments", hb.Payment.ListAllPayments)
		api.GET("/service-instances", hb.Instance.ListAllInstances)
		api.GET("/dogs/:dogId/service-instances", hb.Instance.ListDogInstances)
	}
}
