package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KasenaM/kisite-canines/config"
	"github.com/KasenaM/kisite-canines/database"
	activityRepoPkg "github.com/KasenaM/kisite-canines/database/repository/activity"
	bookingRepoPkg "github.com/KasenaM/kisite-canines/database/repository/booking"
	dogRepoPkg "github.com/KasenaM/kisite-canines/database/repository/dog"
	instanceRepoPkg "github.com/KasenaM/kisite-canines/database/repository/instance"
	paymentRepoPkg "github.com/KasenaM/kisite-canines/database/repository/payment"
	"github.com/KasenaM/kisite-canines/handlers"
	"github.com/KasenaM/kisite-canines/middleware"
	"github.com/KasenaM/kisite-canines/routes"
	"github.com/KasenaM/kisite-canines/services/activity"
	"github.com/KasenaM/kisite-canines/services/analytics"
	"github.com/KasenaM/kisite-canines/services/booking"
	"github.com/KasenaM/kisite-canines/services/dog"
	"github.com/KasenaM/kisite-canines/services/instance"
	"github.com/KasenaM/kisite-canines/services/payment"
	"github.com/KasenaM/kisite-canines/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	instanceRepo := instanceRepoPkg.NewMongoInstanceRepo()
	dogRepo := dogRepoPkg.NewMongoDogRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	activityRepo := activityRepoPkg.NewMongoActivityRepo()

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:         bookingRepo,
		InstanceRepo: instanceRepo,
		ActivityRepo: activityRepo,
		DogRepo:      dogRepo,
	}
	instanceService := &instance.DefaultInstanceService{
		Repo: instanceRepo,
	}
	dogService := &dog.DefaultDogService{
		Repo: dogRepo,
	}
	paymentService := &payment.DefaultPaymentService{
		Repo:          paymentRepo,
		BookingRepo:   bookingRepo,
		StripeEnabled: config.AppConfig.StripeKey != "",
	}
	activityService := &activity.DefaultActivityService{
		Repo: activityRepo,
	}
	analyticsService := &analytics.DefaultAnalyticsService{
		Bookings:   bookingRepo,
		Instances:  instanceRepo,
		Payments:   paymentRepo,
		Dogs:       dogRepo,
		Activities: activityRepo,
		Cache:      utils.GetCacheClient(),
		CacheTTL:   time.Duration(config.AppConfig.AnalyticsCacheSeconds) * time.Second,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Booking:   handlers.NewBookingHandler(bookingService),
		Instance:  handlers.NewInstanceHandler(instanceService),
		Dog:       handlers.NewDogHandler(dogService),
		Payment:   handlers.NewPaymentHandler(paymentService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Activity:  handlers.NewActivityHandler(activityService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
