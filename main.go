package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sportify/config"
	"sportify/cron"
	"sportify/database"
	facilityRepoPkg "sportify/database/repository/facility"
	reservationRepoPkg "sportify/database/repository/reservation"
	userRepoPkg "sportify/database/repository/user"
	"sportify/handlers"
	"sportify/middleware"
	"sportify/routes"
	"sportify/services/notification"
	"sportify/services/payment"
	"sportify/services/reservation"
	"sportify/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	facilityRepo := facilityRepoPkg.NewMongoFacilityRepo()
	reservationRepo := reservationRepoPkg.NewMongoReservationRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// task queue client shared by notifications and deferred completion.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueue,
	})
	defer asynqClient.Close()

	notificationService := &notification.DefaultNotificationService{
		Client: asynqClient,
	}

	// services.
	bookingService := &reservation.DefaultBookingService{
		Facilities:   facilityRepo,
		Reservations: reservationRepo,
		Users:        userRepo,
		Notifier:     notificationService,
	}

	var paymentProvider payment.Provider
	switch config.AppConfig.PaymentProvider {
	case "stripe":
		paymentProvider = &payment.StripeProvider{}
	default:
		paymentProvider = &payment.ReferenceProvider{}
	}

	paymentService := &payment.DefaultPaymentService{
		Reservations: reservationRepo,
		Users:        userRepo,
		Provider:     paymentProvider,
		Notifier:     notificationService,
		Scheduler:    notificationService,
	}

	// background worker: mail delivery and deferred auto-completion.
	cron.InitTaskWorker(&notification.SMTPMailer{}, bookingService)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Reservations: &handlers.ReservationHandler{Service: bookingService},
		Payments:     &handlers.PaymentHandler{Service: paymentService},
		Facilities:   &handlers.FacilityHandler{Repo: facilityRepo},
	}
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
