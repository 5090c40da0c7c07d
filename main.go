// File: salonbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonbook/config"
	"salonbook/cron"
	"salonbook/database"
	appointmentRepo "salonbook/database/repository/appointment"
	professionalRepo "salonbook/database/repository/professional"
	salonRepo "salonbook/database/repository/salon"
	"salonbook/handlers"
	"salonbook/middleware"
	"salonbook/routes"
	"salonbook/services/booking"
	"salonbook/services/calendar"
	"salonbook/services/notification"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Repositories.
	appts := appointmentRepo.NewMongoAppointmentRepo()
	salons := salonRepo.NewMongoSalonRepo()
	pros := professionalRepo.NewMongoProfessionalRepo()
	if err := appts.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
	}

	// Services.
	calendarService, err := calendar.NewDefaultCalendarService(appts, pros, utils.GetCacheClient())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar service: %v", err)
	}
	notifier := notification.NewLogNotifier()
	bookingService := booking.NewDefaultBookingService(salons, appts, pros, calendarService, notifier, utils.GetCacheClient())

	// Background workers.
	cron.InitReminderWorker(appts, salons, notifier)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// HTTP surface.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	availabilityHandler := handlers.NewAvailabilityHandler(salons, pros, calendarService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	routes.RegisterRoutes(router, availabilityHandler, bookingHandler)

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
