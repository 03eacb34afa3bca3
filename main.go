package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nailart/config"
	"nailart/database"
	appointmentRepo "nailart/database/repository/appointment"
	"nailart/handlers"
	"nailart/middleware"
	"nailart/routes"
	"nailart/services/admin"
	"nailart/services/appointment"
	"nailart/services/notification"
	"nailart/services/session"
	"nailart/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// Store. The connection is opened on first use.
	connector := database.NewConnector(cfg.MongoURI, cfg.MongoDB, logger)
	apptRepo := appointmentRepo.NewMongoAppointmentRepo(connector)
	if cfg.MongoURI == "" {
		logger.Warn("MONGODB_URI is not set; bookings will fail until it is configured")
	} else {
		indexCtx, cancel := context.WithTimeout(rootCtx, 15*time.Second)
		if err := apptRepo.EnsureIndexes(indexCtx); err != nil {
			logger.Warn("main: failed to ensure appointment indexes", zap.Error(err))
		}
		cancel()
	}

	// Email.
	provider := notification.NewProvider(rootCtx, cfg, logger)
	adminRecipients := cfg.AdminEmails()
	if len(adminRecipients) == 0 {
		logger.Warn("No admin email recipients configured (ADMIN_EMAILS / ADMIN_EMAIL)")
	}
	notifier := notification.NewDefaultNotifier(provider, adminRecipients, logger)

	// services.
	appointmentService := appointment.NewAppointmentService(apptRepo, notifier, logger)
	tokens := session.NewService(cfg.AdminSessionSecret, session.DefaultTTL)
	if !tokens.Configured() {
		logger.Warn("ADMIN_SESSION_SECRET is not set; admin login is disabled")
	}
	adminService := admin.NewAdminService(cfg.AllowedAdminLogins(), cfg.AdminPassword, tokens)

	health := utils.NewHealthMonitor(connector)
	if cfg.MongoURI != "" {
		health.Start(rootCtx, 60*time.Second)
	}

	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	adminHandler := handlers.NewAdminHandler(adminService, appointmentService, tokens.TTL(), config.IsProduction())

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		CreateAppointmentHandler: appointmentHandler.CreateAppointmentHandler,
		CatalogHandler:           handlers.CatalogHandler,
		HealthHandler:            handlers.HealthHandler(health),

		AdminLoginHandler:            adminHandler.LoginHandler,
		AdminLogoutHandler:           adminHandler.LogoutHandler,
		AdminListAppointmentsHandler: adminHandler.ListAppointmentsHandler,
		AdminSession:                 middleware.AdminSessionMiddleware(tokens),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())

	routes.RegisterRoutes(router, handlerBundle, config.SplitList(cfg.CORSOrigins))

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
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
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := connector.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
