package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "fleetrent-backend/internal/api/http"
	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/jobs"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository/postgres"
	"fleetrent-backend/internal/scheduler"
	"fleetrent-backend/internal/security"
	"fleetrent-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting FleetRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Email Service
	emailSvc := newEmailService(cfg)

	// Initialize Services
	vehicleSvc := service.NewVehicleService(
		store.VehicleRepository,
		store.SubunitRepository,
		store.NoteRepository,
		store.BookingRepository,
	)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.VehicleRepository,
		store.CustomerRepository,
		store.LocationRepository,
		emailSvc,
		cfg.Email.AdminEmail,
	)
	customerSvc := service.NewCustomerService(store.CustomerRepository)
	locationSvc := service.NewLocationService(store.LocationRepository)
	authSvc := service.NewAuthService(store.AdminRepository, tokenManager)

	// Initialize HTTP handlers
	vehicleHandler := httpapi.NewVehicleHandler(vehicleSvc, locationSvc)
	bookingHandler := httpapi.NewBookingHandler(bookingSvc)
	adminHandler := httpapi.NewAdminHandler(authSvc, bookingSvc, customerSvc, vehicleSvc)

	router := httpapi.NewRouter(vehicleHandler, bookingHandler, adminHandler, tokenManager)

	// Start the booking scheduler alongside the API server
	jobRunner := jobs.NewJobRunner(db, store, emailSvc, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}

func newEmailService(cfg *config.Config) service.EmailService {
	if cfg.Email.Provider == "sendgrid" {
		logger.Info("Using SendGrid email provider")
		return service.NewSendGridEmailService(
			cfg.Email.SendGrid.APIKey,
			cfg.Email.SendGrid.FromEmail,
			cfg.Email.SendGrid.FromName,
			cfg.Email.AdminEmail,
		)
	}
	logger.Info("Using SMTP email provider", "host", cfg.Email.SMTP.Host, "port", cfg.Email.SMTP.Port)
	return service.NewSMTPEmailService(
		cfg.Email.SMTP.Host,
		cfg.Email.SMTP.Port,
		cfg.Email.SMTP.User,
		cfg.Email.SMTP.Password,
		cfg.Email.SMTP.From,
	)
}
