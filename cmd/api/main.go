package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/hemolink/donation-service/internal/adapters/handler"
	"github.com/hemolink/donation-service/internal/adapters/middleware"
	"github.com/hemolink/donation-service/internal/adapters/repository"
	"github.com/hemolink/donation-service/internal/config"
	"github.com/hemolink/donation-service/internal/core/domain"
	"github.com/hemolink/donation-service/internal/core/services"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	ctx := context.Background()

	if cfg.MigrationURL != "" {
		runDBMigration(cfg.MigrationURL, cfg.DatabaseURL)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Authenticated with Redis successfully")

	donorRepo := repository.NewDonorRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)

	authService := services.NewGoogleOAuthService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		donorRepo,
		cfg.JWTPrivateKey,
		redisClient,
	)
	registrationService := services.NewRegistrationService(donorRepo)
	donationService := services.NewDonationService(requestRepo, campaignRepo)
	emergencyService := services.NewEmergencyService(requestRepo)
	campaignService := services.NewCampaignService(campaignRepo, redisClient)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTPublicKey, redisClient)

	authHandler := handler.NewAuthHandler(authService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)
	donationHandler := handler.NewDonationHandler(donationService)
	emergencyHandler := handler.NewEmergencyHandler(emergencyService)
	campaignHandler := handler.NewCampaignHandler(campaignService)
	bloodTypeHandler := handler.NewBloodTypeHandler()
	healthHandler := handler.NewHealthHandler(db, redisClient)

	anyUser := []string{string(domain.RoleAdmin), string(domain.RoleStaff), string(domain.RoleDonor)}

	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/health/ready", healthHandler.Ready)
	mux.HandleFunc("/health/live", healthHandler.Live)
	mux.Handle("/metrics", promhttp.Handler())

	// Identity
	mux.HandleFunc("GET /login", authHandler.Login)
	mux.HandleFunc("GET /auth/google/callback", authHandler.LoginCallback)
	mux.HandleFunc("POST /register", registrationHandler.Register)
	mux.Handle("POST /logout", authMiddleware.RequireRole(anyUser, authHandler.Logout))

	// Campaign browser and blood-type info are public reads
	mux.HandleFunc("GET /api/campaigns", campaignHandler.List)
	mux.HandleFunc("GET /api/campaigns/{campaignId}", campaignHandler.Get)
	mux.HandleFunc("GET /api/blood-types", bloodTypeHandler.List)
	mux.HandleFunc("GET /api/blood-types/{type}/compatibility", bloodTypeHandler.Compatibility)

	// Donor request surfaces
	mux.Handle("POST /api/donations/book", authMiddleware.RequireRole(anyUser, donationHandler.Book))
	mux.Handle("GET /api/donations/my-requests", authMiddleware.RequireRole(anyUser, donationHandler.MyRequests))
	mux.Handle("GET /api/donations/my-requests/counts", authMiddleware.RequireRole(anyUser, donationHandler.Counts))
	mux.Handle("PATCH /api/donations/my-requests/{requestId}/cancel", authMiddleware.RequireRole(anyUser, donationHandler.Cancel))

	mux.Handle("POST /api/emergency", authMiddleware.RequireRole(anyUser, emergencyHandler.Create))
	mux.Handle("GET /api/emergency/my", authMiddleware.RequireRole(anyUser, emergencyHandler.Mine))
	mux.Handle("DELETE /api/emergency/{requestId}", authMiddleware.RequireRole(anyUser, emergencyHandler.Cancel))

	root := middleware.CORS(cfg.Origins())(middleware.Metrics(mux))

	log.Printf("Starting server on :%s", cfg.ServerPort)
	if err := http.ListenAndServe(":"+cfg.ServerPort, root); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}

func runDBMigration(migrationURL, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatalf("cannot create migrate instance: %v", err)
	}

	if err := migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatalf("failed to run migrate up: %v", err)
	}
	log.Println("db migrated successfully")
}
