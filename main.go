package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/UncoreDigital/secure-place-api/handlers"
	"github.com/UncoreDigital/secure-place-api/idp"
	"github.com/UncoreDigital/secure-place-api/idp/idpfactory"
	"github.com/UncoreDigital/secure-place-api/middleware"
	"github.com/UncoreDigital/secure-place-api/pkg/database"
	"github.com/UncoreDigital/secure-place-api/pkg/metrics"
	"github.com/UncoreDigital/secure-place-api/services"
	"github.com/UncoreDigital/secure-place-api/shared/utils"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting Secure Place API initialization")

	// Database
	dbConfig := database.NewConfig()
	db, err := database.Connect(dbConfig)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Identity provider
	provider, err := buildIdentityProvider()
	if err != nil {
		slog.Error("Failed to initialize identity provider", "error", err)
		os.Exit(1)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Services
	profileStore := services.NewProfileStore(db)
	firmService := services.NewFirmService(db)
	mailer := services.NewSMTPWelcomeMailer(services.NewMailConfigFromEnv())
	provisioningService := services.NewProvisioningService(provider, profileStore, mailer, firmService, collector)
	employeeService := services.NewEmployeeService(db, provider, profileStore, firmService)

	// JWT authentication
	jwtConfig := middleware.JWTAuthConfig{
		Secret:           os.Getenv("JWT_SECRET"),
		ExpectedIssuer:   os.Getenv("JWT_ISSUER"),
		ExpectedAudience: os.Getenv("JWT_AUDIENCE"),
	}
	if err := jwtConfig.Validate(); err != nil {
		slog.Error("Invalid JWT configuration", "error", err)
		os.Exit(1)
	}

	sessionCache := services.NewSessionCache(5 * time.Minute)
	jwtAuthMiddleware := middleware.NewJWTAuthMiddleware(jwtConfig, profileStore, sessionCache)

	// API routes
	apiMux := http.NewServeMux()
	handlers.NewEmployeeHandler(provisioningService, employeeService).SetupEmployeeRoutes(apiMux)
	handlers.NewFirmHandler(firmService).SetupFirmRoutes(apiMux)
	handlers.NewAuthHandler(jwtAuthMiddleware).SetupAuthRoutes(apiMux)

	// Middleware chain (CORS -> rate limit -> JWT auth -> admin check) on the API mux only
	corsMiddleware := middleware.NewCORSMiddleware()
	rateLimit := middleware.RateLimitMiddleware(120, time.Minute)

	protectedAPIHandler := corsMiddleware(
		rateLimit(
			jwtAuthMiddleware.AuthenticateJWT(
				middleware.RequireAdmin(apiMux),
			),
		),
	)

	topLevelMux := http.NewServeMux()
	topLevelMux.Handle("/health", utils.PanicRecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		type HealthStatus struct {
			Status   string `json:"status"`
			Service  string `json:"service"`
			Database string `json:"database"`
		}

		status := HealthStatus{Status: "healthy", Service: "secure-place-api", Database: "healthy"}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			status.Status = "unhealthy"
			status.Database = "unhealthy"
		}

		statusCode := http.StatusOK
		if status.Status != "healthy" {
			statusCode = http.StatusServiceUnavailable
		}
		utils.RespondWithJSON(w, statusCode, status)
	})))
	topLevelMux.Handle("/metrics", metrics.Handler(registry))
	topLevelMux.Handle("/api/v1/", middleware.RequestLogging(collector)(protectedAPIHandler))

	// Background reconciliation of identities that lost their profile row
	reconcilerCtx, cancelReconciler := context.WithCancel(context.Background())
	defer cancelReconciler()
	reconciler := services.NewOrphanReconciler(db, provider, collector)
	go reconciler.Start(reconcilerCtx)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	addr := ":" + port
	server := &http.Server{
		Addr:         addr,
		Handler:      topLevelMux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Secure Place API starting", "port", port, "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start Secure Place API", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down Secure Place API...")

	cancelReconciler()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Secure Place API stopped")
}

// buildIdentityProvider assembles the configured identity provider from
// environment variables. Supabase is the default.
func buildIdentityProvider() (idp.IdentityProvider, error) {
	providerType := idp.ProviderType(utils.GetEnvOrDefault("IDP_TYPE", string(idp.ProviderSupabase)))

	cfg := idpfactory.FactoryConfig{
		ProviderType:   providerType,
		BaseURL:        os.Getenv("IDP_BASE_URL"),
		ServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		ClientID:       os.Getenv("IDP_CLIENT_ID"),
		ClientSecret:   os.Getenv("IDP_CLIENT_SECRET"),
	}
	if scopes := os.Getenv("IDP_SCOPES"); scopes != "" {
		cfg.Scopes = strings.Split(scopes, ",")
	}

	return idpfactory.NewIdentityProvider(cfg)
}
