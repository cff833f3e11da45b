// internal/app/bootstrap/routes.go
package bootstrap

import (
	"errors"
	"net/http"

	accountfeature "github.com/dalemusser/estatehub/internal/app/features/account"
	appointmentsfeature "github.com/dalemusser/estatehub/internal/app/features/appointments"
	contactfeature "github.com/dalemusser/estatehub/internal/app/features/contact"
	healthfeature "github.com/dalemusser/estatehub/internal/app/features/health"
	homefeature "github.com/dalemusser/estatehub/internal/app/features/home"
	propertiesfeature "github.com/dalemusser/estatehub/internal/app/features/properties"
	uploadfeature "github.com/dalemusser/estatehub/internal/app/features/upload"
	usersfeature "github.com/dalemusser/estatehub/internal/app/features/users"
	userstore "github.com/dalemusser/estatehub/internal/app/store/users"
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const (
	appName    = "EstateHub"
	apiVersion = "1.0.0"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup and
// Startup have completed, so deps.Services is populated.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	return buildRouter(appCfg, deps, logger)
}

func buildRouter(appCfg AppConfig, deps DBDeps, logger *zap.Logger) (chi.Router, error) {
	svc := deps.Services
	if svc == nil || svc.Mail == nil || svc.Images == nil || svc.Metrics == nil {
		return nil, errors.New("build handler: services not initialized")
	}

	// The token manager reloads the user on every request so role changes
	// and deactivation take effect immediately.
	tokens, err := auth.NewManager(appCfg.JWTSecret, appCfg.JWTExpiry, userstore.NewFetcher(deps.MongoDatabase), logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(svc.Metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{appCfg.ClientURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(tokens.LoadUser)

	// Health check and metrics for load balancers and scrapers
	healthHandler := healthfeature.NewHandler(deps.MongoClient, apiVersion, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", svc.Metrics.Handler())

	// Locally stored images
	if appCfg.StorageType == "local" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// API index and JSON fallbacks
	homefeature.Routes(r, homefeature.NewHandler(appName, apiVersion))

	accountHandler := accountfeature.NewHandler(deps.MongoDatabase, tokens, svc.Logins, appCfg.AllowAdminSignup, logger)
	r.Mount("/api/auth", accountfeature.Routes(accountHandler, tokens))

	propertiesHandler := propertiesfeature.NewHandler(deps.MongoDatabase, svc.Cache, svc.Events, svc.Images, svc.Metrics, logger)
	r.Mount("/api/properties", propertiesfeature.Routes(propertiesHandler, tokens))

	usersHandler := usersfeature.NewHandler(deps.MongoClient, deps.MongoDatabase, svc.Metrics, logger)
	r.Mount("/api/users", usersfeature.Routes(usersHandler, tokens))

	apptHandler := appointmentsfeature.NewHandler(deps.MongoDatabase, svc.Mail, svc.Events, svc.Metrics, appName, logger)
	r.Mount("/api/appointments", appointmentsfeature.Routes(apptHandler, tokens))

	uploadHandler := uploadfeature.NewHandler(svc.Images, logger)
	r.Mount("/api/upload", uploadfeature.Routes(uploadHandler, tokens))

	contactHandler := contactfeature.NewHandler(svc.Mail, appName, appCfg.ContactInbox, logger)
	r.Mount("/api/contact", contactfeature.Routes(contactHandler, svc.Contact))

	return r, nil
}
