// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/mailer"
	"github.com/dalemusser/estatehub/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// minProdSecret is the shortest jwt_secret accepted when env=prod.
const minProdSecret = 32

// appConfigKeys defines the configuration keys for EstateHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: ESTATEHUB_MONGO_URI, ESTATEHUB_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "estatehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Tokens and accounts
	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Token signing secret (at least 32 bytes in production)"},
	{Name: "jwt_expiry", Default: "720h", Desc: "Token lifetime (e.g., 720h, 24h)"},
	{Name: "allow_admin_signup", Default: false, Desc: "Allow role=admin on public registration"},
	{Name: "admin_email", Default: "", Desc: "Email of an existing user to promote to admin on startup"},
	{Name: "client_url", Default: "http://localhost:5173", Desc: "Browser client origin allowed by CORS"},

	// Image storage
	{Name: "storage_type", Default: "local", Desc: "Image storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for uploaded images"},
	{Name: "storage_local_url", Default: "/uploads", Desc: "URL prefix for serving local images"},
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "estate/", Desc: "S3 key prefix"},
	{Name: "storage_public_url", Default: "", Desc: "Public base URL for S3 images (CDN or bucket URL)"},

	// Email
	{Name: "mail_backend", Default: "log", Desc: "Email backend: 'log', 'smtp' or 'mailersend'"},
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mailersend_api_key", Default: "", Desc: "MailerSend API key"},
	{Name: "mail_from", Default: "noreply@estatehub.local", Desc: "From email address"},
	{Name: "mail_from_name", Default: "EstateHub", Desc: "From display name"},
	{Name: "contact_inbox", Default: "admin@estatehub.local", Desc: "Address that receives contact-form messages"},

	// Search cache
	{Name: "redis_addr", Default: "", Desc: "Redis address for the search cache (blank disables caching)"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "redis_db", Default: 0, Desc: "Redis database number"},
	{Name: "search_cache_ttl", Default: "30s", Desc: "Lifetime of cached search results"},

	// Events
	{Name: "nats_url", Default: "", Desc: "NATS URL for domain events (blank disables publishing)"},

	// Background jobs
	{Name: "saved_sweep_schedule", Default: tasks.DefaultPruneSchedule, Desc: "Cron schedule for pruning saved references to deleted listings"},

	// Timeouts
	{Name: "timeout_short", Default: "5s", Desc: "Timeout for single-document store calls"},
	{Name: "timeout_medium", Default: "10s", Desc: "Timeout for list and multi-step store calls"},
	{Name: "timeout_long", Default: "30s", Desc: "Timeout for uploads and outbound email"},

	// Rate limits
	{Name: "login_rate_limit", Default: 10, Desc: "Login attempts per minute per client IP"},
	{Name: "contact_rate_limit", Default: 5, Desc: "Contact-form submissions per hour per client IP"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (ESTATEHUB_* for the app) and flags, merged with
// precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ESTATEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret:        appValues.String("jwt_secret"),
		JWTExpiry:        appValues.Duration("jwt_expiry", 30*24*time.Hour),
		AllowAdminSignup: appValues.Bool("allow_admin_signup"),
		AdminEmail:       strings.TrimSpace(appValues.String("admin_email")),
		ClientURL:        appValues.String("client_url"),

		StorageType:      strings.ToLower(appValues.String("storage_type")),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),
		StorageS3Region:  appValues.String("storage_s3_region"),
		StorageS3Bucket:  appValues.String("storage_s3_bucket"),
		StorageS3Prefix:  appValues.String("storage_s3_prefix"),
		StoragePublicURL: appValues.String("storage_public_url"),

		MailBackend:      strings.ToLower(appValues.String("mail_backend")),
		MailSMTPHost:     appValues.String("mail_smtp_host"),
		MailSMTPPort:     appValues.Int("mail_smtp_port"),
		MailSMTPUser:     appValues.String("mail_smtp_user"),
		MailSMTPPass:     appValues.String("mail_smtp_pass"),
		MailerSendAPIKey: appValues.String("mailersend_api_key"),
		MailFrom:         appValues.String("mail_from"),
		MailFromName:     appValues.String("mail_from_name"),
		ContactInbox:     appValues.String("contact_inbox"),

		RedisAddr:      appValues.String("redis_addr"),
		RedisPassword:  appValues.String("redis_password"),
		RedisDB:        appValues.Int("redis_db"),
		SearchCacheTTL: appValues.Duration("search_cache_ttl", 30*time.Second),

		NatsURL: appValues.String("nats_url"),

		SavedSweepSchedule: appValues.String("saved_sweep_schedule"),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
		TimeoutLong:   appValues.Duration("timeout_long", 30*time.Second),

		LoginRateLimit:   appValues.Int("login_rate_limit"),
		ContactRateLimit: appValues.Int("contact_rate_limit"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	return validateApp(coreCfg.Env, appCfg)
}

// validateApp holds the checks that do not need a logger, so they can be
// tested directly.
func validateApp(env string, appCfg AppConfig) error {
	var errs []error

	if appCfg.JWTSecret == "" {
		errs = append(errs, errors.New("jwt_secret is required"))
	} else if env == "prod" && len(appCfg.JWTSecret) < minProdSecret {
		errs = append(errs, fmt.Errorf("jwt_secret must be at least %d bytes in production", minProdSecret))
	}
	if appCfg.JWTExpiry <= 0 {
		errs = append(errs, errors.New("jwt_expiry must be positive"))
	}

	switch appCfg.StorageType {
	case "local":
		if appCfg.StorageLocalPath == "" {
			errs = append(errs, errors.New("storage_type=local requires storage_local_path"))
		}
	case "s3":
		if appCfg.StorageS3Bucket == "" || appCfg.StorageS3Region == "" {
			errs = append(errs, errors.New("storage_type=s3 requires storage_s3_bucket and storage_s3_region"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage_type must be 'local' or 's3', got %q", appCfg.StorageType))
	}

	switch appCfg.MailBackend {
	case mailer.BackendLog, mailer.BackendSMTP:
	case mailer.BackendMailerSend:
		if appCfg.MailerSendAPIKey == "" {
			errs = append(errs, errors.New("mail_backend=mailersend requires mailersend_api_key"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown mail_backend %q", appCfg.MailBackend))
	}

	if _, err := cron.ParseStandard(appCfg.SavedSweepSchedule); err != nil {
		errs = append(errs, fmt.Errorf("invalid saved_sweep_schedule: %w", err))
	}

	return errors.Join(errs...)
}
