// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, body limits); everything
// specific to the marketplace lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer tokens
	JWTSecret string        // HS256 signing secret
	JWTExpiry time.Duration // token lifetime

	// Accounts
	AllowAdminSignup bool   // accept role=admin on POST /api/auth/register
	AdminEmail       string // promoted to admin on startup if the account exists

	// Browser client origin allowed by CORS
	ClientURL string

	// Image storage
	StorageType      string // "local" or "s3"
	StorageLocalPath string // directory for local images
	StorageLocalURL  string // URL prefix local images are served from
	StorageS3Region  string
	StorageS3Bucket  string
	StorageS3Prefix  string // key prefix (e.g., "estate/")
	StoragePublicURL string // CDN or bucket URL used to build image links

	// Email
	MailBackend      string // "log", "smtp" or "mailersend"
	MailSMTPHost     string
	MailSMTPPort     int
	MailSMTPUser     string
	MailSMTPPass     string
	MailerSendAPIKey string
	MailFrom         string
	MailFromName     string
	ContactInbox     string // receives contact-form submissions

	// Search cache (disabled when RedisAddr is empty)
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SearchCacheTTL time.Duration

	// Domain events (disabled when NatsURL is empty)
	NatsURL string

	// Background jobs
	SavedSweepSchedule string // cron schedule for pruning dangling saved references

	// Store timeouts
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration

	// Rate limits
	LoginRateLimit   int // attempts per minute per IP
	ContactRateLimit int // submissions per hour per IP
}
