// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	propertystore "github.com/dalemusser/estatehub/internal/app/store/properties"
	savedstore "github.com/dalemusser/estatehub/internal/app/store/saved"
	userstore "github.com/dalemusser/estatehub/internal/app/store/users"
	"github.com/dalemusser/estatehub/internal/app/system/events"
	"github.com/dalemusser/estatehub/internal/app/system/imagestore"
	"github.com/dalemusser/estatehub/internal/app/system/mailer"
	"github.com/dalemusser/estatehub/internal/app/system/metrics"
	"github.com/dalemusser/estatehub/internal/app/system/ratelimit"
	"github.com/dalemusser/estatehub/internal/app/system/searchcache"
	"github.com/dalemusser/estatehub/internal/app/system/tasks"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/estatehub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It builds
// the shared services, promotes the bootstrap admin and starts background
// jobs.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
		return err
	}

	svc := deps.Services
	if svc == nil {
		return fmt.Errorf("startup: DBDeps.Services is nil")
	}

	mail, err := mailer.New(mailer.Config{
		Backend:          appCfg.MailBackend,
		SMTPHost:         appCfg.MailSMTPHost,
		SMTPPort:         appCfg.MailSMTPPort,
		SMTPUser:         appCfg.MailSMTPUser,
		SMTPPass:         appCfg.MailSMTPPass,
		MailerSendAPIKey: appCfg.MailerSendAPIKey,
		From:             appCfg.MailFrom,
		FromName:         appCfg.MailFromName,
	}, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	svc.Mail = mail

	images, err := buildImageStore(ctx, appCfg)
	if err != nil {
		return fmt.Errorf("image store: %w", err)
	}
	svc.Images = images

	// Optional backends degrade to no-ops so the API still serves without them.
	if appCfg.RedisAddr != "" {
		cache, err := searchcache.New(ctx, appCfg.RedisAddr, appCfg.RedisPassword, appCfg.RedisDB, appCfg.SearchCacheTTL, logger)
		if err != nil {
			logger.Warn("search cache disabled", zap.Error(err))
		} else {
			svc.Cache = cache
		}
	}
	svc.Events = events.Nop{}
	if appCfg.NatsURL != "" {
		pub, err := events.NewNATS(appCfg.NatsURL, logger)
		if err != nil {
			logger.Warn("event publishing disabled", zap.Error(err))
		} else {
			svc.Events = pub
		}
	}

	svc.Metrics = metrics.New()
	svc.Logins = ratelimit.NewLoginLimiter(appCfg.LoginRateLimit, 0)
	if appCfg.ContactRateLimit > 0 {
		svc.Contact = ratelimit.New(appCfg.ContactRateLimit, time.Hour)
	}

	svc.Scheduler = workers.NewScheduler(logger)
	job := tasks.PruneSavedPropertiesJob(
		savedstore.New(deps.MongoClient, deps.MongoDatabase, logger),
		propertystore.New(deps.MongoDatabase),
		logger,
		appCfg.SavedSweepSchedule,
	)
	if err := svc.Scheduler.Add(job); err != nil {
		return err
	}
	svc.Scheduler.Start()

	logger.Info("startup complete",
		zap.String("storage", appCfg.StorageType),
		zap.String("mail_backend", appCfg.MailBackend),
		zap.Bool("search_cache", svc.Cache != nil),
		zap.Bool("events", appCfg.NatsURL != ""))
	return nil
}

func buildImageStore(ctx context.Context, appCfg AppConfig) (imagestore.Store, error) {
	if appCfg.StorageType == "s3" {
		return imagestore.NewS3(ctx, appCfg.StorageS3Region, appCfg.StorageS3Bucket, appCfg.StorageS3Prefix, appCfg.StoragePublicURL)
	}
	return imagestore.NewLocal(appCfg.StorageLocalPath, appCfg.StorageLocalURL)
}

// ensureAdmin promotes the configured admin email to role admin. A missing
// account is only logged: the operator registers it and restarts.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	if email == "" {
		return nil
	}
	found, changed, err := userstore.New(deps.MongoDatabase).PromoteToAdmin(ctx, email)
	if err != nil {
		logger.Error("ensure admin failed", zap.String("email", email), zap.Error(err))
		return fmt.Errorf("ensure admin: %w", err)
	}
	switch {
	case !found:
		logger.Warn("admin_email has no account yet", zap.String("email", email))
	case changed:
		logger.Info("promoted user to admin", zap.String("email", email))
	}
	return nil
}
