package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/internal/config"
	httpx "github.com/you/quezi/internal/http"
	"github.com/you/quezi/internal/http/handlers"
	"github.com/you/quezi/internal/http/middleware"
	"github.com/you/quezi/internal/infrastructure/auth"
	"github.com/you/quezi/internal/infrastructure/cache"
	"github.com/you/quezi/internal/infrastructure/database"
	"github.com/you/quezi/internal/infrastructure/messaging"
	"github.com/you/quezi/internal/infrastructure/notifications"
	"github.com/you/quezi/internal/infrastructure/repositories"
	"github.com/you/quezi/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Enforcer    *casbin.Enforcer
	Publisher   domain.EventPublisher

	// Repositories
	UserRepo    domain.UserRepository
	SessionRepo domain.SessionRepository
	OrgRepo     domain.OrganizationRepository
	ReviewRepo  domain.ReviewRepository
	RatingCache domain.RatingCache

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	VerificationSvc domain.VerificationUseCase
	UserSvc         domain.UserService
	OrgSvc          domain.OrganizationService
	ReviewSvc       domain.ReviewService
	PolicySvc       domain.PolicyService

	closers []func() error
}

// NewContainer dials Postgres, Redis and the broker and wires everything on top
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	db, err := database.Open(cfg.DSN, cfg.LogLevel == "debug")
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			closeDB(db)
			return nil, err
		}
	}

	rdb, err := database.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	return newContainer(cfg, logger, db, rdb)
}

// newContainer wires the container on already opened stores. The stores are
// closed when wiring fails.
func newContainer(cfg *config.Config, logger *zap.Logger, db *gorm.DB, rdb *redis.Client) (*Container, error) {
	c := &Container{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		RedisClient: rdb,
	}

	if err := c.initAuthorization(); err != nil {
		c.Close()
		return nil, err
	}
	c.initPublisher()
	c.initRepositories()
	c.initServices()

	seeded, err := c.PolicySvc.SeedDefaults()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("seed policies: %w", err)
	}
	if seeded {
		logger.Info("casbin: seeded default policies")
	}

	return c, nil
}

func (c *Container) initAuthorization() error {
	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("casbin: %w", err)
	}
	c.Enforcer = cas.E
	return nil
}

// initPublisher falls back to logging events when the broker is unset or down
func (c *Container) initPublisher() {
	if c.Config.RabbitURL == "" {
		c.Publisher = messaging.NewLogPublisher(c.Logger)
		return
	}

	pub, err := messaging.NewPublisher(c.Config.RabbitURL, c.Config.RabbitExchange)
	if err != nil {
		c.Logger.Warn("rabbitmq unavailable, events will only be logged", zap.Error(err))
		c.Publisher = messaging.NewLogPublisher(c.Logger)
		return
	}
	c.Publisher = pub
	c.closers = append(c.closers, pub.Close)
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.RefreshTTL)
	c.OrgRepo = repositories.NewOrganizationRepository(c.DB)
	c.ReviewRepo = repositories.NewReviewRepository(c.DB)
	c.RatingCache = cache.NewRatingCache(c.RedisClient, c.Config.RatingCacheTTL)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.PasswordSvc = auth.NewPasswordService(bcrypt.DefaultCost)
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	c.NotificationSvc = notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, c.Logger)

	c.OTPSvc = services.NewOTPService(c.NotificationSvc, c.RedisClient, services.OTPConfig{
		Length:       cfg.OTPLength,
		TTL:          cfg.OTPTTL,
		MaxAttempts:  cfg.OTPMaxAttempts,
		ResendWindow: cfg.OTPResendWindow,
	})

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.Publisher,
		c.Logger,
		services.AuthConfig{AccessTTL: cfg.AccessTTL, SessionTTL: cfg.RefreshTTL},
	)
	c.VerificationSvc = services.NewVerificationService(c.UserRepo, c.OTPSvc, c.Publisher, c.Logger)
	c.UserSvc = services.NewUserService(c.UserRepo, c.Logger)
	c.OrgSvc = services.NewOrganizationService(c.OrgRepo, c.UserRepo, c.Publisher, c.Logger)
	c.ReviewSvc = services.NewReviewService(c.ReviewRepo, c.UserRepo, c.RatingCache, c.Publisher, c.Logger)
	c.PolicySvc = services.NewPolicyService(c.Enforcer)
}

// Handlers builds the HTTP handler set
func (c *Container) Handlers() httpx.Handlers {
	return httpx.Handlers{
		Auth:          handlers.NewAuthHandlers(c.AuthSvc, c.VerificationSvc),
		Users:         handlers.NewUserHandlers(c.UserSvc, c.ReviewSvc),
		Organizations: handlers.NewOrganizationHandlers(c.OrgSvc),
		Reviews:       handlers.NewReviewHandlers(c.ReviewSvc),
		Admin:         handlers.NewAdminHandlers(c.UserSvc),
		Policies:      handlers.NewPolicyHandlers(c.PolicySvc),
	}
}

// Router mounts the handlers behind the JWT and Casbin middleware
func (c *Container) Router() http.Handler {
	return httpx.BuildRouter(
		c.Handlers(),
		middleware.NewAuthMW(c.TokenSvc, c.SessionRepo),
		middleware.NewSimpleCasbinMW(c.Enforcer),
		c.Logger,
	)
}

// Close releases the broker, Redis and database connections
func (c *Container) Close() {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			c.Logger.Warn("close failed", zap.Error(err))
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("redis close failed", zap.Error(err))
		}
	}
	if c.DB != nil {
		closeDB(c.DB)
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
