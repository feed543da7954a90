package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const envPrefix = "QUEZI"

type AppConfig struct {
	Port     int    `yaml:"port" envconfig:"PORT"`
	GinMode  string `yaml:"gin_mode" envconfig:"GIN_MODE"`
	Env      string `yaml:"env" envconfig:"ENV"`
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`
}

type DatabaseConfig struct {
	DSN         string `yaml:"dsn" envconfig:"DSN"`
	AutoMigrate bool   `yaml:"auto_migrate" envconfig:"AUTO_MIGRATE"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"ADDR"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
	DB       int    `yaml:"db" envconfig:"DB"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret" envconfig:"SECRET"`
	Issuer     string `yaml:"issuer" envconfig:"ISSUER"`
	AccessTTL  string `yaml:"access_ttl" envconfig:"ACCESS_TTL"`
	RefreshTTL string `yaml:"refresh_ttl" envconfig:"REFRESH_TTL"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl" envconfig:"TTL"`
	Length       int    `yaml:"length" envconfig:"LENGTH"`
	MaxAttempts  int    `yaml:"max_attempts" envconfig:"MAX_ATTEMPTS"`
	ResendWindow string `yaml:"resend_window" envconfig:"RESEND_WINDOW"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid" envconfig:"ACCOUNT_SID"`
	AuthToken  string `yaml:"auth_token" envconfig:"AUTH_TOKEN"`
	FromNumber string `yaml:"from_number" envconfig:"FROM_NUMBER"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path" envconfig:"MODEL_PATH"`
}

type RabbitMQConfig struct {
	URL      string `yaml:"url" envconfig:"URL"`
	Exchange string `yaml:"exchange" envconfig:"EXCHANGE"`
	Queue    string `yaml:"queue" envconfig:"QUEUE"`
	Prefetch int    `yaml:"prefetch" envconfig:"PREFETCH"`
}

type CacheConfig struct {
	RatingTTL string `yaml:"rating_ttl" envconfig:"RATING_TTL"`
}

type TracingConfig struct {
	Endpoint    string `yaml:"endpoint" envconfig:"ENDPOINT"`
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME"`
}

// ConfigFile mirrors config.yml. Every field can be overridden by an
// environment variable such as QUEZI_DATABASE_DSN.
type ConfigFile struct {
	App      AppConfig      `yaml:"app" envconfig:"APP"`
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
	Redis    RedisConfig    `yaml:"redis" envconfig:"REDIS"`
	JWT      JWTConfig      `yaml:"jwt" envconfig:"JWT"`
	OTP      OTPConfig      `yaml:"otp" envconfig:"OTP"`
	Twilio   TwilioConfig   `yaml:"twilio" envconfig:"TWILIO"`
	Casbin   CasbinConfig   `yaml:"casbin" envconfig:"CASBIN"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq" envconfig:"RABBITMQ"`
	Cache    CacheConfig    `yaml:"cache" envconfig:"CACHE"`
	Tracing  TracingConfig  `yaml:"tracing" envconfig:"TRACING"`
}

type Config struct {
	Port            string
	GinMode         string
	Env             string
	LogLevel        string
	DSN             string
	AutoMigrate     bool
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTIssuer       string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	OTPTTL          time.Duration
	OTPLength       int
	OTPMaxAttempts  int
	OTPResendWindow time.Duration
	TwilioSID       string
	TwilioToken     string
	TwilioFrom      string
	CasbinModelPath string
	RabbitURL       string
	RabbitExchange  string
	RabbitQueue     string
	RabbitPrefetch  int
	RatingCacheTTL  time.Duration
	TracingEndpoint string
	ServiceName     string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the YAML file named by QUEZI_CONFIG (default config/config.yml),
// applies environment overrides and validates the result.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()
	return LoadFile(env(envPrefix+"_CONFIG", "config/config.yml"))
}

// LoadFile is Load for an explicit path
func LoadFile(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if err := envconfig.Process(envPrefix, configFile); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return fromFile(configFile)
}

func fromFile(configFile *ConfigFile) (*Config, error) {
	accTTL, err := parseDuration(configFile.JWT.AccessTTL, 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := parseDuration(configFile.JWT.RefreshTTL, 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	otpTTL, err := parseDuration(configFile.OTP.TTL, 10*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	resWnd, err := parseDuration(configFile.OTP.ResendWindow, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	ratingTTL, err := parseDuration(configFile.Cache.RatingTTL, 10*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid rating cache TTL: %w", err)
	}

	if configFile.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	cfg := &Config{
		Port:            fmt.Sprintf("%d", configFile.App.Port),
		GinMode:         configFile.App.GinMode,
		Env:             configFile.App.Env,
		LogLevel:        configFile.App.LogLevel,
		DSN:             configFile.Database.DSN,
		AutoMigrate:     configFile.Database.AutoMigrate,
		RedisAddr:       configFile.Redis.Addr,
		RedisPassword:   configFile.Redis.Password,
		RedisDB:         configFile.Redis.DB,
		JWTSecret:       configFile.JWT.Secret,
		JWTIssuer:       configFile.JWT.Issuer,
		AccessTTL:       accTTL,
		RefreshTTL:      refTTL,
		OTPTTL:          otpTTL,
		OTPLength:       configFile.OTP.Length,
		OTPMaxAttempts:  configFile.OTP.MaxAttempts,
		OTPResendWindow: resWnd,
		TwilioSID:       configFile.Twilio.AccountSID,
		TwilioToken:     configFile.Twilio.AuthToken,
		TwilioFrom:      configFile.Twilio.FromNumber,
		CasbinModelPath: configFile.Casbin.ModelPath,
		RabbitURL:       configFile.RabbitMQ.URL,
		RabbitExchange:  configFile.RabbitMQ.Exchange,
		RabbitQueue:     configFile.RabbitMQ.Queue,
		RabbitPrefetch:  configFile.RabbitMQ.Prefetch,
		RatingCacheTTL:  ratingTTL,
		TracingEndpoint: configFile.Tracing.Endpoint,
		ServiceName:     configFile.Tracing.ServiceName,
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Port == "0" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "production"
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "quezi"
	}
	if cfg.OTPLength <= 0 {
		cfg.OTPLength = 6
	}
	if cfg.OTPMaxAttempts <= 0 {
		cfg.OTPMaxAttempts = 5
	}
	if cfg.CasbinModelPath == "" {
		cfg.CasbinModelPath = "config/rbac_model.conf"
	}
	if cfg.RabbitExchange == "" {
		cfg.RabbitExchange = "quezi.events"
	}
	if cfg.RabbitQueue == "" {
		cfg.RabbitQueue = "quezi.notifications"
	}
	if cfg.RabbitPrefetch <= 0 {
		cfg.RabbitPrefetch = 8
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "quezi-api"
	}
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
