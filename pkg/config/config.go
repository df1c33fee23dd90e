package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Phone         PhoneConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	TemplateCache TemplateCacheConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HERO365_APP_ENV" required:"true"`
	Port         string `envconfig:"HERO365_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HERO365_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HERO365_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HERO365_DB_DSN"`
	Driver string `envconfig:"HERO365_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"HERO365_DB_HOST"`
	Port     int    `envconfig:"HERO365_DB_PORT" default:"5432"`
	User     string `envconfig:"HERO365_DB_USER"`
	Password string `envconfig:"HERO365_DB_PASSWORD"`
	Name     string `envconfig:"HERO365_DB_NAME"`
	SSLMode  string `envconfig:"HERO365_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HERO365_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HERO365_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HERO365_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HERO365_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN builds the DSN from discrete settings when one is not provided.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database settings incomplete: provide HERO365_DB_DSN or host/user/name")
	}

	userInfo := url.User(d.User)
	if d.Password != "" {
		userInfo = url.UserPassword(d.User, d.Password)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"HERO365_REDIS_URL"`
	Address      string        `envconfig:"HERO365_REDIS_ADDR"`
	Password     string        `envconfig:"HERO365_REDIS_PASSWORD"`
	DB           int           `envconfig:"HERO365_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HERO365_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HERO365_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HERO365_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HERO365_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HERO365_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"HERO365_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HERO365_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"HERO365_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"HERO365_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HERO365_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HERO365_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HERO365_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HERO365_ARGON_KEY_LEN" default:"32"`
}

type PhoneConfig struct {
	DefaultCountryCode string `envconfig:"HERO365_PHONE_DEFAULT_COUNTRY_CODE" default:"1"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"HERO365_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"HERO365_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"HERO365_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"HERO365_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"HERO365_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"HERO365_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HERO365_AUTO_MIGRATE" default:"false"`
}

type TemplateCacheConfig struct {
	TTL time.Duration `envconfig:"HERO365_TEMPLATE_CACHE_TTL" default:"10m"`
}
