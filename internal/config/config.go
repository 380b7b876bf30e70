package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Auth   AuthConfig
	SMTP   SMTPConfig
	Minio  MinioConfig
}

type ServerConfig struct {
	Port           string   `env:"SERVER_PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE" envDefault:"event_crm"`
}

type RedisConfig struct {
	URL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
}

// AuthConfig carries the JWT secrets and the environment-configured
// single-admin credential.
type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET,required"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTokenTTL   time.Duration `env:"JWT_EXPIRES_IN" envDefault:"168h"`
	RefreshTokenTTL  time.Duration `env:"JWT_REFRESH_EXPIRES_IN" envDefault:"720h"`
	AdminUsername    string        `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword    string        `env:"ADMIN_PASSWORD,required"`
	AdminEmail       string        `env:"ADMIN_EMAIL" envDefault:"admin@localhost"`
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST"`
	Port string `env:"SMTP_PORT" envDefault:"587"`
	User string `env:"SMTP_USER"`
	Pass string `env:"SMTP_PASS"`
	// Where new-inquiry notifications are sent.
	NotifyTo     string `env:"SMTP_NOTIFY_TO"`
	DashboardURL string `env:"DASHBOARD_URL" envDefault:"http://localhost:3000"`
}

type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"event-crm-media"`
	PublicURL string `env:"MINIO_PUBLIC_URL" envDefault:"http://localhost:9000"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
}

// NewConfig parses configuration from the environment (.env is loaded
// automatically when present).
func NewConfig() (*Config, error) {
	cfg := new(Config)
	err := env.Parse(cfg)
	return cfg, err
}
