package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env       string
	HTTP      HTTP
	Database  Database
	JWT       JWT
	Redis     Redis
	Storage   Storage
	SMTP      SMTP
	RateLimit RateLimit
	Log       Log
	Jobs      Jobs
}

type HTTP struct {
	Port string
}

type Database struct {
	Driver string
	DSN    string
}

type JWT struct {
	Secret string
	TTL    time.Duration
}

// Redis backs the token revocation store. An empty address selects the in-memory store.
type Redis struct {
	Address  string
	Port     int
	Password string
	DB       int
}

type Storage struct {
	Driver    string
	LocalDir  string
	PublicURL string
	Minio     Minio
}

type Minio struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// SMTP configures outgoing mail. An empty host disables email.
type SMTP struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type RateLimit struct {
	RequestsPerMinute int
	Burst             int
}

type Log struct {
	File string
}

// Jobs configures background work. TokenPurgeInterval only matters for the in-memory token store.
type Jobs struct {
	TokenPurgeInterval time.Duration
}

// DefaultJWTSecret is only good for local development.
const DefaultJWTSecret = "your-secret-key"

var ErrDefaultJWTSecret = errors.New("jwt.secret must be set in production")

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("http.port", "8080")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "photogram.db")

	v.SetDefault("jwt.secret", DefaultJWTSecret)
	v.SetDefault("jwt.ttl", 7*24*time.Hour)

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local_dir", "media")
	v.SetDefault("storage.public_url", "/media")
	v.SetDefault("storage.minio.endpoint", "localhost:9000")
	v.SetDefault("storage.minio.access_key", "")
	v.SetDefault("storage.minio.secret_key", "")
	v.SetDefault("storage.minio.bucket", "photogram")
	v.SetDefault("storage.minio.use_ssl", false)

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 2525)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from_email", "noreply@photogram.local")
	v.SetDefault("smtp.from_name", "Photogram")

	v.SetDefault("rate_limit.requests_per_minute", 30)
	v.SetDefault("rate_limit.burst", 10)

	v.SetDefault("log.file", "")

	v.SetDefault("jobs.token_purge_interval", 10*time.Minute)
}

// Load reads config.yaml from . or ./config when present, then applies
// environment overrides (HTTP_PORT, DATABASE_DSN, ...).
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that are unsafe in production.
func (c *Config) Validate() error {
	if c.IsProduction() && (c.JWT.Secret == "" || c.JWT.Secret == DefaultJWTSecret) {
		return ErrDefaultJWTSecret
	}
	return nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Env: v.GetString("env"),
		HTTP: HTTP{
			Port: v.GetString("http.port"),
		},
		Database: Database{
			Driver: v.GetString("database.driver"),
			DSN:    v.GetString("database.dsn"),
		},
		JWT: JWT{
			Secret: v.GetString("jwt.secret"),
			TTL:    v.GetDuration("jwt.ttl"),
		},
		Redis: Redis{
			Address:  v.GetString("redis.address"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Storage: Storage{
			Driver:    v.GetString("storage.driver"),
			LocalDir:  v.GetString("storage.local_dir"),
			PublicURL: v.GetString("storage.public_url"),
			Minio: Minio{
				Endpoint:  v.GetString("storage.minio.endpoint"),
				AccessKey: v.GetString("storage.minio.access_key"),
				SecretKey: v.GetString("storage.minio.secret_key"),
				Bucket:    v.GetString("storage.minio.bucket"),
				UseSSL:    v.GetBool("storage.minio.use_ssl"),
			},
		},
		SMTP: SMTP{
			Host:      v.GetString("smtp.host"),
			Port:      v.GetInt("smtp.port"),
			Username:  v.GetString("smtp.username"),
			Password:  v.GetString("smtp.password"),
			FromEmail: v.GetString("smtp.from_email"),
			FromName:  v.GetString("smtp.from_name"),
		},
		RateLimit: RateLimit{
			RequestsPerMinute: v.GetInt("rate_limit.requests_per_minute"),
			Burst:             v.GetInt("rate_limit.burst"),
		},
		Log: Log{
			File: v.GetString("log.file"),
		},
		Jobs: Jobs{
			TokenPurgeInterval: v.GetDuration("jobs.token_purge_interval"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}
