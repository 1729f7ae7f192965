package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type TimeoutConfig struct {
	Write    time.Duration
	Upstream time.Duration
}

type StorageConfig struct {
	Driver    string // "local" or "s3"
	LocalDir  string
	Bucket    string
	Region    string
	PublicURL string
}

type CarrierConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

type RenderConfig struct {
	OddSizeLengthFt float64
	OddSizeWidthFt  float64
	OddSizeHeightFt float64
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Timeouts    TimeoutConfig
	Storage     StorageConfig
	Carrier     CarrierConfig
	Render      RenderConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Timeouts: TimeoutConfig{
			Write:    parseDuration(v.GetString("WRITE_TIMEOUT")),
			Upstream: parseDuration(v.GetString("UPSTREAM_TIMEOUT")),
		},
		Storage: StorageConfig{
			Driver:    v.GetString("STORAGE_DRIVER"),
			LocalDir:  v.GetString("STORAGE_LOCAL_DIR"),
			Bucket:    v.GetString("STORAGE_S3_BUCKET"),
			Region:    v.GetString("STORAGE_S3_REGION"),
			PublicURL: v.GetString("STORAGE_PUBLIC_URL"),
		},
		Carrier: CarrierConfig{
			BaseURL:      v.GetString("RIVIGO_BASE_URL"),
			ClientID:     v.GetString("RIVIGO_CLIENT_ID"),
			ClientSecret: v.GetString("RIVIGO_CLIENT_SECRET"),
		},
		Render: RenderConfig{
			OddSizeLengthFt: v.GetFloat64("ODD_SIZE_LENGTH_FT"),
			OddSizeWidthFt:  v.GetFloat64("ODD_SIZE_WIDTH_FT"),
			OddSizeHeightFt: v.GetFloat64("ODD_SIZE_HEIGHT_FT"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Timeouts.Write == 0 {
		cfg.Timeouts.Write = 10 * time.Second
	}
	if cfg.Timeouts.Upstream == 0 {
		cfg.Timeouts.Upstream = 15 * time.Second
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "local"
	}
	if cfg.Storage.LocalDir == "" {
		cfg.Storage.LocalDir = "./data/documents"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Storage.Driver == "s3" && cfg.Storage.Bucket == "" {
		return fmt.Errorf("STORAGE_S3_BUCKET is required for the s3 storage driver")
	}
	return nil
}

func parseDuration(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}
