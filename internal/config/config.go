package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type (
	Config struct {
		// Infrastructure
		DatabaseURL        string        `env:"DATABASE_URL,required"`
		RedisAddr          string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		KafkaBrokers       string        `env:"KAFKA_BROKERS"`
		KafkaTopicPrefix   string        `env:"KAFKA_TOPIC_PREFIX" envDefault:"picshare"`
		OutboxPollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"2s"`
		S3                 S3Config      `envPrefix:"S3_"`

		// Runtime
		HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
		ObsHTTPAddr    string        `env:"OBS_HTTP_ADDR" envDefault:":8090"`
		ServiceName    string        `env:"SERVICE_NAME" envDefault:"picshare-api"`
		LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
		RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
		MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
		DBAutoMigrate  bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`

		// JWT
		JWTSecret    string `env:"JWT_SECRET,required"`
		JWTIssuer    string `env:"JWT_ISSUER" envDefault:"picshare"`
		JWTExpiresIn int64  `env:"JWT_EXPIRES_IN" envDefault:"604800"`

		// Observability
		TracingEnabled bool   `env:"TRACING_ENABLED" envDefault:"false"`
		JaegerURL      string `env:"JAEGER_URL" envDefault:"http://localhost:14268/api/traces"`
	}

	S3Config struct {
		Endpoint   string        `env:"ENDPOINT" envDefault:"localhost:9000"`
		AccessKey  string        `env:"ACCESS_KEY"`
		SecretKey  string        `env:"SECRET_KEY"`
		Bucket     string        `env:"BUCKET" envDefault:"picshare"`
		UseSSL     bool          `env:"USE_SSL" envDefault:"false"`
		PresignTTL time.Duration `env:"PRESIGN_TTL" envDefault:"15m"`
	}
)

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("read config error: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("read config error: JWT_SECRET is empty")
	}
	cfg.HTTPAddr = fixPort(cfg.HTTPAddr)
	cfg.ObsHTTPAddr = fixPort(cfg.ObsHTTPAddr)
	return cfg, nil
}

// TokenTTL is the access token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresIn) * time.Second
}

func fixPort(port string) string {
	if port != "" && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
