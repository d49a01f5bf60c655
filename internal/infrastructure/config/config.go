package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Backend selects where collection data lives.
const (
	BackendMongo = "mongo"
	BackendRedis = "redis"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	Backend   string `env:"BACKEND,   default=mongo"`
	JWTSecret string `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
	Redis RedisConfig
	S3    S3Config
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type S3Config struct {
	Region          string `env:"AWS_REGION,            default=ap-southeast-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	Bucket          string `env:"S3_BUCKET,             default=marketplace-uploads"`
	Endpoint        string `env:"S3_ENDPOINT"`
	DisableSSL      bool   `env:"S3_DISABLE_SSL,        default=false"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Backend != BackendMongo && cfg.Backend != BackendRedis {
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	return &cfg, nil
}
