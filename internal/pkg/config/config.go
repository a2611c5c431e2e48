package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs the portal session tokens handed to the UI.
	JWTSecret  string        `env:"JWT_SECRET"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`

	Identity IdentityConfig
	Backend  BackendConfig
	Medical  MedicalConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

// IdentityConfig points at the external identity provider.
type IdentityConfig struct {
	SignInURL string `env:"IDENTITY_SIGNIN_URL"`
	TokenURL  string `env:"IDENTITY_TOKEN_URL"`
	APIKey    string `env:"IDENTITY_API_KEY"`
	// DemoMode swaps the real provider and profile backend for in-process
	// fakes so the portal runs fully offline.
	DemoMode     bool   `env:"IDENTITY_DEMO_MODE,     default=false"`
	DemoPassword string `env:"IDENTITY_DEMO_PASSWORD, default=ringside-demo"`
}

// BackendConfig points at the member-profile API.
type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:9000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=15s"`
}

// MedicalConfig tunes the in-memory medical record store.
type MedicalConfig struct {
	// SimulatedLatency is an artificial delay on every store operation so the
	// UI can be exercised against realistic response times. Zero disables it.
	SimulatedLatency time.Duration `env:"MEDICAL_SIMULATED_LATENCY, default=0s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=member_portal"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
