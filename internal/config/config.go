package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Providers ProviderConfig
	Defaults  DefaultsConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"option-pricer"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type ServerConfig struct {
	Port int `envconfig:"HTTP_PORT" default:"8080"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ProviderConfig selects and authenticates market data providers.
// Massive is preferred when its key is set, then Polygon, then the
// synthetic provider. QuotesCSV, when set, is consulted first.
type ProviderConfig struct {
	MassiveAPIKey string `envconfig:"MASSIVE_API_KEY"`
	PolygonAPIKey string `envconfig:"POLYGON_API_KEY"`
	QuotesCSV     string `envconfig:"QUOTES_CSV"`
}

// DefaultsConfig supplies analysis defaults applied when a request leaves
// the corresponding field empty.
type DefaultsConfig struct {
	Samples   int     `envconfig:"DEFAULT_SAMPLES" default:"100"`   // entry prices per profit curve
	EntrySpan float64 `envconfig:"DEFAULT_ENTRY_SPAN" default:"20"` // half-width of the entry range around spot
	ReportDir string  `envconfig:"REPORT_DIR" default:"reports"`    // where CLI runs write curve files
}

// Load reads configuration from environment variables.
// It first tries to load a .env file (useful for local development).
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}

	return &cfg, nil
}
