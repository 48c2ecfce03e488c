package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr   string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBDriver   string        `env:"DB_DRIVER" envDefault:"libsql"`
	DBPath     string        `env:"DB_PATH" envDefault:"data/arcade.db"`
	RedisURL   string        `env:"REDIS_URL"`
	LogLevel   slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir     string        `env:"SPA_DIR" envDefault:"../web/dist"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	// Catalog, when set, is the only round set: admin uploads apply until
	// restart but are not restored over it.
	Catalog    string        `env:"CATALOG_PATH"`

	Negotiation Negotiation `envPrefix:"NEGOTIATION_"`
	Admin       Admin       `envPrefix:"ADMIN_"`
}

// Negotiation holds the fixed parameters every new haggling session starts from.
type Negotiation struct {
	Budget        int `env:"BUDGET" envDefault:"10000"`
	StartingPrice int `env:"STARTING_PRICE" envDefault:"8500"`
	MinPrice      int `env:"MIN_PRICE" envDefault:"6000"`
	StartingTrust int `env:"STARTING_TRUST" envDefault:"50"`
}

// Admin guards catalog uploads. An empty PasswordHash disables the admin routes.
type Admin struct {
	User         string `env:"USER" envDefault:"admin"`
	PasswordHash string `env:"PASSWORD_HASH"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	return &cfg, nil
}
