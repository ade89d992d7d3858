package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env             string        `env:"ENV" env-default:"local"`
	Port            string        `env:"PORT" env-default:"3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://localhost:5173"`
	Database        DatabaseConfig
	JWT             JWTConfig
	Cookie          CookieConfig
	PasswordHasher  string `env:"PASSWORD_HASHER" env-default:"bcrypt"`
}

type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER" env-default:"sqlite"`
	URL             string        `env:"DATABASE_URL" env-default:"taskflow.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET" env-required:"true"`
	Issuer string        `env:"JWT_ISSUER" env-default:"taskflow"`
	TTL    time.Duration `env:"JWT_TTL" env-default:"168h"`
}

type CookieConfig struct {
	Domain string `env:"COOKIE_DOMAIN"`
	Secure bool   `env:"COOKIE_SECURE" env-default:"true"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	// A missing .env is fine outside local development.
	_ = godotenv.Load(envFiles...)

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
