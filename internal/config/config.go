package config

import (
	"context"
	"fmt"

	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/sethvargo/go-envconfig"
)

const minSecretLength = 32

type Config struct {
	Server     ServerConfig     `env:",prefix=SERVER_"`
	Postgres   PostgresConfig   `env:",prefix=POSTGRES_"`
	JWT        JWTConfig        `env:",prefix=JWT_"`
	Password   PasswordConfig   `env:",prefix=PASSWORD_"`
	CORS       CORSConfig       `env:",prefix=CORS_"`
	Migrations MigrationsConfig `env:",prefix=MIGRATIONS_"`
	Env        string           `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port            string   `env:"PORT,default=8080"`
	Host            string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout     Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout    Duration `env:"WRITE_TIMEOUT,default=15s"`
	ShutdownTimeout Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
}

type PostgresConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=task_manager"`
	Password string `env:"PASSWORD,default=task_manager_password"`
	DBName   string `env:"DB,default=task_manager_db"`
	SSLMode  string `env:"SSLMODE,default=disable"`
}

// JWTConfig has no defaults: every key must be provided explicitly
type JWTConfig struct {
	Secret                       string `env:"SECRET,required"`
	TokenExpirationInMinutes     int    `env:"TOKEN_EXPIRATION_IN_MINUTES,required"`
	RefreshTokenExpirationInDays int    `env:"REFRESH_TOKEN_EXPIRATION_IN_DAYS,required"`
}

// PasswordConfig tunes the argon2id key derivation
type PasswordConfig struct {
	Time    uint32 `env:"ARGON2_TIME,default=1"`
	Memory  uint32 `env:"ARGON2_MEMORY_KIB,default=65536"`
	Threads uint8  `env:"ARGON2_THREADS,default=4"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

type MigrationsConfig struct {
	Auto bool `env:"AUTO,default=true"`
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// Validate checks the token settings that have no safe default
func (j JWTConfig) Validate() error {
	if j.Secret == "" {
		return fmt.Errorf("%w: JWT_SECRET is not set", domain.ErrConfiguration)
	}
	if len(j.Secret) < minSecretLength {
		return fmt.Errorf("%w: JWT_SECRET must be at least %d characters long", domain.ErrConfiguration, minSecretLength)
	}
	if j.TokenExpirationInMinutes <= 0 {
		return fmt.Errorf("%w: JWT_TOKEN_EXPIRATION_IN_MINUTES must be a positive integer", domain.ErrConfiguration)
	}
	if j.RefreshTokenExpirationInDays <= 0 {
		return fmt.Errorf("%w: JWT_REFRESH_TOKEN_EXPIRATION_IN_DAYS must be a positive integer", domain.ErrConfiguration)
	}
	return nil
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var config Config

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &config,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to load configuration: %v", domain.ErrConfiguration, err)
	}

	if err := config.JWT.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
