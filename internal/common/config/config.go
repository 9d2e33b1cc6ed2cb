package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Postgres struct {
		Host            string        `env:"POSTGRES_HOST" envDefault:"localhost"`
		Port            int           `env:"POSTGRES_PORT" envDefault:"5432"`
		User            string        `env:"POSTGRES_USER" envDefault:"postgres"`
		Password        string        `env:"POSTGRES_PASSWORD" envDefault:""`
		Database        string        `env:"POSTGRES_DB" envDefault:"gameportal"`
		SSLMode         string        `env:"POSTGRES_SSLMODE" envDefault:"disable"`
		MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"25"`
		MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
		ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"30m"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Ton struct {
		// Global network config for the liteclient connection pool.
		ConfigURL string `env:"TON_CONFIG_URL" envDefault:"https://ton.org/global.config.json"`

		// TonAPI is used for balance lookups only.
		APIBase  string `env:"TONAPI_BASE" envDefault:"https://tonapi.io"`
		APIToken string `env:"TONAPI_TOKEN" envDefault:""`

		GameFeeNano    int64 `env:"TON_GAME_FEE_NANO" envDefault:"100000000"`
		MinBalanceNano int64 `env:"TON_MIN_BALANCE_NANO" envDefault:"150000000"`
	}

	Session struct {
		// "redis" or "memory". The in-memory store loses sessions on restart.
		Backend          string        `env:"SESSION_BACKEND" envDefault:"redis"`
		TTL              time.Duration `env:"SESSION_TTL" envDefault:"24h"`
		LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS" envDefault:"2"`
		LoginWindow      time.Duration `env:"LOGIN_ATTEMPT_WINDOW" envDefault:"1m"`
	}

	Events struct {
		SchedulerInterval time.Duration `env:"EVENT_SCHEDULER_INTERVAL" envDefault:"30s"`
	}

	AdminAddresses []string `env:"ADMIN_ADDRESSES" envSeparator:","`
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Postgres.Host, c.Postgres.Port, c.Postgres.User, c.Postgres.Password,
		c.Postgres.Database, c.Postgres.SSLMode)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func Load() *Config {
	// A missing .env file is fine; in production the variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
