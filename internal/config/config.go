package config // package config loads application configuration from the environment

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Every field maps to an
// environment variable; a few can also be overridden from the command line.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"dev"`    // application environment (dev, prod)
	Port     string `env:"PORT" envDefault:"3000"`      // HTTP port to listen on
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"` // zerolog level name

	DB     DB     `envPrefix:"DB_"`
	Auth   Auth
	Mail   Mail
	Events Events

	envFile string // dotenv file read before parsing, set by -env-file
}

// DB holds the relational store connection settings.
type DB struct {
	Driver   string `env:"DRIVER" envDefault:"postgres"` // postgres | mysql
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT"` // defaults to the driver's standard port
	User     string `env:"USER"`
	Pass     string `env:"PASS"` // may be empty
	Name     string `env:"NAME"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"` // postgres only
	PoolSize int    `env:"POOL_SIZE" envDefault:"10"`    // max open connections
	Migrate  bool   `env:"MIGRATE" envDefault:"true"`    // apply embedded migrations on start
}

// Auth holds token and password hashing settings.
type Auth struct {
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"JWT_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`
}

// Mail holds SMTP settings for support messages.
type Mail struct {
	Host string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port int    `env:"SMTP_PORT" envDefault:"587"`
	User string `env:"EMAIL_USER"` // SMTP account, also the From address
	Pass string `env:"EMAIL_PASS"`
	To   string `env:"SUPPORT_TO"` // operator inbox; EMAIL_USER when empty
}

// Events holds the booking event broker settings. An empty RabbitURL
// disables publishing and the consumer.
type Events struct {
	RabbitURL string `env:"RABBITMQ_URL"`
	Consumer  bool   `env:"BOOKING_CONSUMER"`
	LogPath   string `env:"BOOKING_LOG" envDefault:"logs/booking.log"`
}

var (
	ErrMissingJWTSecret  = errors.New("JWT_SECRET is required")
	ErrUnsupportedDriver = errors.New("DB_DRIVER must be postgres or mysql")
	ErrMissingDBName     = errors.New("DB_NAME and DB_USER are required")
	ErrInvalidPoolSize   = errors.New("DB_POOL_SIZE must be positive")
	ErrInvalidBcryptCost = errors.New("BCRYPT_COST must be between 4 and 31")
	ErrInvalidTokenTTL   = errors.New("JWT_TTL must be positive")
)

// Load builds the configuration from, in increasing priority: a dotenv
// file (optional), the process environment, and the command-line flags in
// args (usually os.Args[1:]).
func Load(args []string) (Config, error) {
	flagCfg, err := parseFlags(args)
	if err != nil {
		return Config{}, err
	}

	envFile := flagCfg.envFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("error getting env configs: %w", err)
	}
	if err := mergo.Merge(&cfg, flagCfg, mergo.WithOverride); err != nil {
		return Config{}, fmt.Errorf("error merging configs: %w", err)
	}

	if cfg.DB.Port == "" {
		cfg.DB.Port = defaultDBPort(cfg.DB.Driver)
	}
	if cfg.Mail.To == "" {
		cfg.Mail.To = cfg.Mail.User
	}
	return cfg, cfg.validate()
}

// parseFlags reads the flags that may override environment values.
//
//	-p         HTTP port
//	-env-file  dotenv file to load (default .env)
//	-log-level zerolog level
func parseFlags(args []string) (Config, error) {
	set := flag.NewFlagSet("movitour", flag.ContinueOnError)
	var cfg Config
	set.StringVar(&cfg.Port, "p", "", "HTTP port")
	set.StringVar(&cfg.envFile, "env-file", "", "dotenv file to load")
	set.StringVar(&cfg.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	if err := set.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaultDBPort(driver string) string {
	if driver == "mysql" {
		return "3306"
	}
	return "5432"
}

func (c Config) validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, ErrMissingJWTSecret)
	}
	if c.DB.Driver != "postgres" && c.DB.Driver != "mysql" {
		errs = append(errs, ErrUnsupportedDriver)
	}
	if c.DB.Name == "" || c.DB.User == "" {
		errs = append(errs, ErrMissingDBName)
	}
	if c.DB.PoolSize < 1 {
		errs = append(errs, ErrInvalidPoolSize)
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		errs = append(errs, ErrInvalidBcryptCost)
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, ErrInvalidTokenTTL)
	}
	return errors.Join(errs...)
}
