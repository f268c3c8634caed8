package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Question bank sources.
const (
	BankSourceFile     = "file"
	BankSourcePostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env      string   `mapstructure:"env"`      // current application environment (local, dev, production etc)
	Telegram Telegram `mapstructure:"telegram"` // telegram bot section
	Quiz     Quiz     `mapstructure:"quiz"`     // quiz session section
	Scoring  Scoring  `mapstructure:"scoring"`  // scoring constants
	DB       DB       `mapstructure:"database"` // database configuration section
}

// Telegram contains bot parameters.
type Telegram struct {
	Token  string `mapstructure:"-"`       // bot API token loaded from environment
	ChatID int64  `mapstructure:"chat_id"` // the only chat allowed to play; 0 binds to the first /start
	Debug  bool   `mapstructure:"debug"`   // log raw Bot API traffic
}

// Quiz contains session parameters.
type Quiz struct {
	BankSource string        `mapstructure:"bank_source"` // file or postgres
	BankPath   string        `mapstructure:"bank_path"`   // path to the JSON question bank
	TimeBudget time.Duration `mapstructure:"time_budget"` // time allowed for a whole play-through
	Seed       int64         `mapstructure:"seed"`        // shuffle seed; 0 means random per process
}

// Scoring contains the score constants.
type Scoring struct {
	Base          int `mapstructure:"base"`
	HintPenalty   int `mapstructure:"hint_penalty"`
	SecondPenalty int `mapstructure:"second_penalty"`
	Floor         int `mapstructure:"floor"`
	WrongPenalty  int `mapstructure:"wrong_penalty"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.Telegram.Token = v.GetString("telegram_api_token")
	if cfg.Telegram.Token == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDB reads only the database section. Tools that never talk to Telegram use it.
func LoadDB() (*DB, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	db := DB{
		URL:             v.GetString("database_url"),
		MaxConnections:  v.GetInt("database.max_connections"),
		MaxConnLifetime: v.GetDuration("database.max_conn_lifetime"),
	}
	if db.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &db, nil
}

func newViper() (*viper.Viper, error) {
	_ = godotenv.Load() // .env is optional

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("telegram.debug", false)
	v.SetDefault("quiz.bank_source", BankSourceFile)
	v.SetDefault("quiz.bank_path", "assets/data/questions.json")
	v.SetDefault("quiz.time_budget", "30m")
	v.SetDefault("quiz.seed", 0)
	v.SetDefault("scoring.base", 100)
	v.SetDefault("scoring.hint_penalty", 25)
	v.SetDefault("scoring.second_penalty", 2)
	v.SetDefault("scoring.floor", 10)
	v.SetDefault("scoring.wrong_penalty", -50)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	return v, nil
}

func (c *Config) validate() error {
	switch c.Quiz.BankSource {
	case BankSourceFile:
		if c.Quiz.BankPath == "" {
			return fmt.Errorf("%w: quiz.bank_path is empty", ErrInvalidConfig)
		}
	case BankSourcePostgres:
		if c.DB.URL == "" {
			return ErrMissingEnvironmentVariables
		}
	default:
		return fmt.Errorf("%w: unknown quiz.bank_source %q", ErrInvalidConfig, c.Quiz.BankSource)
	}

	if c.Quiz.TimeBudget < time.Second {
		return fmt.Errorf("%w: quiz.time_budget must be at least 1s, got %s", ErrInvalidConfig, c.Quiz.TimeBudget)
	}

	return nil
}
