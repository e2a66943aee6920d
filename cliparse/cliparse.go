package cliparse

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	DefaultPort          = 3318
	DefaultDatabaseURL   = "file:livevote.db"
	DefaultDatabaseType  = "sqlite"
	DefaultSessionTTL    = 24 * time.Hour
	DefaultWatchInterval = 2 * time.Second
	DefaultServerURL     = "http://localhost:3318"
	DefaultLogFile       = "livevote.log"
)

type Config struct {
	// Data service
	Port          int
	DatabaseURL   string
	DatabaseType  string
	SessionSecret string
	SessionTTL    time.Duration
	WatchInterval time.Duration

	// Clients
	ServerURL string
	LogFile   string
}

// LoadEnvFile loads KEY=VALUE pairs from path into the environment.
// A missing file is not an error; variables already set win.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// BindDatabaseFlags registers the flags shared by every command touching the database
func BindDatabaseFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (sqlite or postgres)")
}

// BindServerFlags registers the data service flags
func BindServerFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	BindDatabaseFlags(fs, cfg)

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session token signing secret (prefer env)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Session lifetime")
	fs.DurationVar(&cfg.WatchInterval, "watch-interval", 0, "How often to re-read the options collection")
}

// BindClientFlags registers the flags of commands talking to a data service
func BindClientFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.ServerURL, "server", "s", "", "Data service URL")
	fs.StringVar(&cfg.LogFile, "log-file", "", "Log file path")
}

// ResolveDatabase fills unset database settings from env and defaults
func (cfg *Config) ResolveDatabase() error {
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DefaultDatabaseURL
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DefaultDatabaseType
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return fmt.Errorf("invalid database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}
	return nil
}

// ResolveServer fills unset data service settings from env and defaults
func (cfg *Config) ResolveServer() error {
	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if err := cfg.ResolveDatabase(); err != nil {
		return err
	}

	var err error
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL, err = durationEnv("SESSION_TTL", DefaultSessionTTL)
		if err != nil {
			return err
		}
	}
	if cfg.WatchInterval == 0 {
		cfg.WatchInterval, err = durationEnv("WATCH_INTERVAL", DefaultWatchInterval)
		if err != nil {
			return err
		}
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return errors.New("SESSION_SECRET required")
	}

	return nil
}

// ResolveClient fills unset client settings from env and defaults
func (cfg *Config) ResolveClient() error {
	if cfg.ServerURL == "" {
		cfg.ServerURL = os.Getenv("LIVEVOTE_URL")
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}

	if cfg.LogFile == "" {
		cfg.LogFile = os.Getenv("LIVEVOTE_LOG")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}
	return nil
}

// ParseServerFlags parses data service flags and resolves the rest from env
func ParseServerFlags(args []string) (Config, error) {
	var cfg Config

	fs := pflag.NewFlagSet("livevote serve", pflag.ContinueOnError)
	BindServerFlags(fs, &cfg)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.ResolveServer(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return d, nil
}
