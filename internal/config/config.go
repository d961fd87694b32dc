package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-metadata-registry/internal/domain"
)

const (
	STORAGE_POSTGRES = "postgres"
	STORAGE_MEMORY   = "memory"

	SEQUENCER_CLOCK   = "clock"
	SEQUENCER_COUNTER = "counter"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // e.g. "5m", "1h"
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // e.g. "10m", "30m"
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL               string        `mapstructure:"url"`
	SubjectPrefix     string        `mapstructure:"subject_prefix"`
	MaxReconnects     int           `mapstructure:"max_reconnects"`
	ReconnectWait     time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName    string        `mapstructure:"connection_name"`
	PublishMaxElapsed time.Duration `mapstructure:"publish_max_elapsed"` // 0 disables publish retries
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration.
// API keys are "<key>:<address>" pairs.
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// RegistryConfig holds the registry configuration
type RegistryConfig struct {
	OwnerAddress string `mapstructure:"owner_address"`
	Storage      string `mapstructure:"storage"`   // postgres or memory
	Sequencer    string `mapstructure:"sequencer"` // clock or counter
}

// EventsConfig holds change event configuration
type EventsConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Registry   RegistryConfig `mapstructure:"registry"`
	Events     EventsConfig   `mapstructure:"events"`
}

// ImportConfig holds configuration for the metadata importer
type ImportConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Registry   RegistryConfig `mapstructure:"registry"`
	Events     EventsConfig   `mapstructure:"events"`
	BatchSize  int            `mapstructure:"batch_size"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.subject_prefix", "registry")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "ff-metadata-registry")
	v.SetDefault("nats.publish_max_elapsed", "10s")
	v.SetDefault("registry.storage", STORAGE_POSTGRES)
	v.SetDefault("registry.sequencer", SEQUENCER_COUNTER)
	v.SetDefault("events.enabled", false)
	v.SetDefault("events.publish_timeout", "15s")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// LoadImportConfig loads configuration for the metadata importer
func LoadImportConfig(configFile string, envPath string) (*ImportConfig, error) {
	v := configureViper("metadata-import", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.subject_prefix", "registry")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "ff-metadata-import")
	v.SetDefault("nats.publish_max_elapsed", "10s")
	v.SetDefault("registry.storage", STORAGE_POSTGRES)
	v.SetDefault("registry.sequencer", SEQUENCER_COUNTER)
	v.SetDefault("events.enabled", false)
	v.SetDefault("events.publish_timeout", "15s")
	v.SetDefault("batch_size", domain.MAX_BULK_RECORDS)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config ImportConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks the API configuration
func (c *APIConfig) Validate() error {
	if err := c.Registry.Validate(); err != nil {
		return err
	}
	if c.Registry.Storage == STORAGE_POSTGRES {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}
	if c.Events.Enabled && c.NATS.URL == "" {
		return errors.New("nats.url is required when events are enabled")
	}
	if _, err := c.Auth.APIKeyMap(); err != nil {
		return err
	}
	return nil
}

// Validate checks the importer configuration
func (c *ImportConfig) Validate() error {
	if err := c.Registry.Validate(); err != nil {
		return err
	}
	if c.Registry.Storage == STORAGE_POSTGRES {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}
	if c.Events.Enabled && c.NATS.URL == "" {
		return errors.New("nats.url is required when events are enabled")
	}
	if c.BatchSize <= 0 || c.BatchSize > domain.MAX_BULK_RECORDS {
		return fmt.Errorf("batch_size must be between 1 and %d", domain.MAX_BULK_RECORDS)
	}
	return nil
}

// Validate checks the owner address, storage and sequencer settings
func (c *RegistryConfig) Validate() error {
	if c.OwnerAddress == "" {
		return errors.New("registry.owner_address is required")
	}
	owner, ok := domain.NormalizeAddress(c.OwnerAddress)
	if !ok || owner.IsZeroAddress() {
		return fmt.Errorf("registry.owner_address is not a valid address: %q", c.OwnerAddress)
	}

	switch c.Storage {
	case STORAGE_POSTGRES, STORAGE_MEMORY:
	default:
		return fmt.Errorf("unsupported registry.storage: %q", c.Storage)
	}

	switch c.Sequencer {
	case SEQUENCER_CLOCK, SEQUENCER_COUNTER:
	default:
		return fmt.Errorf("unsupported registry.sequencer: %q", c.Sequencer)
	}

	return nil
}

// Validate checks the required database fields
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return errors.New("database.host is required")
	}
	if c.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

// APIKeyMap parses the configured API keys into a key to address map
func (c *AuthConfig) APIKeyMap() (map[string]string, error) {
	keys := make(map[string]string, len(c.APIKeys))
	for _, entry := range c.APIKeys {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		key, address, found := strings.Cut(entry, ":")
		if !found || key == "" || address == "" {
			return nil, errors.New("auth.api_keys entries must be <key>:<address>")
		}
		if _, ok := domain.NormalizeAddress(address); !ok {
			return nil, fmt.Errorf("auth.api_keys address is not valid: %q", address)
		}
		keys[key] = address
	}
	return keys, nil
}

// readInConfig reads the config file, tolerating a missing file so env vars alone can configure a service
func readInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search order: current directory, cmd/<service>/, config/
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_METADATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.publish_max_elapsed",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Registry
		"registry.owner_address",
		"registry.storage",
		"registry.sequencer",
		// Events
		"events.enabled",
		"events.publish_timeout",
		// Importer
		"batch_size",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Shared base first, then local, then the optional per-service local file
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
