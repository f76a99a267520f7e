// Package config provides Viper-based configuration loading for statforge.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/statforge/internal/game/statistic"
)

// Catalog sources.
const (
	CatalogYAML     = "yaml"
	CatalogPostgres = "postgres"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	// ConnectTimeout bounds dialing and the startup health check.
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// BuilderConfig holds statblock builder settings.
type BuilderConfig struct {
	// DefaultLevel replaces out-of-range creature levels.
	DefaultLevel int `mapstructure:"default_level"`
	// Debug enables diagnostic log lines from the builder and resolvers.
	Debug bool `mapstructure:"debug"`
}

// ContentConfig locates the external content files. Empty paths are skipped.
type ContentConfig struct {
	RoadmapsDir   string `mapstructure:"roadmaps_dir"`
	SpellListsDir string `mapstructure:"spell_lists_dir"`
	SpellsFile    string `mapstructure:"spells_file"`
	LocaleFile    string `mapstructure:"locale_file"`
	Locale        string `mapstructure:"locale"`
}

// CatalogConfig selects the spell catalog backend.
type CatalogConfig struct {
	// Source is "yaml" (content.spells_file) or "postgres".
	Source string `mapstructure:"source"`
}

// Config is the top-level application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Builder  BuilderConfig  `mapstructure:"builder"`
	Content  ContentConfig  `mapstructure:"content"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if c.Catalog.Source == CatalogPostgres {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBuilder(c.Builder); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCatalog(c.Catalog, c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Validate checks the database settings alone, for tools that always need a database.
func (d DatabaseConfig) Validate() error {
	return validateDatabase(d)
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if d.ConnectTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("database.connect_timeout must be > 0, got %s", d.ConnectTimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateBuilder(b BuilderConfig) error {
	if !statistic.Level(b.DefaultLevel).Valid() {
		return fmt.Errorf("builder.default_level must be %d-%d, got %d",
			statistic.MinLevel, statistic.MaxLevel, b.DefaultLevel)
	}
	return nil
}

func validateCatalog(c CatalogConfig, content ContentConfig) error {
	switch c.Source {
	case CatalogYAML:
		if content.SpellsFile == "" {
			return fmt.Errorf("content.spells_file must be set when catalog.source is %q", CatalogYAML)
		}
	case CatalogPostgres:
	default:
		return fmt.Errorf("catalog.source must be one of [yaml, postgres], got %q", c.Source)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with STATFORGE_ prefix
	v.SetEnvPrefix("STATFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "statforge")
	v.SetDefault("database.password", "statforge")
	v.SetDefault("database.name", "statforge")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.connect_timeout", "5s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("builder.default_level", int(statistic.DefaultLevel))
	v.SetDefault("builder.debug", false)

	v.SetDefault("content.roadmaps_dir", "")
	v.SetDefault("content.spell_lists_dir", "")
	v.SetDefault("content.spells_file", "content/spells.yaml")
	v.SetDefault("content.locale_file", "")
	v.SetDefault("content.locale", "en")

	v.SetDefault("catalog.source", CatalogYAML)
}
