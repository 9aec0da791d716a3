package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/invengine/internal/model"
)

// Catalog sources.
const (
	CatalogYAML     = "yaml"
	CatalogPostgres = "postgres"
)

// Engine holds all configuration for the inventory engine.
type Engine struct {
	LogLevel string `yaml:"log_level"` // debug|info|warn|error

	// Database (catalog.source=postgres and persistence)
	Database DatabaseConfig `yaml:"database"`

	Catalog   CatalogConfig   `yaml:"catalog"`
	Inventory InventoryConfig `yaml:"inventory"`
	Currency  CurrencyConfig  `yaml:"currency"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int32  `yaml:"max_conns"` // pool size; 0 = pgx default
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// CatalogConfig — откуда брать шаблоны предметов и как их запрашивать.
type CatalogConfig struct {
	Source           string        `yaml:"source"` // yaml|postgres
	Path             string        `yaml:"path"`   // YAML catalog file
	FetchConcurrency int           `yaml:"fetch_concurrency"`
	FetchTimeout     time.Duration `yaml:"fetch_timeout"` // per-lookup; slow lookup == miss
}

// InventoryConfig — поведение лута и очереди мутаций.
type InventoryConfig struct {
	AutoSell  bool `yaml:"auto_sell"`  // sell overflow loot instead of dropping it
	AutoEquip bool `yaml:"auto_equip"` // equip looted gear into empty or worse slots
	QueueSize int  `yaml:"queue_size"` // mutation queue capacity per character
}

// CurrencyConfig — режим переноса номиналов при merge.
type CurrencyConfig struct {
	Carry string `yaml:"carry"` // partial|full
}

// DefaultEngine returns Engine config with sensible defaults.
func DefaultEngine() Engine {
	return Engine{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "invengine",
			Password: "invengine",
			DBName:   "invengine",
			SSLMode:  "disable",
			MaxConns: 8,
		},
		Catalog: CatalogConfig{
			Source:           CatalogYAML,
			Path:             "data/items.yaml",
			FetchConcurrency: 8,
			FetchTimeout:     2 * time.Second,
		},
		Inventory: InventoryConfig{
			AutoSell:  false,
			AutoEquip: true,
			QueueSize: 64,
		},
		Currency: CurrencyConfig{
			Carry: model.CarryPartial.String(),
		},
	}
}

// LoadEngine loads engine config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadEngine(path string) (Engine, error) {
	cfg := DefaultEngine()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks enumerated values and bounds.
func (e Engine) Validate() error {
	if _, err := e.CarryMode(); err != nil {
		return err
	}
	if _, err := e.SlogLevel(); err != nil {
		return err
	}
	switch e.Catalog.Source {
	case CatalogYAML, CatalogPostgres:
	default:
		return fmt.Errorf("unknown catalog source %q (want yaml|postgres)", e.Catalog.Source)
	}
	if e.Catalog.FetchConcurrency < 0 {
		return fmt.Errorf("catalog.fetch_concurrency cannot be negative, got %d", e.Catalog.FetchConcurrency)
	}
	if e.Inventory.QueueSize < 0 {
		return fmt.Errorf("inventory.queue_size cannot be negative, got %d", e.Inventory.QueueSize)
	}
	return nil
}

// CarryMode parses currency.carry.
func (e Engine) CarryMode() (model.CarryMode, error) {
	return model.ParseCarryMode(e.Currency.Carry)
}

// SlogLevel parses log_level.
func (e Engine) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(e.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", e.LogLevel)
	}
}
