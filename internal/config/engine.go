package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/udisondev/balatrogo/internal/engine"
)

// Snapshot backends.
const (
	BackendNone     = "none"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Engine holds the scoring session configuration.
type Engine struct {
	// Scoring
	CombinationPolicy string `yaml:"combination_policy" env:"BALATRO_COMBINATION_POLICY"`
	CacheEnabled      bool   `yaml:"cache_enabled" env:"BALATRO_CACHE_ENABLED"`
	OrderByPriority   bool   `yaml:"order_by_priority" env:"BALATRO_ORDER_BY_PRIORITY"`
	MaxRetriggers     int    `yaml:"max_retriggers" env:"BALATRO_MAX_RETRIGGERS"`
	Diagnostics       bool   `yaml:"diagnostics" env:"BALATRO_DIAGNOSTICS"`
	ValidateEffects   bool   `yaml:"validate_effects" env:"BALATRO_VALIDATE_EFFECTS"`
	CardScoring       string `yaml:"card_scoring" env:"BALATRO_CARD_SCORING"`

	LogLevel string `yaml:"log_level" env:"BALATRO_LOG_LEVEL"`

	// State snapshots
	SnapshotBackend string         `yaml:"snapshot_backend" env:"BALATRO_SNAPSHOT_BACKEND"`
	SQLitePath      string         `yaml:"sqlite_path" env:"BALATRO_SQLITE_PATH"`
	SaveWorkers     int            `yaml:"save_workers" env:"BALATRO_SAVE_WORKERS"`
	Database        DatabaseConfig `yaml:"database" envPrefix:"BALATRO_DB_"`
}

// DefaultEngine returns Engine config with sensible defaults.
func DefaultEngine() Engine {
	return Engine{
		CombinationPolicy: engine.PolicySum.String(),
		CacheEnabled:      true,
		MaxRetriggers:     engine.DefaultMaxRetriggers,
		CardScoring:       engine.CardScoringPerCard.String(),
		LogLevel:          "info",
		SnapshotBackend:   BackendNone,
		SQLitePath:        "balatro.db",
		SaveWorkers:       4,
		Database:          DefaultDatabase(),
	}
}

// LoadEngine loads engine config: defaults, then the YAML file at path (if
// it exists), then BALATRO_* environment variables.
func LoadEngine(path string) (Engine, error) {
	cfg := DefaultEngine()

	if err := loadYAML(path, &cfg); err != nil {
		return cfg, err
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every enumerated field.
func (c Engine) Validate() error {
	if _, err := c.ProcessorOptions(); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.SnapshotBackend {
	case BackendNone, BackendPostgres:
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("snapshot backend %s requires sqlite_path", c.SnapshotBackend)
		}
	default:
		return fmt.Errorf("unknown snapshot backend %q", c.SnapshotBackend)
	}
	if c.SaveWorkers < 1 {
		return fmt.Errorf("save_workers must be positive, got %d", c.SaveWorkers)
	}
	return nil
}

// ApplyLogging installs a text slog handler on w at LogLevel as the default
// logger and switches the engine's per-dispatch debug lines on at debug level.
func (c Engine) ApplyLogging(w io.Writer) (slog.Level, error) {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return level, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})))
	engine.EnableDebugLogging(level <= slog.LevelDebug)
	return level, nil
}

// ProcessorOptions converts the scoring fields to engine options.
func (c Engine) ProcessorOptions() (engine.Options, error) {
	policy, err := engine.ParsePolicy(c.CombinationPolicy)
	if err != nil {
		return engine.Options{}, err
	}
	mode, err := engine.ParseCardScoring(c.CardScoring)
	if err != nil {
		return engine.Options{}, err
	}
	if c.MaxRetriggers < 0 {
		return engine.Options{}, fmt.Errorf("max_retriggers must not be negative, got %d", c.MaxRetriggers)
	}

	return engine.Options{
		Policy:          policy,
		CacheEnabled:    c.CacheEnabled,
		OrderByPriority: c.OrderByPriority,
		MaxRetriggers:   c.MaxRetriggers,
		Diagnostics:     c.Diagnostics,
		ValidateEffects: c.ValidateEffects,
		CardScoring:     mode,
	}, nil
}
