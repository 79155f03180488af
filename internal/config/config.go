package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Import   ImportConfig   `yaml:"import"`
	Alias    AliasConfig    `yaml:"alias"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// ImportConfig holds listening-history import settings.
type ImportConfig struct {
	// FetchTimeout bounds the HTTP fetch of a single export file.
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"IMPORT_FETCH_TIMEOUT" env-default:"30s"`

	// HistoryFetchLimit caps how many existing plays are loaded for
	// deduplication. Zero means unbounded: export files can span many years,
	// so dedupe reads the full history by default.
	HistoryFetchLimit int `yaml:"history_fetch_limit" env:"IMPORT_HISTORY_FETCH_LIMIT" env-default:"0"`

	// MinPlayDuration is the threshold below which the default validity
	// oracle rejects a play as not countable.
	MinPlayDuration time.Duration `yaml:"min_play_duration" env:"IMPORT_MIN_PLAY_DURATION" env-default:"30s"`
}

// AliasConfig holds artist alias cache settings.
type AliasConfig struct {
	// CacheTTL is how long a populated alias cache is trusted before the
	// next lookup triggers a reload. Individual alias entries live slightly
	// longer than the population sentinel so they never expire first.
	CacheTTL time.Duration `yaml:"cache_ttl" env:"ALIAS_CACHE_TTL" env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
