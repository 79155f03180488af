package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("database.max_conns (%d) must be >= database.min_conns (%d)",
			c.Database.MaxConns, c.Database.MinConns)
	}

	if c.Import.FetchTimeout <= 0 {
		return fmt.Errorf("import.fetch_timeout must be > 0 (got %v)", c.Import.FetchTimeout)
	}
	if c.Import.HistoryFetchLimit < 0 {
		return fmt.Errorf("import.history_fetch_limit must be >= 0 (got %d)", c.Import.HistoryFetchLimit)
	}
	if c.Import.MinPlayDuration < 0 {
		return fmt.Errorf("import.min_play_duration must be >= 0 (got %v)", c.Import.MinPlayDuration)
	}

	if c.Alias.CacheTTL <= 0 {
		return fmt.Errorf("alias.cache_ttl must be > 0 (got %v)", c.Alias.CacheTTL)
	}

	return nil
}
