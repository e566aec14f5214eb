package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout must be > 0 (got %v)", c.Server.ShutdownTimeout))
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	if c.Database.MinConns > c.Database.MaxConns {
		errs = append(errs, fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns))
	}

	if err := c.Estimate.validate(); err != nil {
		errs = append(errs, fmt.Errorf("estimate: %w", err))
	}

	if c.RateLimit.DownloadsPerMinute < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.downloads_per_minute must be >= 0 (got %d)", c.RateLimit.DownloadsPerMinute))
	}
	if c.RateLimit.Enabled() && c.RateLimit.CleanupInterval <= 0 {
		errs = append(errs, fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format))
	}

	return errors.Join(errs...)
}

func (e *EstimateConfig) validate() error {
	if e.DefaultPageSize <= 0 {
		return fmt.Errorf("default_page_size must be > 0 (got %d)", e.DefaultPageSize)
	}
	if e.MaxPageSize < e.DefaultPageSize {
		return fmt.Errorf("max_page_size (%d) must be >= default_page_size (%d)", e.MaxPageSize, e.DefaultPageSize)
	}
	if e.RecentWindow <= 0 {
		return fmt.Errorf("recent_window must be > 0 (got %v)", e.RecentWindow)
	}
	if e.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be > 0 (got %d)", e.MaxBodyBytes)
	}
	return nil
}
