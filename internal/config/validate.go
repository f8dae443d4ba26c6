package config

import (
	"fmt"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Audit.validate(); err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	if c.Discord.RequestTimeout <= 0 {
		return fmt.Errorf("discord.request_timeout must be > 0 (got %v)", c.Discord.RequestTimeout)
	}
	if c.Sink.Timeout <= 0 {
		return fmt.Errorf("sink.timeout must be > 0 (got %v)", c.Sink.Timeout)
	}

	return nil
}

func (a *AuditConfig) validate() error {
	if a.QuotaThreshold <= 0 {
		return fmt.Errorf("quota_threshold must be > 0 (got %d)", a.QuotaThreshold)
	}
	if a.Cooldown <= 0 {
		return fmt.Errorf("cooldown must be > 0 (got %v)", a.Cooldown)
	}
	if a.RunTimeout <= 0 {
		return fmt.Errorf("run_timeout must be > 0 (got %v)", a.RunTimeout)
	}
	if a.MaxParallelOwners <= 0 {
		return fmt.Errorf("max_parallel_owners must be > 0 (got %d)", a.MaxParallelOwners)
	}

	switch a.Scope {
	case ScopeOwner, ScopeGlobal:
	default:
		return fmt.Errorf("scope must be %q or %q (got %q)", ScopeOwner, ScopeGlobal, a.Scope)
	}

	if _, err := time.LoadLocation(a.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	return nil
}
