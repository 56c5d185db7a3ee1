package summary

import (
	"time"

	"github.com/rdkadakkal/Yusen-Report/internal/domain"
)

// Config holds the tunable parts of an aggregation run.
type Config struct {
	Now             func() time.Time
	RequiredTenants []string
}

// Option adjusts the aggregation config.
type Option func(*Config)

// WithClock overrides the clock used for the fallback month when the
// input yields no valid dates.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		if now != nil {
			c.Now = now
		}
	}
}

// WithRequiredTenants overrides the tenant set guaranteed a row in
// every month of the grid.
func WithRequiredTenants(tenants []string) Option {
	return func(c *Config) {
		c.RequiredTenants = tenants
	}
}

func defaultConfig() Config {
	return Config{
		Now:             time.Now,
		RequiredTenants: domain.RequiredTenants,
	}
}
