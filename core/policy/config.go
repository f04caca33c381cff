package policy

import "time"

// Config holds the request policy settings.
type Config struct {
	// RetryCount is the number of retries after a failed attempt.
	RetryCount int `mapstructure:"retry_count" default:"5"`
	// RetryIntervalMs is the delay between attempts in milliseconds.
	RetryIntervalMs int `mapstructure:"retry_interval_ms" default:"1000"`
	// LocationMode is one of primary_only, primary_then_secondary, secondary_only, secondary_then_primary.
	LocationMode string `mapstructure:"location_mode" default:"primary_only"`
	// MaxExecutionSeconds bounds a single logical operation.
	MaxExecutionSeconds int `mapstructure:"max_execution_seconds" default:"10"`
}

// Policy converts the configuration into a Policy.
func (c Config) Policy() (Policy, error) {
	mode, err := ParseLocationMode(c.LocationMode)
	if err != nil {
		return Policy{}, err
	}
	return Policy{
		RetryCount:       c.RetryCount,
		RetryInterval:    time.Duration(c.RetryIntervalMs) * time.Millisecond,
		LocationMode:     mode,
		MaxExecutionTime: time.Duration(c.MaxExecutionSeconds) * time.Second,
	}, nil
}
