package storage

import (
	"fmt"

	"storage-kit/core/account"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Driver selects the backend: azure, s3 or memory.
	Driver string `mapstructure:"driver" default:"azure"`
	// ConnectionString takes precedence over AccountName/AccountKey when set.
	ConnectionString string `mapstructure:"connection_string" default:""`
	// AccountName is the storage account (or S3 access key).
	AccountName string `mapstructure:"account_name" default:""`
	// AccountKey is the shared key (or S3 secret key).
	AccountKey string `mapstructure:"account_key" default:""`
	// Region is the S3 region; ignored by the other drivers.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Account resolves the configured credentials.
func (c Config) Account() (*account.Account, error) {
	if c.ConnectionString != "" {
		return account.Parse(c.ConnectionString)
	}
	if c.AccountName == "" {
		if c.Driver == DriverMemory {
			return account.Development(), nil
		}
		return nil, fmt.Errorf("%w: either connection_string or account_name is required", account.ErrConfiguration)
	}
	return account.New(c.AccountName, c.AccountKey), nil
}
