package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type BoardConfig struct {
	// ListingExpirationInDays of 0 disables the cleanup cron entirely.
	ListingExpirationInDays int `mapstructure:"listing_expiration_days"`
}

func (config BoardConfig) validate() error {
	if config.ListingExpirationInDays < 0 {
		return fmt.Errorf("invalid variable: listing_expiration_days")
	}
	return nil
}

func (config BoardConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("board.listing_expiration_days", "LISTING_EXPIRATION_DAYS")
}
