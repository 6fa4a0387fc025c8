package config

import (
	"fmt"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	override := Config{
		Server: ServerConfig{Port: 9999, MetricsPort: 9998},
		AI: AIConfig{
			Key:                  "overrideKey",
			TextModel:            "super_duper_model",
			ImageModel:           "super_duper_image_model",
			MaxRequestsPerMinute: 88,
			MaxRequestsPerDay:    89,
		},
		DB:    DBConfig{ConnectionString: "newConnectionString"},
		Board: BoardConfig{ListingExpirationInDays: 128},
	}
	os.Setenv("MODE", "test")

	os.Setenv("PORT", strconv.Itoa(override.Server.Port))
	os.Setenv("METRICS_PORT", strconv.Itoa(override.Server.MetricsPort))
	os.Setenv("AI_KEY", override.AI.Key)
	os.Setenv("AI_TEXT_MODEL", override.AI.TextModel)
	os.Setenv("AI_IMAGE_MODEL", override.AI.ImageModel)
	os.Setenv("AI_MAX_REQUESTS_PER_MINUTE", fmt.Sprintf("%f", override.AI.MaxRequestsPerMinute))
	os.Setenv("AI_MAX_REQUESTS_PER_DAY", fmt.Sprintf("%f", override.AI.MaxRequestsPerDay))
	os.Setenv("DB_CONNECTION_STRING", override.DB.ConnectionString)
	os.Setenv("LISTING_EXPIRATION_DAYS", strconv.Itoa(override.Board.ListingExpirationInDays))

	cfg := Get()

	assert.Equal(t, override.Server.Port, cfg.Server.Port)
	assert.Equal(t, override.Server.MetricsPort, cfg.Server.MetricsPort)
	assert.Equal(t, override.AI.Key, cfg.AI.Key)
	assert.Equal(t, override.AI.TextModel, cfg.AI.TextModel)
	assert.Equal(t, override.AI.ImageModel, cfg.AI.ImageModel)
	assert.Equal(t, override.AI.MaxRequestsPerMinute, cfg.AI.MaxRequestsPerMinute)
	assert.Equal(t, override.AI.MaxRequestsPerDay, cfg.AI.MaxRequestsPerDay)
	assert.Equal(t, override.DB.ConnectionString, cfg.DB.ConnectionString)
	assert.Equal(t, override.Board.ListingExpirationInDays, cfg.Board.ListingExpirationInDays)
}
