package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		BusinessHours: BusinessHours{
			OpenHour:               9,
			CloseHour:              18,
			SlotGranularityMinutes: 60,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid business hours", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("open after close", func(t *testing.T) {
		cfg := validConfig()
		cfg.BusinessHours.OpenHour = 18
		cfg.BusinessHours.CloseHour = 9

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidBusinessHours)
	})

	t.Run("open equals close", func(t *testing.T) {
		cfg := validConfig()
		cfg.BusinessHours.OpenHour = 9
		cfg.BusinessHours.CloseHour = 9

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidBusinessHours)
	})

	t.Run("hours outside day range", func(t *testing.T) {
		cfg := validConfig()
		cfg.BusinessHours.OpenHour = -1

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidBusinessHours)

		cfg = validConfig()
		cfg.BusinessHours.CloseHour = 25

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidBusinessHours)
	})

	t.Run("unsupported granularity", func(t *testing.T) {
		cfg := validConfig()
		cfg.BusinessHours.SlotGranularityMinutes = 30

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidGranularity)
	})
}
