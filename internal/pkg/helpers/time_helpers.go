package helpers

import (
	"time"

	"github.com/lams-capstone/lams-admin/internal/pkg/logger"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		logger.Warn().Err(err).
			Str("durationStr", durationStr).
			Dur("defaultDuration", defaultDuration).
			Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}
