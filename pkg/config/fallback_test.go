package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadWithFallback(t *testing.T) {
	const key = "CFG_TEST_SCHEDULE"
	def := "0 */6 * * *"

	tests := []struct {
		name         string
		value        string
		want         string
		wantFallback bool
	}{
		{"unset uses default silently", "", def, false},
		{"valid value", "30 5 * * *", "30 5 * * *", false},
		{"descriptor", "@hourly", "@hourly", false},
		{"invalid falls back", "every day", def, true},
		{"too many fields", "0 0 0 * * * *", def, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.value)
			res := LoadWithFallback(key, def, ParseString, ValidateCronSchedule)

			assert.Equal(t, tt.want, res.Value)
			assert.Equal(t, tt.wantFallback, res.FallbackApplied)
			if tt.wantFallback {
				assert.Contains(t, res.Warning, key)
				assert.Contains(t, res.Warning, def)
			} else {
				assert.Empty(t, res.Warning)
			}
		})
	}
}

func TestLoadWithFallback_ParseErrorAndRange(t *testing.T) {
	t.Setenv("CFG_TEST_TIMEOUT", "ten minutes")
	res := LoadWithFallback("CFG_TEST_TIMEOUT", 10*time.Minute, ParseDuration, nil)
	assert.True(t, res.FallbackApplied)
	assert.Equal(t, 10*time.Minute, res.Value)

	t.Setenv("CFG_TEST_TIMEOUT", "5h")
	res = LoadWithFallback("CFG_TEST_TIMEOUT", 10*time.Minute, ParseDuration, func(d time.Duration) error {
		return ValidateDuration(d, time.Minute, 4*time.Hour)
	})
	assert.True(t, res.FallbackApplied)

	t.Setenv("CFG_TEST_RPS", "2.5")
	rps := LoadWithFallback("CFG_TEST_RPS", 2.0, ParseFloat, nil)
	assert.False(t, rps.FallbackApplied)
	assert.InDelta(t, 2.5, rps.Value, 1e-9)

	t.Setenv("CFG_TEST_PORT", "80")
	port := LoadWithFallback("CFG_TEST_PORT", 9091, ParseInt, func(v int) error { return ValidateIntRange(v, 1024, 65535) })
	assert.True(t, port.FallbackApplied)
	assert.Equal(t, 9091, port.Value)
}
