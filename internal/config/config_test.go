package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("UPLOAD_POLL_INTERVAL", "")
	t.Setenv("RECENT_SESSIONS_LIMIT", "")

	cfg := Load()

	assert.Equal(t, 3*time.Second, cfg.Ai.UploadPollInterval)
	assert.Equal(t, 10, cfg.Chat.RecentSessionsLimit)
	assert.Equal(t, "gemini-2.5-flash", cfg.Ai.Model)
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "duration string", value: "1500ms", want: 1500 * time.Millisecond},
		{name: "bare seconds", value: "7", want: 7 * time.Second},
		{name: "garbage falls back", value: "soon", want: time.Minute},
		{name: "empty falls back", value: "", want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION", time.Minute))
		})
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 1))

	t.Setenv("TEST_INT", "forty-two")
	assert.Equal(t, 1, getEnvAsInt("TEST_INT", 1))
}
