// pdftoolkit/config/config_test.go
package config_test // Use an external test package

import (
	"testing"
	"time"

	"pdftoolkit/config" // Import the package we are testing

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads default values correctly", func(t *testing.T) {
		// Ensure no env vars are lingering from other tests
		t.Setenv("PDFTOOLKIT_PORT", "")
		t.Setenv("PDFTOOLKIT_RESULT_FOLDER", "")
		t.Setenv("PDFTOOLKIT_POLL_INTERVAL", "")
		t.Setenv("PDFTOOLKIT_AUTH_ENABLE", "")
		t.Setenv("PDFTOOLKIT_MAX_INPUT_SIZE", "")
		t.Setenv("PDFTOOLKIT_PREVIEW", "")

		cfg, err := config.Load() // Use the package prefix
		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "results", cfg.ResultFolder)
		assert.Equal(t, 150*time.Millisecond, cfg.PollInterval)
		assert.Equal(t, false, cfg.AuthEnable)
		assert.Equal(t, false, cfg.Preview)
		assert.Equal(t, int64(200*1024*1024), cfg.MaxInputSize)
		assert.Equal(t, int64(200*1024*1024), cfg.ThrottleFreeMem)
		assert.Equal(t, 50.0, cfg.ThrottleCPU)
	})

	t.Run("overrides defaults with environment variables", func(t *testing.T) {
		t.Setenv("PDFTOOLKIT_PORT", "9999")
		t.Setenv("PDFTOOLKIT_RESULT_FOLDER", "/tmp/outputs")
		t.Setenv("PDFTOOLKIT_POLL_INTERVAL", "1s")
		t.Setenv("PDFTOOLKIT_AUTH_ENABLE", "true")
		t.Setenv("PDFTOOLKIT_AUTH_KEY", "newsecret")
		t.Setenv("PDFTOOLKIT_MAX_INPUT_SIZE", "50MB")
		t.Setenv("PDFTOOLKIT_PREVIEW", "true")

		cfg, err := config.Load() // Use the package prefix
		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		assert.Equal(t, "9999", cfg.Port)
		assert.Equal(t, "/tmp/outputs", cfg.ResultFolder)
		assert.Equal(t, time.Second, cfg.PollInterval)
		assert.Equal(t, true, cfg.AuthEnable)
		assert.Equal(t, "newsecret", cfg.AuthKey)
		assert.Equal(t, int64(50*1024*1024), cfg.MaxInputSize)
		assert.Equal(t, true, cfg.Preview)
	})
}
