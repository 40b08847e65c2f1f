package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Run("Fallback when unset or invalid", func(t *testing.T) {
		t.Setenv("SF_TEST_INT", "abc")
		t.Setenv("SF_TEST_DUR", "soon")

		assert.Equal(t, "x", GetEnv("SF_TEST_MISSING", "x"))
		assert.Equal(t, 7, GetEnvAsInt("SF_TEST_INT", 7))
		assert.Equal(t, time.Minute, GetEnvAsDuration("SF_TEST_DUR", time.Minute))
	})

	t.Run("Parsed values", func(t *testing.T) {
		t.Setenv("SF_TEST_INT", "42")
		t.Setenv("SF_TEST_DUR", "1500ms")
		t.Setenv("SF_TEST_LIST", " http://a.test , ,http://b.test")

		assert.Equal(t, 42, GetEnvAsInt("SF_TEST_INT", 7))
		assert.Equal(t, 1500*time.Millisecond, GetEnvAsDuration("SF_TEST_DUR", time.Minute))
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetEnvAsList("SF_TEST_LIST", nil))
	})
}

func TestLoadStorefrontConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STATE_STORE", "Postgres")
	t.Setenv("SUBMIT_DELAY", "0s")

	cfg := LoadStorefrontConfig()

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.State.Backend)
	assert.Equal(t, "visitor_state", cfg.State.DB.Table)
	assert.Equal(t, time.Duration(0), cfg.SubmitDelay)
	assert.Equal(t, 2*time.Second, cfg.RecommendDelay)
	assert.Equal(t, "6285624763201", cfg.WhatsAppNumber)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
}
