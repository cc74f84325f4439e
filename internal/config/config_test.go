package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Trivia.QuestionsPerPage)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("QUESTIONS_PER_PAGE", "0")
	t.Setenv("FLASH_TTL", "30s")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 10, cfg.Trivia.QuestionsPerPage)
	assert.Equal(t, 30*time.Second, cfg.Redis.FlashTTL)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("SERVER_IDLE_TIMEOUT", "soon")

	_, _, err := Load()
	assert.Error(t, err)
}
