package main

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	for _, name := range []string{"API_TIMEOUT", "CHECKOUT_IDLE_TTL", "IDEMPOTENCY_TTL"} {
		if _, ok := os.LookupEnv(name); ok {
			t.Skipf("%s is set in the environment", name)
		}
	}

	config, err := NewConfig()
	require.NoError(t, err)

	assert.Zero(t, config.APITimeout)
	assert.Equal(t, 30*time.Minute, config.CheckoutIdleTTL)
	assert.Equal(t, 24*time.Hour, config.IdempotencyTTL)
	assert.Equal(t, "localhost:8090", config.Endpoint)
}
