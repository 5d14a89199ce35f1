package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRFC3339Date(t *testing.T) {
	type payload struct {
		At RFC3339Date `json:"at"`
	}

	at := time.Date(2026, time.March, 4, 10, 30, 0, 0, time.UTC)

	data, err := json.Marshal(payload{At: RFC3339Date{Time: at}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2026-03-04T10:30:00Z"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, at.Equal(decoded.At.Time))

	assert.Error(t, json.Unmarshal([]byte(`{"at":"yesterday"}`), &decoded))
}
