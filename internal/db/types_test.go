package db

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(time.Date(2025, 5, 15, 18, 42, 3, 0, time.Local))

	data, err := json.Marshal(&d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-05-15"`, string(data), "clock component is dropped")

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equal(d.Time))
}

func TestDateJSON_Null(t *testing.T) {
	var d Date
	data, err := json.Marshal(&d)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte("null"), &parsed))
	assert.True(t, parsed.IsZero())
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	data, err := json.Marshal(User{Email: "a@b.fr", PasswordHash: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
}
