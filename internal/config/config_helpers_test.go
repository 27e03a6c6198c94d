package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  int
	}{
		{"unset", nil, 42},
		{"valid", ptr("100"), 100},
		{"negative", ptr("-10"), -10},
		{"zero", ptr("0"), 0},
		{"invalid", ptr("not-a-number"), 42},
		{"float", ptr("42.5"), 42},
		{"empty", ptr(""), 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setOrUnset(t, "TEST_INT_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsInt("TEST_INT_VAR", 42))
		})
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  float64
	}{
		{"unset", nil, 0.5},
		{"valid", ptr("0.25"), 0.25},
		{"integer", ptr("1"), 1},
		{"invalid", ptr("half"), 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setOrUnset(t, "TEST_FLOAT_VAR", tt.value)
			assert.InDelta(t, tt.want, getEnvAsFloat("TEST_FLOAT_VAR", 0.5), 1e-9)
		})
	}
}

func TestGetEnvAsList(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  []string
	}{
		{"unset", nil, nil},
		{"single", ptr("10.0.0.1"), []string{"10.0.0.1"}},
		{"spaces and blanks", ptr(" 10.0.0.1, ,10.0.0.2 ,"), []string{"10.0.0.1", "10.0.0.2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setOrUnset(t, "TEST_LIST_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsList("TEST_LIST_VAR"))
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  bool
	}{
		{"unset", nil, false},
		{"true", ptr("true"), true},
		{"one", ptr("1"), true},
		{"false", ptr("false"), false},
		{"garbage", ptr("yes please"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setOrUnset(t, "TEST_BOOL_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsBool("TEST_BOOL_VAR", false))
		})
	}
}

// TestGetEnvAsDuration tests the getEnvAsDuration helper function
func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  time.Duration
	}{
		{"unset", nil, 5 * time.Minute},
		{"minutes", ptr("10m"), 10 * time.Minute},
		{"seconds", ptr("30s"), 30 * time.Second},
		{"complex", ptr("1h30m45s"), time.Hour + 30*time.Minute + 45*time.Second},
		{"milliseconds", ptr("500ms"), 500 * time.Millisecond},
		{"invalid", ptr("not-a-duration"), 5 * time.Minute},
		{"no unit", ptr("100"), 5 * time.Minute},
		{"empty", ptr(""), 5 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setOrUnset(t, "TEST_DURATION_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute))
		})
	}
}

func TestLoad_DatabasePool(t *testing.T) {
	cfg, err := loadWith(t, nil)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
	assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime)

	cfg, err = loadWith(t, map[string]string{
		"DB_MAX_CONNS":          "50",
		"DB_MAX_CONN_IDLE_TIME": "10m",
		"DB_MAX_CONN_LIFETIME":  "1h",
	})
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.DBMaxConns)
	assert.Equal(t, 10*time.Minute, cfg.DBMaxConnIdleTime)
	assert.Equal(t, time.Hour, cfg.DBMaxConnLifetime)
}

func ptr(s string) *string { return &s }

func setOrUnset(t *testing.T, key string, value *string) {
	t.Helper()
	if value == nil {
		t.Setenv(key, "")
		os.Unsetenv(key)
		return
	}
	t.Setenv(key, *value)
}
