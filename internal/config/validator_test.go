package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearValidatorEnv(t *testing.T) {
	t.Helper()
	for _, env := range append(append([]string{"STORE_MODE", "SHOP_RNG"}, RequiredEnvVars...), RequiredPostgresEnvVars...) {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
}

func TestValidateEnv_MissingVersion(t *testing.T) {
	clearValidatorEnv(t)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required environment variables")
	assert.Contains(t, err.Error(), "ADMIN_API_KEY")
	assert.Contains(t, err.Error(), "DB_HOST")
}

func TestValidateEnv_LocalModeSkipsDatabase(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("ADMIN_API_KEY", "key")
	t.Setenv("STORE_MODE", "local")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "STORE_MODE=local")
}

func TestValidateEnvWithWarnings_InsecureDefaults(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("DB_PASSWORD", "change_this_secure_password")
	t.Setenv("ADMIN_API_KEY", "generate_with_openssl_rand_hex_32")
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "db")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err, "Should not error even with warnings")
	require.Len(t, warnings, 2, "Should have 2 warnings")
	assert.Contains(t, warnings[0], "DB_PASSWORD")
	assert.Contains(t, warnings[1], "ADMIN_API_KEY")
}

func TestValidateEnvWithWarnings_UnknownRandomSource(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("ADMIN_API_KEY", "key")
	t.Setenv("STORE_MODE", "local")

	t.Setenv("SHOP_RNG", "SplitMix")
	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	assert.Len(t, warnings, 1, "known source only leaves the local-mode warning")

	t.Setenv("SHOP_RNG", "mersenne")
	warnings, err = ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "SHOP_RNG=mersenne")
}
