package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// ExpectedEnvSchemaVersion is bumped whenever .env.example gains a required key
const ExpectedEnvSchemaVersion = "1.0"

var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"ADMIN_API_KEY",
}

// RequiredPostgresEnvVars are only required when STORE_MODE is not local
var RequiredPostgresEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// placeholders are the values .env.example ships with, in warning order
var placeholders = []struct {
	env, value, hint string
}{
	{"DB_PASSWORD", "change_this_secure_password", "please use a secure password"},
	{"ADMIN_API_KEY", "generate_with_openssl_rand_hex_32", "generate a secure key with: openssl rand -hex 32"},
}

// knownRandomSources are the SHOP_RNG values the generator understands
var knownRandomSources = []string{"", "sine", "splitmix"}

func localStore() bool {
	return strings.EqualFold(os.Getenv("STORE_MODE"), StoreModeLocal)
}

func checkSchemaVersion() error {
	switch got := os.Getenv("ENV_SCHEMA_VERSION"); got {
	case ExpectedEnvSchemaVersion:
		return nil
	case "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, got)
	}
}

// ValidateEnv fails when the .env schema is stale or a required variable is empty
func ValidateEnv() error {
	if err := checkSchemaVersion(); err != nil {
		return err
	}

	required := RequiredEnvVars
	if !localStore() {
		required = append(required[:len(required):len(required)], RequiredPostgresEnvVars...)
	}

	var missing []string
	for _, name := range required {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings is ValidateEnv plus advisories that do not block startup
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, p := range placeholders {
		if os.Getenv(p.env) == p.value {
			warnings = append(warnings, fmt.Sprintf("%s appears to be using the example value - %s", p.env, p.hint))
		}
	}
	if rng := strings.ToLower(os.Getenv("SHOP_RNG")); !slices.Contains(knownRandomSources, rng) {
		warnings = append(warnings, fmt.Sprintf("SHOP_RNG=%s is not recognized - falling back to sine", rng))
	}
	if localStore() {
		warnings = append(warnings, "STORE_MODE=local - purchases and character edits will not survive a restart")
	}
	return warnings, nil
}
