package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Environment: "development",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Data: DataConfig{
			BasePath: "/some/path",
		},
		RateLimit: RateLimitConfig{
			VoteRPS:     2,
			VoteBurst:   10,
			UploadRPS:   0.2,
			UploadBurst: 3,
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true},  // case insensitive
		{"INFO", true},   // case insensitive
		{"trace", false}, // not supported
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_RateLimits(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.VoteRPS = 0
	assert.Error(t, cfg.Validate(), "zero vote rate should be rejected")

	cfg = validConfig()
	cfg.RateLimit.UploadRPS = -1
	assert.Error(t, cfg.Validate(), "negative upload rate should be rejected")

	cfg = validConfig()
	cfg.RateLimit.VoteBurst = 0
	assert.Error(t, cfg.Validate(), "zero burst should be rejected")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		defaultVal string
		want       string
	}{
		{"empty uses default", "", "/default/path", "/default/path"},
		{"tilde expands to home", "~/data", "", filepath.Join(home, "data")},
		{"absolute passes through", "/var/lib/groovecharts", "", "/var/lib/groovecharts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.path, tt.defaultVal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("GROOVECHARTS_TEST_VALUE", "from-env")

	// Flag beats env.
	assert.Equal(t, "from-flag", getConfigValue("from-flag", "GROOVECHARTS_TEST_VALUE", "default"))
	// Env beats default.
	assert.Equal(t, "from-env", getConfigValue("", "GROOVECHARTS_TEST_VALUE", "default"))
	// Default wins when nothing else is set.
	assert.Equal(t, "default", getConfigValue("", "GROOVECHARTS_TEST_UNSET", "default"))
}

func TestGetFloatConfigValue(t *testing.T) {
	t.Setenv("GROOVECHARTS_TEST_FLOAT", "0.5")
	assert.Equal(t, 0.5, getFloatConfigValue("", "GROOVECHARTS_TEST_FLOAT", 2))

	t.Setenv("GROOVECHARTS_TEST_FLOAT", "not a number")
	assert.Equal(t, float64(2), getFloatConfigValue("", "GROOVECHARTS_TEST_FLOAT", 2))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment line\nGROOVECHARTS_TEST_FROM_FILE=hello\n\nGROOVECHARTS_TEST_QUOTED=\"world\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Setenv("GROOVECHARTS_TEST_FROM_FILE", "")
	os.Unsetenv("GROOVECHARTS_TEST_FROM_FILE")

	t.Setenv("GROOVECHARTS_TEST_QUOTED", "")
	os.Unsetenv("GROOVECHARTS_TEST_QUOTED")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "hello", os.Getenv("GROOVECHARTS_TEST_FROM_FILE"))
	assert.Equal(t, "world", os.Getenv("GROOVECHARTS_TEST_QUOTED"), "quotes should be stripped")
}
