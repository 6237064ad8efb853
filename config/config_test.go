package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"noxshift/config"
	customerrors "noxshift/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "noxshift.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvDatabasePath, config.EnvMonthlyBudget, config.EnvMetricsAddr, config.EnvPushURL, config.EnvLogLevel} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
database_path: /var/lib/noxshift/roster.db
monthly_budget: 50000
metrics_addr: ":9090"
log_level: debug
`)
	t.Setenv(config.EnvMonthlyBudget, "62500.50")
	t.Setenv(config.EnvPushURL, "http://localhost:9091")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/noxshift/roster.db", cfg.DatabasePath)
	assert.Equal(t, 62500.50, cfg.MonthlyBudget)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "http://localhost:9091", cfg.PushURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		file string
		env  map[string]string
		err  error
	}{
		"NegativeBudget": {file: "monthly_budget: -1\n", err: customerrors.ErrInvalidBudget},
		"BadBudgetEnv":   {env: map[string]string{config.EnvMonthlyBudget: "lots"}, err: customerrors.ErrInvalidBudget},
		"BadLogLevel":    {file: "log_level: loud\n"},
		"BadYAML":        {file: "monthly_budget: [1, 2\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			_, err := config.Load(path)
			require.Error(t, err)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
