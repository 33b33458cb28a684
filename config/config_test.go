package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("ETL_TOKEN", "etl-secret")
	t.Setenv("API_SECRET_KEY", "api-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "pulse", cfg.Database.DBName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 60*time.Second, cfg.Ingest.SourceTimeout)
	assert.False(t, cfg.Ingest.UseMockData)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("ETL_TOKEN", "")
	t.Setenv("API_SECRET_KEY", "")

	_, err := LoadWithOptions(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ETL_TOKEN")
}

func TestSplitLists(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_EMAILS", "a@forge-os.com, b@forge-os.com ,")
	t.Setenv("GOOGLE_SHEET_IDS", "sheet-1,sheet-2")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a@forge-os.com", "b@forge-os.com"}, cfg.Ingest.AdminEmails)
	assert.Equal(t, []string{"sheet-1", "sheet-2"}, cfg.Google.SheetIDs)
}

func TestUseMockSource(t *testing.T) {
	setRequiredEnv(t)

	t.Run("no credentials falls back to mock", func(t *testing.T) {
		cfg, err := LoadWithOptions(LoadOptions{})
		require.NoError(t, err)
		assert.True(t, cfg.UseMockSource())
	})

	t.Run("sheet ids with credentials use real source", func(t *testing.T) {
		t.Setenv("GOOGLE_SA_EMAIL", "svc@project.iam.gserviceaccount.com")
		t.Setenv("GOOGLE_SHEET_IDS", "sheet-1")
		cfg, err := LoadWithOptions(LoadOptions{})
		require.NoError(t, err)
		assert.False(t, cfg.UseMockSource())
	})

	t.Run("explicit flag wins", func(t *testing.T) {
		t.Setenv("GOOGLE_SA_EMAIL", "svc@project.iam.gserviceaccount.com")
		t.Setenv("GOOGLE_SHEET_IDS", "sheet-1")
		t.Setenv("USE_MOCK_DATA", "true")
		cfg, err := LoadWithOptions(LoadOptions{})
		require.NoError(t, err)
		assert.True(t, cfg.UseMockSource())
	})
}
