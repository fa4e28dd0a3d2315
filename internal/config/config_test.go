package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "md", cfg.Analysis.State)
	assert.Equal(t, "lv", cfg.Analysis.ScaleID)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Contains(t, cfg.Sources.OEWSURL, "bls.gov")
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }},
		{name: "uppercase state", mutate: func(c *Config) { c.Analysis.State = "MD" }},
		{name: "long state", mutate: func(c *Config) { c.Analysis.State = "mdx" }},
		{name: "zero top n", mutate: func(c *Config) { c.Analysis.TopN = 0 }},
		{name: "empty truthy list", mutate: func(c *Config) { c.Analysis.TruthyFlags = nil }},
		{name: "bad oews url", mutate: func(c *Config) { c.Sources.OEWSURL = "not a url" }},
		{name: "zero rate limit", mutate: func(c *Config) { c.Sources.RateLimitRPS = 0 }},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SOCLENS_ANALYSIS_STATE", "va")
	t.Setenv("SOCLENS_ANALYSIS_SCALE_ID", "im")
	t.Setenv("SOCLENS_DATABASE_DSN", "postgres://localhost/test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "va", cfg.Analysis.State)
	assert.Equal(t, "im", cfg.Analysis.ScaleID)
	assert.Equal(t, "postgres://localhost/test", cfg.Database.DSN)
	// Untouched fields keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadYAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "soclens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"analysis:\n  state: ca\nlogging:\n  level: debug\n"), 0o644))
	t.Setenv("SOCLENS_CONFIG_FILE", path)
	// Environment still wins over the file.
	t.Setenv("SOCLENS_LOGGING_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ca", cfg.Analysis.State)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	t.Setenv("SOCLENS_ANALYSIS_STATE", "XYZ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestPathsHelpers(t *testing.T) {
	p := Default().Paths
	assert.Equal(t, filepath.Join("data", "downloads", "skills.xlsx"), p.DownloadPath("skills.xlsx"))
	assert.Equal(t, filepath.Join("data", "raw", "oews_raw.csv"), p.RawCSVPath("oews_raw"))
	assert.Equal(t, filepath.Join("data", "curated", "vw_onet_closest_oews.csv"), p.CuratedCSVPath("vw_onet_closest_oews"))
}

func TestEnsureDirs(t *testing.T) {
	base := t.TempDir()
	p := PathsConfig{
		DataDir:      filepath.Join(base, "data"),
		DownloadsDir: filepath.Join(base, "data", "downloads"),
		RawDir:       filepath.Join(base, "data", "raw"),
		CuratedDir:   filepath.Join(base, "data", "curated"),
	}
	require.NoError(t, p.EnsureDirs())

	for _, dir := range []string{p.DataDir, p.DownloadsDir, p.RawDir, p.CuratedDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
