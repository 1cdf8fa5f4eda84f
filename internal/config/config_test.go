package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 20, cfg.App.MaxNewLeads)
	assert.False(t, cfg.App.EnableLinkedInFallback)

	assert.Contains(t, cfg.Resolver.Blocklist, "godaddy.com")
	assert.Contains(t, cfg.Resolver.SocialHosts, "linkedin.com")
	assert.Equal(t, []string{".com", ".io", ".ai", ".co"}, cfg.Resolver.GuessTLDs)

	assert.Equal(t, "Greenhouse", cfg.Hiring.ATSPatterns["boards.greenhouse.io"])
	assert.Equal(t, "Lever", cfg.Hiring.ATSPatterns["jobs.lever.co"])
	assert.Equal(t, 14, cfg.Hiring.RecentDays)
	assert.Contains(t, cfg.Hiring.TechTitleKeywords, "engineer")

	assert.NotEmpty(t, cfg.Ingest.Feeds)
	assert.Contains(t, cfg.Ingest.StrongKeywords, "raises")
	assert.Contains(t, cfg.Ingest.MoneyIndicators, "$")

	assert.Equal(t, "gemini-2.5-flash", cfg.Enrich.Model)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  max_new_leads: 5
  enable_linkedin_fallback: true
resolver:
  guess_tlds: [".dev"]
hiring:
  recent_days: 30
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// overridden
	assert.Equal(t, 5, cfg.App.MaxNewLeads)
	assert.True(t, cfg.App.EnableLinkedInFallback)
	assert.Equal(t, []string{".dev"}, cfg.Resolver.GuessTLDs)
	assert.Equal(t, 30, cfg.Hiring.RecentDays)

	// untouched sections keep their defaults
	assert.Contains(t, cfg.Resolver.Blocklist, "sedo.com")
	assert.Equal(t, "gemini-2.5-flash", cfg.Enrich.Model)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestEnsureUserConfig(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), path)

	// written file round-trips to the defaults
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	// second call leaves the existing file alone
	require.NoError(t, os.WriteFile(path, []byte("app:\n  max_new_leads: 3\n"), 0o644))
	again, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, path, again)

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.App.MaxNewLeads)
}
