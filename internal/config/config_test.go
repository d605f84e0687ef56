package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/headroom/internal/calendar"
	"github.com/cleared-dev/headroom/internal/ledger"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Planner.GraceUntil = "2023-02-25"
	cfg.Planner.ReferenceDate = "2023-01-01"
	cfg.Git.AutoCommit = true

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, int64(500), cfg.Planner.MinimumBalance)
	assert.Equal(t, 60, cfg.Planner.GoalSavingWindowDays)
	assert.Equal(t, 8, cfg.Planner.HorizonYears)
	assert.Equal(t, 1000, cfg.Planner.MaxRows)
	assert.Equal(t, "zero_floor", cfg.Planner.GraceMode)
	assert.Empty(t, cfg.Planner.GraceUntil)
	assert.Equal(t, 25, cfg.Report.PeriodStartDay)
	assert.True(t, cfg.Report.LabelUsesNextMonth)
	assert.Equal(t, 60, cfg.Report.PlotLength)
	assert.Equal(t, "catalog.yaml", cfg.Catalog)
	assert.Equal(t, "exports", cfg.Export.Dir)
	assert.Equal(t, "logs", cfg.Export.LogDir)
	assert.False(t, cfg.Git.AutoCommit)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("planner:\n  minimum_balance: 1200\ncatalog: money.toml\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), cfg.Planner.MinimumBalance)
	assert.Equal(t, "money.toml", cfg.Catalog)
	assert.Equal(t, 60, cfg.Planner.GoalSavingWindowDays)
	assert.Equal(t, 25, cfg.Report.PeriodStartDay)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("report:\n  period_start_day: 40\nplanner:\n  grace_mode: sometimes\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "period start day 40")
	assert.Contains(t, err.Error(), "sometimes")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative window", func(c *Config) { c.Planner.GoalSavingWindowDays = -1 }, "goal_saving_window_days"},
		{"negative horizon", func(c *Config) { c.Planner.HorizonYears = -2 }, "horizon_years"},
		{"negative rows", func(c *Config) { c.Planner.MaxRows = -1 }, "max_rows"},
		{"bad grace date", func(c *Config) { c.Planner.GraceUntil = "soon" }, "grace_until"},
		{"bad reference", func(c *Config) { c.Planner.ReferenceDate = "2023-13-01" }, "reference_date"},
		{"plot length", func(c *Config) { c.Report.PlotLength = -5 }, "plot_length"},
		{"no catalog", func(c *Config) { c.Catalog = "" }, "catalog path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPolicy(t *testing.T) {
	cfg := Default()
	cfg.Planner.GraceUntil = "2023-02-25"
	cfg.Planner.GraceMode = "disabled"

	p, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, int64(500), p.Minimum)
	assert.Equal(t, ledger.GraceDisabled, p.GraceMode)
	assert.True(t, calendar.Date(2023, time.February, 25).Equal(p.GraceUntil))
}

func TestNow(t *testing.T) {
	cfg := Default()
	today := time.Date(2024, time.May, 3, 17, 45, 0, 0, time.UTC)

	got, err := cfg.Now(today)
	require.NoError(t, err)
	assert.True(t, calendar.Date(2024, time.May, 3).Equal(got))

	cfg.Planner.ReferenceDate = "2023-01-01"
	got, err = cfg.Now(today)
	require.NoError(t, err)
	assert.True(t, calendar.Date(2023, time.January, 1).Equal(got))
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "minimum_balance: 500")
	assert.Contains(t, contents, "period_start_day: 25")
	assert.Contains(t, contents, "catalog: catalog.yaml")
	assert.NotContains(t, contents, "grace_until")
}
