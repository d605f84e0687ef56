package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/headroom/internal/calendar"
	"github.com/cleared-dev/headroom/internal/ledger"
	"github.com/cleared-dev/headroom/internal/report"
)

// FileName is the settings file at the root of a headroom directory.
const FileName = "headroom.yaml"

// Config represents the top-level headroom.yaml configuration.
type Config struct {
	Planner PlannerConfig `yaml:"planner"`
	Report  ReportConfig  `yaml:"report"`
	Catalog string        `yaml:"catalog"`
	Export  ExportConfig  `yaml:"export"`
	Git     GitConfig     `yaml:"git"`
}

// PlannerConfig drives projection and goal scheduling.
type PlannerConfig struct {
	MinimumBalance int64  `yaml:"minimum_balance"`
	GraceUntil     string `yaml:"grace_until,omitempty"` // "YYYY-MM-DD"
	GraceMode      string `yaml:"grace_mode"`
	// GoalSavingWindowDays is how many days before its deadline a goal may
	// be placed.
	GoalSavingWindowDays int    `yaml:"goal_saving_window_days"`
	HorizonYears         int    `yaml:"horizon_years"`
	MaxRows              int    `yaml:"max_rows"`
	ReferenceDate        string `yaml:"reference_date,omitempty"` // "YYYY-MM-DD", empty means today
}

// ReportConfig controls period grouping and charting.
type ReportConfig struct {
	PeriodStartDay     int  `yaml:"period_start_day"`
	LabelUsesNextMonth bool `yaml:"label_uses_next_month"`
	PlotLength         int  `yaml:"plot_length"`
}

// ExportConfig names output directories, relative to the headroom directory.
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	LogDir string `yaml:"log_dir"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a headroom.yaml file from disk. Keys missing from the file keep
// their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Planner: PlannerConfig{
			MinimumBalance:       500,
			GraceMode:            string(ledger.GraceZeroFloor),
			GoalSavingWindowDays: 60,
			HorizonYears:         8,
			MaxRows:              1000,
		},
		Report: ReportConfig{
			PeriodStartDay:     25,
			LabelUsesNextMonth: true,
			PlotLength:         60,
		},
		Catalog: "catalog.yaml",
		Export: ExportConfig{
			Dir:    "exports",
			LogDir: "logs",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Headroom",
			AuthorEmail: "headroom@localhost",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	p := c.Planner
	if p.GoalSavingWindowDays < 0 {
		errs = append(errs, fmt.Errorf("planner.goal_saving_window_days must not be negative, got %d", p.GoalSavingWindowDays))
	}
	if p.HorizonYears < 0 {
		errs = append(errs, fmt.Errorf("planner.horizon_years must not be negative, got %d", p.HorizonYears))
	}
	if p.MaxRows < 0 {
		errs = append(errs, fmt.Errorf("planner.max_rows must not be negative, got %d", p.MaxRows))
	}
	if _, err := c.Policy(); err != nil {
		errs = append(errs, err)
	}
	if p.ReferenceDate != "" {
		if _, err := calendar.ParseDate(p.ReferenceDate); err != nil {
			errs = append(errs, fmt.Errorf("planner.reference_date: %w", err))
		}
	}
	if err := c.ReportOptions().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("report: %w", err))
	}
	if c.Report.PlotLength < 0 {
		errs = append(errs, fmt.Errorf("report.plot_length must not be negative, got %d", c.Report.PlotLength))
	}
	if c.Catalog == "" {
		errs = append(errs, errors.New("catalog path is required"))
	}
	return errors.Join(errs...)
}

// Policy builds the minimum-balance policy from the planner settings.
func (c *Config) Policy() (ledger.Policy, error) {
	policy := ledger.Policy{
		Minimum:   c.Planner.MinimumBalance,
		GraceMode: ledger.GraceMode(c.Planner.GraceMode),
	}
	if c.Planner.GraceUntil != "" {
		until, err := calendar.ParseDate(c.Planner.GraceUntil)
		if err != nil {
			return ledger.Policy{}, fmt.Errorf("planner.grace_until: %w", err)
		}
		policy.GraceUntil = until
	}
	if err := policy.Validate(); err != nil {
		return ledger.Policy{}, fmt.Errorf("planner: %w", err)
	}
	return policy, nil
}

// Now returns the configured reference date, or today's date when unset.
func (c *Config) Now(today time.Time) (time.Time, error) {
	if c.Planner.ReferenceDate == "" {
		return calendar.Day(today), nil
	}
	d, err := calendar.ParseDate(c.Planner.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("planner.reference_date: %w", err)
	}
	return d, nil
}

// ReportOptions returns the aggregation options.
func (c *Config) ReportOptions() report.Options {
	return report.Options{
		PeriodStartDay:     c.Report.PeriodStartDay,
		LabelUsesNextMonth: c.Report.LabelUsesNextMonth,
	}
}
