package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/headroom/internal/buildinfo"
)

// Environment variables read by the CLI, also from <dir>/.env.
const (
	EnvLogLevel = "LOG_LEVEL"
	EnvNow      = "HEADROOM_NOW"
)

// app carries state shared by every subcommand.
type app struct {
	dir      string
	logLevel string
	logJSON  bool

	log   *logrus.Logger
	today func() time.Time
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(time.Now)
}

func newRootCommand(today func() time.Time) *cobra.Command {
	a := &app{today: today}

	rootCmd := &cobra.Command{
		Use:     "headroom",
		Short:   "Project a budget and fit savings goals into it",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.dir, "dir", ".", "headroom directory")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (default $"+EnvLogLevel+" or info)")
	flags.BoolVar(&a.logJSON, "log-json", false, "log as JSON")

	rootCmd.AddCommand(newInitCommand(a))
	rootCmd.AddCommand(newPlanCommand(a))
	rootCmd.AddCommand(newReportCommand(a))
	rootCmd.AddCommand(newLedgerCommand(a))

	return rootCmd
}

// setup resolves the directory, loads <dir>/.env and builds the logger.
// Variables already set in the environment are not overridden by .env.
func (a *app) setup(cmd *cobra.Command) error {
	absDir, err := filepath.Abs(a.dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	a.dir = absDir

	if err := godotenv.Load(filepath.Join(a.dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	a.log = logrus.New()
	a.log.SetOutput(cmd.ErrOrStderr())
	if a.logJSON {
		a.log.SetFormatter(&logrus.JSONFormatter{})
	}
	levelName := a.logLevel
	if levelName == "" {
		levelName = os.Getenv(EnvLogLevel)
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	a.log.SetLevel(level)
	return nil
}
