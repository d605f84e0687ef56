package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/headroom/internal/catalog"
	"github.com/cleared-dev/headroom/internal/config"
	"github.com/cleared-dev/headroom/internal/gitops"
)

func newInitCommand(a *app) *cobra.Command {
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a headroom directory with an example catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.dir
			if len(args) > 0 {
				abs, err := filepath.Abs(args[0])
				if err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}
				dir = abs
			}
			if err := runInit(dir, !noGit); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized headroom at %s\n", dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not create a git repository")

	return cmd
}

func runInit(dir string, withGit bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	cfg := config.Default()
	for _, d := range []string{cfg.Export.Dir, cfg.Export.LogDir} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
		if err := os.WriteFile(filepath.Join(dir, d, ".gitkeep"), []byte{}, 0o644); err != nil {
			return fmt.Errorf("writing .gitkeep: %w", err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}
	if err := catalog.Save(filepath.Join(dir, cfg.Catalog), catalog.Default()); err != nil {
		return err
	}

	// .env holds local overrides such as HEADROOM_NOW.
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".env\n"), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if !withGit {
		return nil
	}
	if err := gitops.Init(dir); err != nil {
		return err
	}
	if _, err := gitops.CommitAll(dir, "init: headroom plan", author(cfg)); err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}
	return nil
}

func author(cfg *config.Config) gitops.Author {
	return gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
}
