// Package gitops versions a headroom directory with the git CLI.
package gitops

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNothingToCommit is returned by CommitAll when the tree is clean.
var ErrNothingToCommit = errors.New("nothing to commit")

// Author identifies who commits plan outputs.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	if _, err := run(dir, "init"); err != nil {
		return err
	}
	return nil
}

// CommitAll stages all files and creates a commit. Returns the short commit
// hash, or ErrNothingToCommit when there are no changes.
func CommitAll(dir, message string, author Author) (string, error) {
	if _, err := run(dir, "add", "-A"); err != nil {
		return "", err
	}

	status, err := run(dir, "status", "--porcelain")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(status) == "" {
		return "", ErrNothingToCommit
	}

	// Committer identity is passed inline so commits work without a global
	// git config.
	if _, err := run(dir,
		"-c", "user.name="+author.Name,
		"-c", "user.email="+author.Email,
		"commit", "-m", message, "--author", author.String()); err != nil {
		return "", err
	}

	hash, err := run(dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(hash), nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", subcommand(args), strings.TrimSpace(string(out)), err)
	}
	return string(out), nil
}

// subcommand skips leading "-c key=value" pairs.
func subcommand(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" {
			i++
			continue
		}
		return args[i]
	}
	return ""
}
