// Package store is the persistence gateway: named documents (one forest
// each) in a per-workspace SQLite database, plus workspace resolution and
// the global config file.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const storeDirName = ".twig"

// Store is a handle to one workspace directory.
type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for a project-local .twig dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, storeDirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the store dir for the current working directory:
// a discovered project-local .twig, else cwd/.twig.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, storeDirName), nil
}

var workspaceNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// NormalizeWorkspaceName lowercases and validates a workspace name.
func NormalizeWorkspaceName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", fmt.Errorf("workspace name is empty")
	}
	if !workspaceNameRe.MatchString(name) {
		return "", fmt.Errorf("invalid workspace name %q (allowed: a-z 0-9 . _ -)", name)
	}
	return name, nil
}

// WorkspaceDir returns the directory for a named workspace under the global
// config dir (~/.twig/workspaces/<name>).
func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

// ListWorkspaces returns the names of workspaces under the global config dir.
func ListWorkspaces() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(dir, "workspaces"))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), "index.sqlite")
}
