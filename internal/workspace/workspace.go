// Package workspace locates the .sctl directory that holds per-project
// scripting settings and definition manifests.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variable names for scriptctl.
const (
	EnvDir  = "SCTL_DIR"  // Path to the .sctl directory
	EnvRoot = "SCTL_ROOT" // Orchestrator checkout searched for shared manifests
)

const (
	// DirName is the per-project settings directory.
	DirName = ".sctl"
	// SettingsFileName is the scripting settings document inside DirName.
	SettingsFileName = "scripting.xml"
)

// Paths captures resolved locations for one workspace.
type Paths struct {
	ConfigDir    string // path to the .sctl directory
	SettingsFile string // path to .sctl/scripting.xml
}

// Resolve locates the workspace .sctl directory.
// Discovery order: explicit path > SCTL_DIR env var > walk up from CWD
// (stopping at the git repository root to avoid escaping the repo).
func Resolve(explicit string) (Paths, error) {
	if explicit != "" {
		return resolveFromBase(explicit)
	}

	if envDir := os.Getenv(EnvDir); envDir != "" {
		return resolveFromBase(envDir)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return Paths{}, fmt.Errorf("cannot get current directory: %w", err)
	}

	configDir, found, err := findUpward(cwd)
	if err != nil {
		return Paths{}, err
	}
	if !found {
		return Paths{}, fmt.Errorf("no %s directory found (searched from %s to the repo root; run `sctl init`)", DirName, cwd)
	}

	return buildPaths(configDir), nil
}

// resolveFromBase resolves Paths from a known .sctl directory path.
func resolveFromBase(basePath string) (Paths, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return Paths{}, fmt.Errorf("resolving path: %w", err)
	}
	if filepath.Base(absPath) != DirName {
		absPath = filepath.Join(absPath, DirName)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return Paths{}, fmt.Errorf("cannot access %s directory %s: %w", DirName, absPath, err)
	}
	if !info.IsDir() {
		return Paths{}, fmt.Errorf("%s path is not a directory: %s", DirName, absPath)
	}

	return buildPaths(absPath), nil
}

func buildPaths(configDir string) Paths {
	return Paths{
		ConfigDir:    configDir,
		SettingsFile: filepath.Join(configDir, SettingsFileName),
	}
}

// findUpward walks from start toward the filesystem root looking for a
// .sctl directory. It stops at the git repository root (if inside one).
func findUpward(start string) (string, bool, error) {
	gitRoot := findGitRoot(start)

	dir := start
	for {
		configDir := filepath.Join(dir, DirName)
		if info, err := os.Stat(configDir); err == nil && info.IsDir() {
			return configDir, true, nil
		} else if err != nil && !os.IsNotExist(err) {
			return "", false, fmt.Errorf("checking %s: %w", configDir, err)
		}

		// Stop at git root boundary
		if gitRoot != "" && dir == gitRoot {
			return "", false, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// findGitRoot returns the git repository root for the given directory.
// Returns "" if not in a git repo. Uses a file walk-up instead of a
// subprocess for speed. .git can be a directory (normal repo) or a file
// (worktree); both mark the root.
func findGitRoot(startDir string) string {
	dir := startDir
	for {
		gitPath := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitPath); err == nil {
			if info.IsDir() || info.Mode().IsRegular() {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
