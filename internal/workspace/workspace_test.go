package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	sctlDir := filepath.Join(dir, DirName)
	if err := os.Mkdir(sctlDir, 0755); err != nil {
		t.Fatal(err)
	}

	// Pointing at the project root appends .sctl automatically.
	paths, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if paths.ConfigDir != sctlDir {
		t.Errorf("ConfigDir = %q, want %q", paths.ConfigDir, sctlDir)
	}
	if want := filepath.Join(sctlDir, SettingsFileName); paths.SettingsFile != want {
		t.Errorf("SettingsFile = %q, want %q", paths.SettingsFile, want)
	}

	// Pointing at the .sctl directory itself works too.
	paths, err = Resolve(sctlDir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if paths.ConfigDir != sctlDir {
		t.Errorf("ConfigDir = %q, want %q", paths.ConfigDir, sctlDir)
	}
}

func TestResolve_ExplicitPathMissing(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Resolve succeeded for missing directory, want error")
	}
}

func TestResolve_EnvVar(t *testing.T) {
	dir := t.TempDir()
	sctlDir := filepath.Join(dir, DirName)
	if err := os.Mkdir(sctlDir, 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvDir, dir)

	paths, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if paths.ConfigDir != sctlDir {
		t.Errorf("ConfigDir = %q, want %q", paths.ConfigDir, sctlDir)
	}
}

func TestResolve_WalkUp(t *testing.T) {
	root := t.TempDir()
	sctlDir := filepath.Join(root, DirName)
	if err := os.Mkdir(sctlDir, 0755); err != nil {
		t.Fatal(err)
	}
	deep := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatal(err)
	}

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(origDir)
	if err := os.Chdir(deep); err != nil {
		t.Fatal(err)
	}

	paths, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// Compare via EvalSymlinks: on darwin TempDir may go through /private.
	got, _ := filepath.EvalSymlinks(paths.ConfigDir)
	want, _ := filepath.EvalSymlinks(sctlDir)
	if got != want {
		t.Errorf("ConfigDir = %q, want %q", got, want)
	}
}

func TestResolve_StopsAtGitRoot(t *testing.T) {
	root := t.TempDir()
	// .sctl above the git root must not be found from inside the repo.
	if err := os.Mkdir(filepath.Join(root, DirName), 0755); err != nil {
		t.Fatal(err)
	}
	repo := filepath.Join(root, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	inside := filepath.Join(repo, "src")
	if err := os.Mkdir(inside, 0755); err != nil {
		t.Fatal(err)
	}

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(origDir)
	if err := os.Chdir(inside); err != nil {
		t.Fatal(err)
	}

	if _, err := Resolve(""); err == nil {
		t.Error("Resolve escaped the git repository boundary")
	}
}
