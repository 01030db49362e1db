package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"scriptctl/internal/scriptsettings"
	"scriptctl/internal/scriptsettings/xmlstore"
	"scriptctl/internal/workspace"

	"github.com/spf13/cobra"
)

// sampleManifest seeds new workspaces with a commented starting point for
// user-declared definitions.
const sampleManifest = `# Script definitions declared for this project.
# Each definition names an engine (js, expr, or cel) and the file
# patterns it applies to.
#
# definitions:
#   - name: Deploy
#     className: example.DeployDefinition
#     engine: js
#     patterns: ["deploy.*.js"]
definitions: []
`

// newInitCmd creates the init command.
// Note: init doesn't use the provider since it creates the .sctl directory.
func newInitCmd(provider *AppProvider) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a scriptctl workspace",
		Long:  `Initialize a .sctl directory with empty scripting settings in the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := provider.Out
			if out == nil {
				out = os.Stdout
			}
			return runInit(out, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Force initialization even if .sctl exists")

	return cmd
}

func runInit(out io.Writer, force bool) error {
	// Path resolution: SCTL_DIR env var > CWD
	var basePath string
	if envDir := os.Getenv(workspace.EnvDir); envDir != "" {
		basePath = envDir
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot get current directory: %w", err)
		}
		basePath = cwd
	}
	if filepath.Base(basePath) != workspace.DirName {
		basePath = filepath.Join(basePath, workspace.DirName)
	}

	if _, err := os.Stat(basePath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to reinitialize)", basePath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", basePath, err)
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", basePath, err)
	}

	settingsFile := filepath.Join(basePath, workspace.SettingsFileName)
	if err := xmlstore.Save(settingsFile, scriptsettings.NewStore().CaptureState()); err != nil {
		return err
	}

	manifestFile := filepath.Join(basePath, "definitions.yaml")
	if _, err := os.Stat(manifestFile); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(manifestFile, []byte(sampleManifest), 0644); err != nil {
			return fmt.Errorf("writing sample manifest: %w", err)
		}
	}

	fmt.Fprintf(out, "Initialized scriptctl workspace in %s\n", basePath)
	return nil
}
