// Package cmd implements the sctl command-line interface.
package cmd

import (
	"io"
	"os"
	"sync"

	"scriptctl/internal/scriptdef"
	"scriptctl/internal/scriptsettings"
	"scriptctl/internal/scriptsettings/xmlstore"
	"scriptctl/internal/workspace"

	"github.com/spf13/cobra"
)

// AppProvider lazily initializes the App on first use.
type AppProvider struct {
	once sync.Once
	app  *App
	err  error

	// Config captured from flags before Execute()
	SctlPath   string
	JSONOutput bool
	Out        io.Writer
	Err        io.Writer
}

// Get returns the App, initializing it on first call.
func (p *AppProvider) Get() (*App, error) {
	p.once.Do(func() {
		if p.app == nil {
			p.app, p.err = p.init()
		}
	})
	return p.app, p.err
}

// NewTestProvider creates a provider pre-initialized with the given App.
// Used for testing commands with a mock/test App.
func NewTestProvider(app *App) *AppProvider {
	return &AppProvider{
		app: app,
		Out: app.Out,
		Err: app.Err,
	}
}

func (p *AppProvider) init() (*App, error) {
	paths, err := workspace.Resolve(p.SctlPath)
	if err != nil {
		return nil, err
	}

	catalog := scriptdef.NewCatalog()
	for _, def := range builtinDefinitions() {
		if err := catalog.Register(def); err != nil {
			return nil, err
		}
	}
	manifestDefs, err := scriptdef.LoadManifests(scriptdef.DefaultSearchPath(paths.ConfigDir))
	if err != nil {
		return nil, err
	}
	for _, def := range manifestDefs {
		if err := catalog.Register(def); err != nil {
			return nil, err
		}
	}

	doc, err := xmlstore.Load(paths.SettingsFile)
	if err != nil {
		return nil, err
	}
	settings := scriptsettings.NewStore()
	settings.RestoreState(doc)

	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := p.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	return &App{
		Catalog:  catalog,
		Settings: settings,
		Paths:    paths,
		Out:      out,
		Err:      errOut,
		JSON:     p.JSONOutput,
	}, nil
}

// builtinDefinitions returns the engine definitions shipped with the tool.
func builtinDefinitions() []scriptdef.Definition {
	return []scriptdef.Definition{
		scriptdef.NewJSDefinition(),
		scriptdef.NewExprDefinition(),
		scriptdef.NewCELDefinition(),
	}
}

// Execute runs the CLI.
func Execute() error {
	provider := &AppProvider{
		Out: os.Stdout,
		Err: os.Stderr,
	}

	rootCmd := newRootCmd(provider)
	return rootCmd.Execute()
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd(provider *AppProvider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sctl",
		Short: "Manage how script-like files in your project are interpreted",
		Long: `Scriptctl manages script definitions: named interpreter configurations
that apply to script-like files in a project. Per-project preferences
(priority order, enabled flag, auto-reload) live in .sctl/scripting.xml,
alongside optional definition manifests.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags - these populate the provider config
	rootCmd.PersistentFlags().BoolVar(&provider.JSONOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&provider.SctlPath, "path", "", "Path to project or .sctl directory (default: search from cwd)")

	// Register all commands
	rootCmd.AddCommand(newInitCmd(provider))
	rootCmd.AddCommand(newDefsCmd(provider))
	rootCmd.AddCommand(newEvalCmd(provider))
	rootCmd.AddCommand(newVersionCmd(provider))

	return rootCmd
}
