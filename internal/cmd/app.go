package cmd

import (
	"io"
	"os"

	"scriptctl/internal/scriptdef"
	"scriptctl/internal/scriptsettings"
	"scriptctl/internal/scriptsettings/xmlstore"
	"scriptctl/internal/workspace"

	"golang.org/x/term"
)

// App holds application state shared across commands.
type App struct {
	Catalog  *scriptdef.Catalog
	Settings *scriptsettings.Store
	Paths    workspace.Paths
	Out      io.Writer
	Err      io.Writer
	JSON     bool // output in JSON format
}

// SaveSettings captures the current settings state and persists it to the
// workspace settings file.
func (a *App) SaveSettings() error {
	return xmlstore.Save(a.Paths.SettingsFile, a.Settings.CaptureState())
}

// SuccessColor returns the string wrapped in green ANSI codes if stdout is a terminal,
// otherwise returns the string unchanged.
func (a *App) SuccessColor(s string) string {
	if f, ok := a.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "\033[32m" + s + "\033[0m"
	}
	return s
}

// WarnColor returns the string wrapped in orange ANSI codes if stdout is a terminal,
// otherwise returns the string unchanged.
func (a *App) WarnColor(s string) string {
	if f, ok := a.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "\033[38;5;214m" + s + "\033[0m"
	}
	return s
}
