package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"scriptctl/internal/scriptdef"
	"scriptctl/internal/scriptsettings"

	"github.com/spf13/cobra"
)

// newEvalCmd creates the eval command.
func newEvalCmd(provider *AppProvider) *cobra.Command {
	var defName string

	cmd := &cobra.Command{
		Use:   "eval <file>",
		Short: "Evaluate a script file with its definition's engine",
		Long: `Evaluate a script file.

The definition is chosen by --def, or, when omitted, by matching the
file name against the enabled definitions and taking the one with the
lowest stored order. When several definitions match, a warning is
printed unless the workspace suppresses the definitions check
(see ` + "`sctl defs suppress-check`" + `).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			fileName := args[0]
			def, err := pickDefinition(app, fileName, defName)
			if err != nil {
				return err
			}

			src, err := os.ReadFile(fileName)
			if err != nil {
				return fmt.Errorf("reading script: %w", err)
			}

			result, err := def.Eval(string(src), map[string]any{
				"file": fileName,
			})
			if err != nil {
				return err
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]any{
					"definition": def.DefinitionName(),
					"result":     result,
				})
			}
			fmt.Fprintln(app.Out, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&defName, "def", "", "Definition name to evaluate with (default: match by file name)")

	return cmd
}

// pickDefinition selects the definition for fileName. An explicit name
// wins; otherwise the enabled matching definition with the lowest stored
// order is used, catalog order breaking ties.
func pickDefinition(app *App, fileName, explicit string) (scriptdef.Definition, error) {
	if explicit != "" {
		def, ok := app.Catalog.ByName(explicit)
		if !ok {
			return nil, fmt.Errorf("unknown script definition %q (see `sctl defs list`)", explicit)
		}
		if !app.Settings.Enabled(scriptsettings.KeyFor(def)) {
			return nil, fmt.Errorf("script definition %q is disabled for this project", explicit)
		}
		return def, nil
	}

	var matches []scriptdef.Definition
	for _, def := range app.Catalog.All() {
		if !def.Matches(fileName) {
			continue
		}
		if !app.Settings.Enabled(scriptsettings.KeyFor(def)) {
			continue
		}
		matches = append(matches, def)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no enabled script definition matches %q", fileName)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return storedOrder(app, matches[i]) < storedOrder(app, matches[j])
	})

	if len(matches) > 1 && !app.Settings.SuppressDefinitionsCheck() {
		fmt.Fprintf(app.Err, "warning: %d definitions match %q, using %q (silence with `sctl defs suppress-check on`)\n",
			len(matches), fileName, matches[0].DefinitionName())
	}
	return matches[0], nil
}

// storedOrder returns the stored priority for def, or the sentinel default
// when no preference is stored.
func storedOrder(app *App, def scriptdef.Definition) int {
	if order, ok := app.Settings.Order(scriptsettings.KeyFor(def)); ok {
		return order
	}
	return scriptsettings.DefaultOrder
}
