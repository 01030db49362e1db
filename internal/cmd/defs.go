package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"scriptctl/internal/scriptsettings"

	"github.com/spf13/cobra"
)

// newDefsCmd creates the defs command with subcommands.
func newDefsCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defs",
		Short: "Manage script definition preferences",
		Long: `Manage per-project preferences about script definitions.

Preferences are keyed by definition identity (name + class name) and
persisted in .sctl/scripting.xml. Definitions without a stored entry use
the defaults: enabled, no auto-reload, lowest priority.

Subcommands:
  list            List known definitions with their stored preferences
  enable          Enable a definition
  disable         Disable a definition
  set-order       Set a definition's priority order
  auto-reload     Toggle automatic configuration reloading
  suppress-check  Get or set the ambiguity warning suppression flag`,
	}

	cmd.AddCommand(newDefsListCmd(provider))
	cmd.AddCommand(newDefsEnableCmd(provider, true))
	cmd.AddCommand(newDefsEnableCmd(provider, false))
	cmd.AddCommand(newDefsSetOrderCmd(provider))
	cmd.AddCommand(newDefsAutoReloadCmd(provider))
	cmd.AddCommand(newDefsSuppressCheckCmd(provider))

	return cmd
}

// definitionKey resolves a catalog definition by display name and derives
// its settings key.
func definitionKey(app *App, name string) (scriptsettings.DefinitionKey, error) {
	def, ok := app.Catalog.ByName(name)
	if !ok {
		return scriptsettings.DefinitionKey{}, fmt.Errorf("unknown script definition %q (see `sctl defs list`)", name)
	}
	return scriptsettings.KeyFor(def), nil
}

// defsListEntry is the JSON shape for one definition in list output.
type defsListEntry struct {
	Name       string `json:"name"`
	ClassName  string `json:"className"`
	Order      *int   `json:"order,omitempty"`
	Enabled    bool   `json:"enabled"`
	AutoReload bool   `json:"autoReloadConfigurations"`
	Known      bool   `json:"known"`
}

// newDefsListCmd creates the "defs list" subcommand.
func newDefsListCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known definitions with their stored preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			var entries []defsListEntry
			listed := make(map[scriptsettings.DefinitionKey]bool)
			for _, def := range app.Catalog.All() {
				key := scriptsettings.KeyFor(def)
				listed[key] = true
				entry := defsListEntry{
					Name:       key.DefinitionName,
					ClassName:  key.ClassName,
					Enabled:    app.Settings.Enabled(key),
					AutoReload: app.Settings.AutoReload(key),
					Known:      true,
				}
				if order, ok := app.Settings.Order(key); ok {
					entry.Order = &order
				}
				entries = append(entries, entry)
			}
			// Stored preferences for definitions no longer in the catalog are
			// kept (never garbage collected here) and shown as unknown.
			for _, key := range app.Settings.Keys() {
				if listed[key] {
					continue
				}
				stored := app.Settings.Settings(key)
				order := stored.Order
				entries = append(entries, defsListEntry{
					Name:       key.DefinitionName,
					ClassName:  key.ClassName,
					Order:      &order,
					Enabled:    stored.Enabled,
					AutoReload: stored.AutoReload,
				})
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]any{
					"suppressDefinitionsCheck": app.Settings.SuppressDefinitionsCheck(),
					"definitions":              entries,
				})
			}

			w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tORDER\tENABLED\tAUTO-RELOAD\tCLASS")
			for _, e := range entries {
				order := "-"
				if e.Order != nil {
					order = strconv.Itoa(*e.Order)
				}
				class := e.ClassName
				if !e.Known {
					class += " (not installed)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.Name, order, yesNo(e.Enabled), yesNo(e.AutoReload), class)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if app.Settings.SuppressDefinitionsCheck() {
				fmt.Fprintln(app.Out, "\ndefinitions check: suppressed")
			}
			return nil
		},
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// newDefsEnableCmd creates the "defs enable" or "defs disable" subcommand.
func newDefsEnableCmd(provider *AppProvider, enable bool) *cobra.Command {
	verb := "enable"
	if !enable {
		verb = "disable"
	}

	var order int

	cmd := &cobra.Command{
		Use:   verb + " <name>",
		Short: titleVerb(verb) + " a script definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			key, err := definitionKey(app, args[0])
			if err != nil {
				return err
			}

			app.Settings.SetEnabled(order, key, enable)
			if err := app.SaveSettings(); err != nil {
				return err
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]any{
					"name":    key.DefinitionName,
					"enabled": enable,
				})
			}
			fmt.Fprintf(app.Out, "%s %sd\n", key.DefinitionName, verb)
			return nil
		},
	}

	cmd.Flags().IntVar(&order, "order", scriptsettings.DefaultOrder,
		"Priority order to seed when the definition has no stored entry")

	return cmd
}

func titleVerb(verb string) string {
	if verb == "" {
		return verb
	}
	return string(verb[0]-'a'+'A') + verb[1:]
}

// newDefsSetOrderCmd creates the "defs set-order" subcommand.
func newDefsSetOrderCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "set-order <name> <order>",
		Short: "Set a definition's priority order (lower wins)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			key, err := definitionKey(app, args[0])
			if err != nil {
				return err
			}
			order, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("order must be an integer, got %q", args[1])
			}

			app.Settings.SetOrder(key, order)
			if err := app.SaveSettings(); err != nil {
				return err
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]any{
					"name":  key.DefinitionName,
					"order": order,
				})
			}
			fmt.Fprintf(app.Out, "%s order set to %d\n", key.DefinitionName, order)
			return nil
		},
	}
}

// newDefsAutoReloadCmd creates the "defs auto-reload" subcommand.
func newDefsAutoReloadCmd(provider *AppProvider) *cobra.Command {
	var order int

	cmd := &cobra.Command{
		Use:   "auto-reload <name> on|off",
		Short: "Toggle automatic configuration reloading for a definition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			key, err := definitionKey(app, args[0])
			if err != nil {
				return err
			}
			flag, err := parseOnOff(args[1])
			if err != nil {
				return err
			}

			app.Settings.SetAutoReload(order, key, flag)
			if err := app.SaveSettings(); err != nil {
				return err
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]any{
					"name":                     key.DefinitionName,
					"autoReloadConfigurations": flag,
				})
			}
			fmt.Fprintf(app.Out, "%s auto-reload %s\n", key.DefinitionName, onOff(flag))
			return nil
		},
	}

	cmd.Flags().IntVar(&order, "order", scriptsettings.DefaultOrder,
		"Priority order to seed when the definition has no stored entry")

	return cmd
}

// newDefsSuppressCheckCmd creates the "defs suppress-check" subcommand.
// Without an argument it prints the current flag; with on/off it sets it.
func newDefsSuppressCheckCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "suppress-check [on|off]",
		Short: "Get or set suppression of the multiple-definitions warning",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if app.JSON {
					return json.NewEncoder(app.Out).Encode(map[string]any{
						"suppressDefinitionsCheck": app.Settings.SuppressDefinitionsCheck(),
					})
				}
				fmt.Fprintln(app.Out, onOff(app.Settings.SuppressDefinitionsCheck()))
				return nil
			}

			flag, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			app.Settings.SetSuppressDefinitionsCheck(flag)
			if err := app.SaveSettings(); err != nil {
				return err
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]any{
					"suppressDefinitionsCheck": flag,
				})
			}
			fmt.Fprintf(app.Out, "definitions check suppression %s\n", onOff(flag))
			return nil
		},
	}
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
