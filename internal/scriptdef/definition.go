// Package scriptdef enumerates the script definitions known to the tool:
// named interpreter configurations that can apply to script-like files.
// Built-in definitions cover JavaScript (goja), expr-lang expressions, and
// CEL policies; additional definitions come from workspace manifests.
//
// Which definition wins for a given file is the resolver's concern, not
// this package's; the catalog only enumerates and evaluates.
package scriptdef

import (
	"path"
	"path/filepath"
)

// Definition is one named interpreter configuration.
type Definition interface {
	// DefinitionName is the human-readable name shown to users.
	DefinitionName() string

	// ClassName is the fully-qualified implementation identifier. It is
	// stable across releases and keys stored settings, so renaming a
	// definition does not orphan its preferences.
	ClassName() string

	// Matches reports whether the definition applies to fileName.
	Matches(fileName string) bool

	// Eval runs src with env bound into the engine's scope and returns
	// the script's value.
	Eval(src string, env map[string]any) (any, error)
}

// matchAny reports whether the base name of fileName matches any of the
// glob patterns.
func matchAny(patterns []string, fileName string) bool {
	base := filepath.Base(fileName)
	for _, pattern := range patterns {
		if ok, err := path.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
