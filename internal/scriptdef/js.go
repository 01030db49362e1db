package scriptdef

import (
	"fmt"

	"github.com/dop251/goja"
)

// jsDefinition interprets JavaScript scripts with the goja engine.
type jsDefinition struct {
	patterns []string
}

// NewJSDefinition returns the built-in JavaScript definition.
func NewJSDefinition() Definition {
	return &jsDefinition{patterns: []string{"*.js"}}
}

func (d *jsDefinition) DefinitionName() string { return "JavaScript" }

func (d *jsDefinition) ClassName() string { return "scriptctl/scriptdef.JSDefinition" }

func (d *jsDefinition) Matches(fileName string) bool { return matchAny(d.patterns, fileName) }

// Eval runs src in a fresh goja runtime with env bound as globals. A fresh
// runtime per call keeps script state from leaking between evaluations.
func (d *jsDefinition) Eval(src string, env map[string]any) (any, error) {
	vm := goja.New()
	for name, value := range env {
		if err := vm.Set(name, value); err != nil {
			return nil, fmt.Errorf("js: binding %q: %w", name, err)
		}
	}
	value, err := vm.RunString(src)
	if err != nil {
		return nil, fmt.Errorf("js: %w", err)
	}
	return value.Export(), nil
}
