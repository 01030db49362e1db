package scriptdef

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
)

// celDefinition interprets CEL policy expressions with google/cel-go.
type celDefinition struct {
	patterns []string
}

// NewCELDefinition returns the built-in CEL definition.
func NewCELDefinition() Definition {
	return &celDefinition{patterns: []string{"*.cel"}}
}

func (d *celDefinition) DefinitionName() string { return "CEL" }

func (d *celDefinition) ClassName() string { return "scriptctl/scriptdef.CELDefinition" }

func (d *celDefinition) Matches(fileName string) bool { return matchAny(d.patterns, fileName) }

// Eval compiles src against an environment declaring every env key as a
// dyn variable, then evaluates it with env as the activation.
func (d *celDefinition) Eval(src string, env map[string]any) (any, error) {
	decls := make([]celgo.EnvOption, 0, len(env))
	for name := range env {
		decls = append(decls, celgo.Variable(name, celgo.DynType))
	}

	celEnv, err := celgo.NewEnv(decls...)
	if err != nil {
		return nil, fmt.Errorf("cel: %w", err)
	}

	ast, issues := celEnv.Compile(src)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("cel: %w", issues.Err())
	}

	program, err := celEnv.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("cel: %w", err)
	}

	activation := env
	if activation == nil {
		activation = map[string]any{}
	}
	out, _, err := program.Eval(activation)
	if err != nil {
		return nil, fmt.Errorf("cel: %w", err)
	}
	return out.Value(), nil
}
