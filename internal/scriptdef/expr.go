package scriptdef

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
)

// exprDefinition interprets single-expression scripts with expr-lang/expr.
type exprDefinition struct {
	patterns []string
}

// NewExprDefinition returns the built-in expression definition.
func NewExprDefinition() Definition {
	return &exprDefinition{patterns: []string{"*.expr"}}
}

func (d *exprDefinition) DefinitionName() string { return "Expr" }

func (d *exprDefinition) ClassName() string { return "scriptctl/scriptdef.ExprDefinition" }

func (d *exprDefinition) Matches(fileName string) bool { return matchAny(d.patterns, fileName) }

func (d *exprDefinition) Eval(src string, env map[string]any) (any, error) {
	result, err := exprlang.Eval(src, env)
	if err != nil {
		return nil, fmt.Errorf("expr: %w", err)
	}
	return result, nil
}
