// Package condition evaluates user-authored boolean expressions against a
// document. Notification rules are written as Tengo expressions over the
// fields of a planeación, e.g. `state == "enviada" && week >= 40`.
package condition

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Evaluator compiles one expression once and evaluates it against many
// documents. Not safe for concurrent use; each sweep builds its own.
type Evaluator struct {
	source string
}

func NewEvaluator(expression string) (*Evaluator, error) {
	if expression == "" {
		return nil, fmt.Errorf("empty condition expression")
	}
	return &Evaluator{source: expression}, nil
}

// Eval runs the expression with doc's fields bound as script variables.
// A non-boolean result is an error: rules must answer yes or no.
func (e *Evaluator) Eval(doc map[string]interface{}) (bool, error) {
	script := tengo.NewScript([]byte("__result__ := (" + e.source + ")"))
	script.SetImports(stdlib.GetModuleMap("text", "math", "times"))

	for name, value := range doc {
		if err := script.Add(name, value); err != nil {
			return false, fmt.Errorf("bind %s: %w", name, err)
		}
	}

	compiled, err := script.Run()
	if err != nil {
		return false, fmt.Errorf("evaluate condition: %w", err)
	}

	result := compiled.Get("__result__")
	if result.ValueType() != "bool" {
		return false, fmt.Errorf("condition must evaluate to a boolean, got %s", result.ValueType())
	}
	return result.Bool(), nil
}
