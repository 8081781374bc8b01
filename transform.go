/*
Copyright © 2024 the nc2gssha authors.
This file is part of nc2gssha.

nc2gssha is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

nc2gssha is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with nc2gssha.  If not, see <http://www.gnu.org/licenses/>.
*/

package nc2gssha

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// Transform is an arithmetic expression applied to every unmasked
// grid cell, for example to convert units. The cell value is
// available as the variable "value".
type Transform struct {
	src    string
	expr   *govaluate.EvaluableExpression
	params map[string]interface{}
}

var transformFuncs = map[string]govaluate.ExpressionFunction{
	"abs":   unaryFunc("abs", math.Abs),
	"sqrt":  unaryFunc("sqrt", math.Sqrt),
	"exp":   unaryFunc("exp", math.Exp),
	"log":   unaryFunc("log", math.Log),
	"log10": unaryFunc("log10", math.Log10),
	"floor": unaryFunc("floor", math.Floor),
	"ceil":  unaryFunc("ceil", math.Ceil),
}

func unaryFunc(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s takes 1 argument, not %d", name, len(args))
		}
		v, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("%s: argument must be a number", name)
		}
		return f(v), nil
	}
}

// NewTransform parses expression. The only variable it may refer to
// is "value". Functions abs, sqrt, exp, log, log10, floor and ceil
// are available.
func NewTransform(expression string) (*Transform, error) {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(expression, transformFuncs)
	if err != nil {
		return nil, fmt.Errorf("nc2gssha: parsing transform %q: %w", expression, err)
	}
	t := &Transform{
		src:    expression,
		expr:   expr,
		params: make(map[string]interface{}, 1),
	}
	// Unknown variables and non-numeric results only show up on evaluation.
	if _, err := t.Eval(1); err != nil {
		return nil, err
	}
	return t, nil
}

// Eval applies the transform to v.
func (t *Transform) Eval(v float64) (float64, error) {
	t.params["value"] = v
	r, err := t.expr.Evaluate(t.params)
	if err != nil {
		return 0, fmt.Errorf("nc2gssha: evaluating transform %s: %w", t.src, err)
	}
	o, ok := r.(float64)
	if !ok {
		return 0, fmt.Errorf("nc2gssha: transform %s returned %v, not a number", t.src, r)
	}
	return o, nil
}
