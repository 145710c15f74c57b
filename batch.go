package pensieve

import (
	"math/big"
	"strings"
	"unicode/utf8"
)

// Result is the outcome of evaluating one expression.
type Result struct {
	Expr *Expr
	// Value is the value of an arithmetic expression.
	Value *big.Float
	// Table is the truth table of a logic expression over its own variables.
	Table *TruthTable
}

// Batch is the outcome of evaluating one line of input.
type Batch struct {
	Grammar *Grammar
	Results []Result
	// Vars is the combined roster of all logic expressions in the line, in
	// order of first appearance.
	Vars []string
	// Equivalent reports whether every logic expression in the line has the
	// same value for every assignment to Vars. It is always true for a single
	// expression.
	Equivalent bool
}

// EvalLine evaluates a line of input. An arithmetic line holds one
// expression. A logic line holds one or more expressions separated by commas;
// each is evaluated on its own, and then all are compared for equivalence.
//
// Evaluation is all or nothing: if any expression fails, the result is nil.
// The column of a *SyntaxError is relative to the whole line.
func EvalLine(line string, g *Grammar, opts ...ContextOption) (*Batch, error) {
	if g.Numeric() {
		e, err := Compile(line, g)
		if err != nil {
			return nil, err
		}
		ctx := NewContext(opts...)
		v := ctx.Eval(e)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &Batch{Grammar: g, Results: []Result{{Expr: e, Value: v}}, Equivalent: true}, nil
	}

	parts := strings.Split(line, ",")
	b := Batch{Grammar: g, Results: make([]Result, 0, len(parts))}
	seen := make(map[string]bool)
	off := 0
	for _, part := range parts {
		e, err := Compile(part, g)
		if err != nil {
			if serr, ok := err.(*SyntaxError); ok {
				serr.Col += off
			}
			return nil, err
		}
		off += utf8.RuneCountInString(part) + 1
		t, err := e.Truth()
		if err != nil {
			return nil, err
		}
		b.Results = append(b.Results, Result{Expr: e, Table: t})
		for _, v := range e.names {
			if !seen[v] {
				seen[v] = true
				b.Vars = append(b.Vars, v)
			}
		}
	}
	b.Equivalent = true
	if len(b.Results) > 1 {
		vecs := make([][]bool, 0, len(b.Results))
		for _, r := range b.Results {
			t, err := r.Expr.TruthOver(b.Vars)
			if err != nil {
				return nil, err
			}
			vecs = append(vecs, t.Results)
		}
		b.Equivalent = Equivalent(vecs...)
	}
	return &b, nil
}
