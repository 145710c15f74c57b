package pensieve

import "fmt"

// MaxVars is the largest number of variables for which a truth table is
// built. The logic grammar has only 26 variable names, so every expression it
// accepts fits. Evaluation takes time proportional to 2^n for n variables.
const MaxVars = 26

// Matrix is the assignment matrix for an ordered list of variables: one
// column per variable and one row for each of the 2^n possible assignments.
// Rows are in lexicographic order with true before false and column 0 as the
// most significant bit, so column i alternates blocks of 2^(n-i-1) trues and
// falses.
type Matrix struct {
	vars []string
	rows int
}

// NewMatrix creates the assignment matrix for a roster of variables.
func NewMatrix(vars []string) (*Matrix, error) {
	if len(vars) > MaxVars {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyVars, len(vars), MaxVars)
	}
	return &Matrix{vars: append([]string(nil), vars...), rows: 1 << len(vars)}, nil
}

// Vars returns the variables of the matrix in column order.
func (m *Matrix) Vars() []string {
	return append([]string(nil), m.vars...)
}

// Cols returns the number of columns, which is the number of variables.
func (m *Matrix) Cols() int {
	return len(m.vars)
}

// Rows returns the number of rows, 2^Cols.
func (m *Matrix) Rows() int {
	return m.rows
}

// Cell returns the value variable col takes in the given row.
func (m *Matrix) Cell(col, row int) bool {
	if col < 0 || col >= len(m.vars) || row < 0 || row >= m.rows {
		panic(fmt.Sprintf("pensieve: matrix cell (%d, %d) out of range %dx%d", col, row, len(m.vars), m.rows))
	}
	shift := len(m.vars) - col - 1
	return row>>shift&1 == 0
}

// Row returns the assignment in the given row.
func (m *Matrix) Row(row int) []bool {
	r := make([]bool, len(m.vars))
	for col := range r {
		r[col] = m.Cell(col, row)
	}
	return r
}

// Class classifies a result vector.
type Class int8

const (
	// Contingent is an expression that is true for some assignments and
	// false for others.
	Contingent Class = iota
	// Tautology is an expression that is true for every assignment.
	Tautology
	// Contradiction is an expression that is false for every assignment.
	Contradiction
)

func (c Class) String() string {
	switch c {
	case Tautology:
		return "tautology"
	case Contradiction:
		return "contradiction"
	default:
		return "contingent"
	}
}

// TruthTable is the result of evaluating a logic expression for every
// assignment to its variables.
type TruthTable struct {
	*Matrix
	// Results holds the value of the expression for each row of the matrix.
	Results []bool
}

// Class classifies the expression as a tautology, contradiction, or neither.
func (t *TruthTable) Class() Class {
	return Classify(t.Results)
}

// Classify returns Tautology if every entry of results is true, Contradiction
// if every entry is false, and Contingent otherwise.
func Classify(results []bool) Class {
	all, none := true, true
	for _, r := range results {
		all = all && r
		none = none && !r
	}
	switch {
	case all:
		return Tautology
	case none:
		return Contradiction
	default:
		return Contingent
	}
}

// Evaluate evaluates a postfix logic expression for every assignment to the
// variables in roster. The roster must contain every variable in the
// expression; it may contain more.
func Evaluate(postfix []Token, roster []string) (*TruthTable, error) {
	m, err := NewMatrix(roster)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(roster))
	for i, v := range roster {
		if _, ok := index[v]; !ok {
			index[v] = i
		}
	}
	// Resolve names once rather than once per row.
	cols := make([]int, len(postfix))
	for i, t := range postfix {
		if t.kind != Variable {
			continue
		}
		c, ok := index[t.text]
		if !ok {
			return nil, &NameError{Name: t.text}
		}
		cols[i] = c
	}
	tt := TruthTable{Matrix: m, Results: make([]bool, m.rows)}
	stack := make([]bool, 0, len(postfix))
	for row := range tt.Results {
		stack = stack[:0]
		for i, t := range postfix {
			switch {
			case t.kind == Variable:
				stack = append(stack, m.Cell(cols[i], row))
				continue
			case t.IsUnary():
				if len(stack) < 1 {
					return nil, &EvalError{Op: t.text, Depth: len(stack)}
				}
			case t.IsBinary():
				if len(stack) < 2 {
					return nil, &EvalError{Op: t.text, Depth: len(stack)}
				}
			default:
				return nil, &EvalError{Op: t.text, Depth: len(stack)}
			}
			if t.IsUnary() {
				if t.kind != Negation {
					return nil, &EvalError{Op: t.text, Depth: len(stack)}
				}
				stack[len(stack)-1] = !stack[len(stack)-1]
				continue
			}
			a, b := stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			var r bool
			switch t.kind {
			case Or:
				r = a || b
			case And:
				r = a && b
			case Xor:
				r = a != b
			case Implication:
				r = !(a && !b)
			case Biconditional:
				r = a == b
			default:
				return nil, &EvalError{Op: t.text, Depth: len(stack) + 1}
			}
			stack[len(stack)-1] = r
		}
		if len(stack) != 1 {
			return nil, &EvalError{Depth: len(stack)}
		}
		tt.Results[row] = stack[0]
	}
	return &tt, nil
}

// Equivalent reports whether all result vectors are identical. Vectors of
// different lengths are never equivalent. Vectors are only meaningful to
// compare if they were evaluated over the same roster.
func Equivalent(vectors ...[]bool) bool {
	if len(vectors) == 0 {
		return true
	}
	first := vectors[0]
	for _, v := range vectors[1:] {
		if len(v) != len(first) {
			return false
		}
		for i := range v {
			if v[i] != first[i] {
				return false
			}
		}
	}
	return true
}
