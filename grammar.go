package pensieve

import "strings"

// Grammar describes the surface syntax accepted by the lexer. The two
// grammars share the token model, parser, and evaluation skeleton; only the
// tables here differ.
type Grammar struct {
	name string
	// ops maps single-rune operators to their kinds.
	ops map[rune]Kind
	// doubled maps an operator kind to the kind produced when its rune
	// appears twice in a row, e.g. / to //.
	doubled map[Kind]Kind
	// signs indicates that + and - are unary or binary depending on the last
	// token emitted.
	signs bool
	// numbers and variables enable decimal literals and single-letter
	// variables, respectively.
	numbers, variables bool
}

// Arithmetic is the numeric grammar: decimal literals, + - * / // ^, unary
// signs, and parentheses.
var Arithmetic = &Grammar{
	name: "arith",
	ops: map[rune]Kind{
		'*': Multiply,
		'/': Divide,
		'^': Exponent,
	},
	doubled: map[Kind]Kind{Divide: FloorDivide},
	signs:   true,
	numbers: true,
}

// Logic is the propositional grammar: single lowercase letter variables,
// ! & | ^ > =, and parentheses.
var Logic = &Grammar{
	name: "logic",
	ops: map[rune]Kind{
		'!': Negation,
		'&': And,
		'|': Or,
		'^': Xor,
		'>': Implication,
		'=': Biconditional,
	},
	variables: true,
}

// Name returns the short name of the grammar, "arith" or "logic".
func (g *Grammar) Name() string {
	return g.name
}

func (g *Grammar) String() string {
	return g.name
}

// Numeric reports whether expressions in the grammar evaluate to numbers
// rather than truth tables.
func (g *Grammar) Numeric() bool {
	return g.numbers
}

// GrammarByName returns the grammar with the given name. Several spellings
// are accepted for each. The result is nil if no grammar matches.
func GrammarByName(name string) *Grammar {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "arith", "arithmetic", "num", "numeric", "math":
		return Arithmetic
	case "logic", "bool", "boolean", "prop":
		return Logic
	default:
		return nil
	}
}
