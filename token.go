package pensieve

import "strconv"

// Kind is the kind of a token. The arithmetic and logic grammars share one
// set of kinds so that the parser and evaluator need not know which grammar
// produced a token sequence.
type Kind int8

const (
	KindNone Kind = iota

	// Arithmetic.
	Number
	UnaryPlus
	UnaryMinus
	Plus
	Minus
	Multiply
	Divide
	FloorDivide
	Exponent

	// Logic.
	Variable
	Negation
	Or
	And
	Xor
	Implication
	Biconditional

	// Shared.
	LParen
	RParen

	kindCount
)

// Assoc is the associativity of an operator.
type Assoc int8

const (
	Left Assoc = iota
	Right
)

func (a Assoc) String() string {
	if a == Right {
		return "right"
	}
	return "left"
}

// class classifies kinds for the lexer's rank count and the evaluator.
type class int8

const (
	classNone class = iota
	classOperand
	classUnary
	classBinary
	classParen
)

// lexeme is one row of the lexicon.
type lexeme struct {
	name  string
	text  string
	prec  int8
	assoc Assoc
	class class
}

// lexicon is indexed by Kind. Operands take their text from the input.
var lexicon = [kindCount]lexeme{
	KindNone: {name: "None"},

	Number:      {name: "Number", class: classOperand},
	UnaryPlus:   {name: "UnaryPlus", text: "+", prec: 3, assoc: Right, class: classUnary},
	UnaryMinus:  {name: "UnaryMinus", text: "-", prec: 3, assoc: Right, class: classUnary},
	Plus:        {name: "Plus", text: "+", prec: 1, assoc: Left, class: classBinary},
	Minus:       {name: "Minus", text: "-", prec: 1, assoc: Left, class: classBinary},
	Multiply:    {name: "Multiply", text: "*", prec: 2, assoc: Left, class: classBinary},
	Divide:      {name: "Divide", text: "/", prec: 2, assoc: Left, class: classBinary},
	FloorDivide: {name: "FloorDivide", text: "//", prec: 2, assoc: Left, class: classBinary},
	Exponent:    {name: "Exponent", text: "^", prec: 3, assoc: Right, class: classBinary},

	Variable:      {name: "Variable", class: classOperand},
	Negation:      {name: "Negation", text: "!", prec: 6, assoc: Right, class: classUnary},
	Or:            {name: "Or", text: "|", prec: 3, assoc: Left, class: classBinary},
	And:           {name: "And", text: "&", prec: 5, assoc: Left, class: classBinary},
	Xor:           {name: "Xor", text: "^", prec: 4, assoc: Left, class: classBinary},
	Implication:   {name: "Implication", text: ">", prec: 2, assoc: Right, class: classBinary},
	Biconditional: {name: "Biconditional", text: "=", prec: 1, assoc: Left, class: classBinary},

	LParen: {name: "LParen", text: "(", class: classParen},
	RParen: {name: "RParen", text: ")", class: classParen},
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return lexicon[k].name
}

// Token is a lexical token. Tokens are values created by the factory
// functions in this package and are never modified.
type Token struct {
	kind  Kind
	text  string
	prec  int8
	assoc Assoc
}

func newToken(k Kind, text string) Token {
	l := lexicon[k]
	if text == "" {
		text = l.text
	}
	return Token{kind: k, text: text, prec: l.prec, assoc: l.assoc}
}

// NumberToken creates a number operand. text should already be normalized to
// fixed-point decimal form, e.g. "52.0".
func NumberToken(text string) Token { return newToken(Number, text) }

func UnaryPlusToken() Token   { return newToken(UnaryPlus, "") }
func UnaryMinusToken() Token  { return newToken(UnaryMinus, "") }
func PlusToken() Token        { return newToken(Plus, "") }
func MinusToken() Token       { return newToken(Minus, "") }
func MultiplyToken() Token    { return newToken(Multiply, "") }
func DivideToken() Token      { return newToken(Divide, "") }
func FloorDivideToken() Token { return newToken(FloorDivide, "") }
func ExponentToken() Token    { return newToken(Exponent, "") }

// VariableToken creates a variable operand with the given name.
func VariableToken(name string) Token { return newToken(Variable, name) }

func NegationToken() Token      { return newToken(Negation, "") }
func OrToken() Token            { return newToken(Or, "") }
func AndToken() Token           { return newToken(And, "") }
func XorToken() Token           { return newToken(Xor, "") }
func ImplicationToken() Token   { return newToken(Implication, "") }
func BiconditionalToken() Token { return newToken(Biconditional, "") }

func LParenToken() Token { return newToken(LParen, "") }
func RParenToken() Token { return newToken(RParen, "") }

// Kind returns the token's kind.
func (t Token) Kind() Kind { return t.kind }

// Text returns the literal surface form of the token.
func (t Token) Text() string { return t.text }

// Precedence returns the binding strength of an operator token. Higher binds
// tighter. Operands and parentheses have precedence 0.
func (t Token) Precedence() int { return int(t.prec) }

// Associativity returns the associativity of an operator token.
func (t Token) Associativity() Assoc { return t.assoc }

// IsOperand reports whether the token is a number or variable.
func (t Token) IsOperand() bool { return lexicon[t.kind].class == classOperand }

// IsUnary reports whether the token is a prefix operator.
func (t Token) IsUnary() bool { return lexicon[t.kind].class == classUnary }

// IsParen reports whether the token is an open or close parenthesis.
func (t Token) IsParen() bool { return lexicon[t.kind].class == classParen }

// IsBinary reports whether the token is an infix operator.
func (t Token) IsBinary() bool { return lexicon[t.kind].class == classBinary }

// Equal reports whether two tokens have the same kind. The text is not
// compared, so any two numbers are equal.
func (t Token) Equal(u Token) bool { return t.kind == u.kind }

func (t Token) String() string {
	return t.kind.String() + ":" + t.text
}
