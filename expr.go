package pensieve

// Expr is a compiled expression: its validated infix tokens, their postfix
// form, and, for logic expressions, its variable roster.
type Expr struct {
	g   *Grammar
	src string
	// infix and postfix are the token sequences before and after conversion.
	infix, postfix []Token
	// names is the roster of variables in order of first appearance.
	names []string
}

// Compile lexes and parses an expression of grammar g.
func Compile(src string, g *Grammar) (*Expr, error) {
	infix, err := Tokenize(src, g)
	if err != nil {
		return nil, err
	}
	return &Expr{
		g:       g,
		src:     src,
		infix:   infix,
		postfix: ToPostfix(infix),
		names:   Roster(infix),
	}, nil
}

// Grammar returns the grammar the expression was compiled with.
func (e *Expr) Grammar() *Grammar {
	return e.g
}

// Source returns the text the expression was compiled from.
func (e *Expr) Source() string {
	return e.src
}

// Tokens returns the expression's tokens in infix order.
func (e *Expr) Tokens() []Token {
	return append([]Token(nil), e.infix...)
}

// Postfix returns the expression's tokens in postfix order.
func (e *Expr) Postfix() []Token {
	return append([]Token(nil), e.postfix...)
}

// Vars returns the variable names used in the expression in order of first
// appearance.
func (e *Expr) Vars() []string {
	return append([]string(nil), e.names...)
}

// String renders the postfix form of the expression.
func (e *Expr) String() string {
	return Render(e.postfix)
}

// Infix renders the expression fully parenthesized.
func (e *Expr) Infix() string {
	s, err := Infix(e.postfix)
	if err != nil {
		// Compile always produces valid postfix.
		panic("pensieve: " + err.Error())
	}
	return s
}

// Truth evaluates a logic expression over its own roster.
func (e *Expr) Truth() (*TruthTable, error) {
	return e.TruthOver(e.names)
}

// TruthOver evaluates a logic expression over a roster that includes at least
// all of its variables.
func (e *Expr) TruthOver(roster []string) (*TruthTable, error) {
	return Evaluate(e.postfix, roster)
}
