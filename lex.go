package pensieve

import (
	"errors"
	"io"
	"strings"
	"unicode"
)

type lexer struct {
	src  io.RuneScanner
	g    *Grammar
	buf  strings.Builder
	rune int
	// toks is the token sequence emitted so far.
	toks []Token
	// rank is the count of operands minus binary operators emitted so far.
	rank int
	// parens holds the positions of open parentheses not yet closed.
	parens []int
}

func lex(src io.RuneScanner, g *Grammar) *lexer {
	return &lexer{
		src:  src,
		g:    g,
		rune: 1,
	}
}

// Tokenize scans src into a validated token sequence in infix order. If the
// input is not a well-formed expression of the grammar, the result is nil and
// the error is a *SyntaxError pointing at the offending character. Scanning
// stops at the first error.
func Tokenize(src string, g *Grammar) ([]Token, error) {
	return lex(strings.NewReader(src), g).run()
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// peek returns the next rune without consuming it. ok is false at the end of
// the input.
func (l *lexer) peek() (r rune, ok bool, err error) {
	r, err = l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, false, nil
		}
		return 0, false, err
	}
	l.unreadRune()
	return r, true, nil
}

func (l *lexer) run() ([]Token, error) {
	for {
		pos := l.rune
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if unicode.IsSpace(r) {
			continue
		}
		tok, err := l.next(r, pos)
		if err != nil {
			return nil, err
		}
		if err := l.adjacent(tok, pos); err != nil {
			return nil, err
		}
		l.toks = append(l.toks, tok)
		if err := l.count(tok, pos); err != nil {
			return nil, err
		}
	}
	// The rank may be 0 or 1 between tokens, but a complete expression must
	// leave exactly one value.
	switch {
	case l.rank < 1:
		return nil, l.error(l.rune, ErrMissingOperand)
	case l.rank > 1:
		return nil, l.error(l.rune, ErrMissingOperator)
	case l.toks[len(l.toks)-1].IsUnary():
		return nil, l.error(l.rune, ErrMissingOperand)
	}
	if len(l.parens) != 0 {
		return nil, l.error(l.parens[0], ErrMissingCloseParen)
	}
	return l.toks, nil
}

// next scans the token beginning with r, which was read at pos.
func (l *lexer) next(r rune, pos int) (Token, error) {
	switch {
	case r == '(':
		l.parens = append(l.parens, pos)
		return LParenToken(), nil
	case r == ')':
		if len(l.parens) == 0 {
			return Token{}, l.error(pos, ErrMissingOpenParen)
		}
		l.parens = l.parens[:len(l.parens)-1]
		return RParenToken(), nil
	case l.g.signs && (r == '+' || r == '-'):
		return l.sign(r), nil
	case l.g.numbers && ('0' <= r && r <= '9' || r == '.'):
		l.unreadRune()
		return l.scanNum()
	case l.g.variables && 'a' <= r && r <= 'z':
		return VariableToken(string(r)), nil
	}
	k, ok := l.g.ops[r]
	if !ok {
		return Token{}, l.error(pos, ErrInvalidCharacter)
	}
	if d, ok := l.g.doubled[k]; ok {
		s, ok, err := l.peek()
		if err != nil {
			return Token{}, err
		}
		if ok && s == r {
			l.readRune()
			k = d
		}
	}
	return newToken(k, ""), nil
}

// sign decides whether + or - is unary from the last token emitted.
func (l *lexer) sign(r rune) Token {
	unary := true
	if n := len(l.toks); n > 0 {
		last := l.toks[n-1]
		unary = !last.IsOperand() && last.kind != RParen
	}
	switch {
	case r == '+' && unary:
		return UnaryPlusToken()
	case r == '+':
		return PlusToken()
	case unary:
		return UnaryMinusToken()
	default:
		return MinusToken()
	}
}

// scanNum scans a decimal literal and normalizes it to the form d.d.
func (l *lexer) scanNum() (Token, error) {
	defer l.buf.Reset()
	dot := false
	for {
		pos := l.rune
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Token{}, err
		}
		if r == '.' {
			if dot {
				return Token{}, l.error(pos, ErrMultipleDecimals)
			}
			dot = true
		} else if r < '0' || '9' < r {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	s := l.buf.String()
	if s[0] == '.' {
		s = "0" + s
	}
	switch {
	case !dot:
		s += ".0"
	case s[len(s)-1] == '.':
		s += "0"
	}
	return NumberToken(s), nil
}

// count updates the rank for a newly emitted token and checks that it stays
// within [0, 1].
func (l *lexer) count(tok Token, pos int) error {
	switch {
	case tok.IsUnary():
		return nil
	case tok.IsOperand():
		l.rank++
	case !tok.IsParen():
		l.rank--
	}
	switch {
	case l.rank < 0:
		return l.error(pos, ErrMissingOperand)
	case l.rank > 1:
		return l.error(pos, ErrMissingOperator)
	}
	return nil
}

// adjacent checks token placements that the rank cannot see. A unary
// operator cannot follow a complete operand, and a binary operator or close
// parenthesis must follow one.
func (l *lexer) adjacent(tok Token, pos int) error {
	if len(l.toks) == 0 {
		return nil
	}
	last := l.toks[len(l.toks)-1]
	done := last.IsOperand() || last.kind == RParen
	switch {
	case tok.IsUnary() && done:
		return l.error(pos, ErrMissingOperator)
	case (tok.IsBinary() || tok.kind == RParen) && !done:
		return l.error(pos, ErrMissingOperand)
	}
	return nil
}

func (l *lexer) error(pos int, err error) error {
	return &SyntaxError{Col: pos, Err: err}
}
