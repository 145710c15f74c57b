package pensieve

import (
	"errors"
	"math/big"
	"strconv"
)

// Messages of syntax errors. They are matched by errors.Is through
// SyntaxError.
var (
	ErrInvalidCharacter  = errors.New("invalid character")
	ErrMultipleDecimals  = errors.New("multiple decimals in a number")
	ErrMissingOpenParen  = errors.New("missing opening parentheses")
	ErrMissingCloseParen = errors.New("missing closing parentheses")
	ErrMissingOperand    = errors.New("missing operand")
	ErrMissingOperator   = errors.New("missing operator")
)

// ErrMalformed indicates a token sequence that could not have come from the
// lexer, e.g. an operator without enough operands.
var ErrMalformed = errors.New("malformed expression")

// ErrTooManyVars is returned when a truth table would need more than MaxVars
// variables.
var ErrTooManyVars = errors.New("too many variables")

// SyntaxError is an error from lexing an invalid expression. It implements
// InputError.
type SyntaxError struct {
	// Col is the 1-based rune position of the offending character. Errors
	// detected at the end of the input are one past the last rune.
	Col int
	// Err is one of the ErrInvalidCharacter family of errors.
	Err error
}

func (err *SyntaxError) Error() string {
	return errpos(err.Col, err.Err.Error())
}

func (err *SyntaxError) Unwrap() error {
	return err.Err
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// Message is the error message without position information.
func (err *SyntaxError) Message() string {
	return err.Err.Error()
}

// DomainError is an error returned when an operator is applied to arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Func is the operator.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

// EvalError is an error from evaluating a token sequence that is not a valid
// postfix expression. It indicates a bug in whatever produced the sequence;
// tokens from Tokenize and ToPostfix never cause it.
type EvalError struct {
	// Op is the token being processed, or the empty string if the error was
	// detected at the end of evaluation.
	Op string
	// Depth is the size of the operand stack at the time of the error.
	Depth int
}

func (err *EvalError) Error() string {
	if err.Op == "" {
		return "malformed expression: " + strconv.Itoa(err.Depth) + " values left on stack"
	}
	return "malformed expression: " + strconv.Quote(err.Op) + " with " + strconv.Itoa(err.Depth) + " operands"
}

func (err *EvalError) Unwrap() error {
	return ErrMalformed
}

// NameError is an error from a lookup for a variable that is missing from the
// roster used to evaluate an expression.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the 1-based rune index of the
	// character that caused the error.
	Pos() int
	// Message returns the error message without position information.
	Message() string
}

var _ InputError = (*SyntaxError)(nil)
