package pensieve_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/zephyrtronium/pensieve"
)

func TestDiagnostic(t *testing.T) {
	cases := []struct {
		name string
		src  string
		g    *pensieve.Grammar
		want string
	}{
		{"unclosed", "(1+2", pensieve.Arithmetic, "(1+2\n^ missing closing parentheses"},
		{"unopened", "1+2)", pensieve.Arithmetic, "1+2)\n   ^ missing opening parentheses"},
		{"adjacent", "1 2", pensieve.Arithmetic, "1 2\n  ^ missing operator"},
		{"dangling", "1+", pensieve.Arithmetic, "1+\n  ^ missing operand"},
		{"decimals", "1..2", pensieve.Arithmetic, "1..2\n  ^ multiple decimals in a number"},
		{"invalid", "1#2", pensieve.Arithmetic, "1#2\n ^ invalid character"},
		{"wide", "p中q", pensieve.Logic, "p中q\n ^ invalid character"},
		// Whitespace is copied so that tabs line up.
		{"tab", "p\t& #", pensieve.Logic, "p\t& #\n \t  ^ invalid character"},
		{"wide-space", "p　q", pensieve.Logic, "p　q\n 　^ missing operator"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			_, err := pensieve.Compile(c.src, c.g)
			if err == nil {
				t.Fatalf("%q: no error", c.src)
			}
			got, ok := pensieve.Diagnostic(c.src, err)
			if !ok {
				t.Fatalf("%q: %v not formatted", c.src, err)
			}
			if got != c.want {
				t.Errorf("%q: wrong diagnostic:\nwant\n%s\ngot\n%s", c.src, c.want, got)
			}
		})
	}
}

func TestDiagnosticWidth(t *testing.T) {
	// Each CJK character takes two columns.
	err := &pensieve.SyntaxError{Col: 3, Err: pensieve.ErrInvalidCharacter}
	got, ok := pensieve.Diagnostic("中文#", err)
	if !ok {
		t.Fatal("not formatted")
	}
	if want := "中文#\n    ^ invalid character"; got != want {
		t.Errorf("wrong diagnostic:\nwant\n%s\ngot\n%s", want, got)
	}
}

func TestDiagnosticOtherErrors(t *testing.T) {
	if _, ok := pensieve.Diagnostic("0/0", errors.New("boom")); ok {
		t.Error("plain error was formatted")
	}
	_, err := pensieve.EvalString("0/0")
	if _, ok := pensieve.Diagnostic("0/0", err); ok {
		t.Error("domain error was formatted")
	}
}

func TestWriteDiagnostic(t *testing.T) {
	_, err := pensieve.Compile("1+", pensieve.Arithmetic)
	var b strings.Builder
	mark := func(s string) string { return "<" + s + ">" }
	if err := pensieve.WriteDiagnostic(&b, "1+", err, mark); err != nil {
		t.Fatal(err)
	}
	if want := "1+\n<  ^ missing operand>\n"; b.String() != want {
		t.Errorf("want %q, got %q", want, b.String())
	}
	b.Reset()
	other := errors.New("boom")
	if err := pensieve.WriteDiagnostic(&b, "x", other, nil); err != other {
		t.Errorf("want the original error back, got %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("wrote %q for a non-input error", b.String())
	}
}
