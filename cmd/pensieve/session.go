package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fortio.org/safecast"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zephyrtronium/pensieve"
)

// commands are the REPL commands, also offered for tab completion.
var commands = []string{"/debug", "/arith", "/logic", "/mode", "/q", "exit", "quit"}

// session is the evaluation state shared by the REPL and line mode.
type session struct {
	g      *pensieve.Grammar
	prec   uint
	format string
	debug  bool
	pal    palette
	log    *zap.Logger
	lower  cases.Caser
}

func newSession(cfg config, g *pensieve.Grammar, pal palette, log *zap.Logger) (*session, error) {
	prec, err := safecast.Conv[uint](cfg.Prec)
	if err != nil {
		return nil, fmt.Errorf("precision %d: %w", cfg.Prec, err)
	}
	return &session{
		g:      g,
		prec:   prec,
		format: cfg.Format,
		debug:  cfg.Debug,
		pal:    pal,
		log:    log,
		lower:  cases.Lower(language.Und),
	}, nil
}

// handle runs one line of input, either a command or an expression, and
// returns the text to print. quit is true if the session should end.
func (s *session) handle(line string) (out string, quit bool) {
	line = s.normalize(line)
	switch line {
	case "":
		return "", false
	case "exit", "quit", "/q":
		return s.pal.note.Sprint("bye"), true
	case "/debug":
		s.debug = !s.debug
		state := "disabled"
		if s.debug {
			state = "enabled"
		}
		return s.pal.note.Sprint("debug mode " + state), false
	case "/arith":
		s.g = pensieve.Arithmetic
		return s.pal.note.Sprint("mode arith"), false
	case "/logic":
		s.g = pensieve.Logic
		return s.pal.note.Sprint("mode logic"), false
	case "/mode":
		return s.pal.note.Sprint("mode " + s.g.Name()), false
	}
	return s.eval(line), false
}

// normalize trims and lower-cases a line of input.
func (s *session) normalize(line string) string {
	return s.lower.String(strings.TrimSpace(line))
}

// eval evaluates one line of expressions and renders the result or the
// error.
func (s *session) eval(line string) string {
	b, err := s.evalLine(line)
	if err != nil {
		return s.report(line, err)
	}
	return s.render(b)
}

func (s *session) evalLine(line string) (*pensieve.Batch, error) {
	start := time.Now()
	b, err := pensieve.EvalLine(line, s.g, pensieve.Prec(s.prec))
	if err != nil {
		return nil, err
	}
	postfix := make([]string, len(b.Results))
	for i, r := range b.Results {
		postfix[i] = r.Expr.String()
	}
	s.log.Debug("evaluated",
		zap.String("mode", s.g.Name()),
		zap.String("line", line),
		zap.Strings("postfix", postfix),
		zap.Strings("vars", b.Vars),
		zap.Duration("took", time.Since(start)),
	)
	return b, nil
}

// render draws the results of a line: values in arith mode, truth tables in
// logic mode.
func (s *session) render(b *pensieve.Batch) string {
	var out strings.Builder
	for i, r := range b.Results {
		if i > 0 {
			out.WriteByte('\n')
		}
		if s.debug {
			out.WriteString(s.pal.debug.Sprint("postfix:\t"+r.Expr.String()) + "\n")
			out.WriteString(s.pal.debug.Sprint("variables:\t"+strings.Join(r.Expr.Vars(), " ")) + "\n")
		}
		if r.Value != nil {
			out.WriteString(s.pal.value.Sprintf(s.format, r.Value))
			continue
		}
		out.WriteString(renderTable(r.Table, r.Expr.Infix(), s.pal))
		switch r.Table.Class() {
		case pensieve.Tautology:
			out.WriteString("\n" + s.pal.value.Sprint("tautology"))
		case pensieve.Contradiction:
			out.WriteString("\n" + s.pal.value.Sprint("contradiction"))
		}
	}
	if len(b.Results) > 1 {
		if b.Equivalent {
			out.WriteString("\n" + s.pal.value.Sprint("equivalent"))
		} else {
			out.WriteString("\n" + s.pal.value.Sprint("not equivalent"))
		}
	}
	return out.String()
}

// report renders an evaluation error. Input errors get a caret diagnostic;
// errors that indicate a bug are also logged.
func (s *session) report(line string, err error) string {
	var out strings.Builder
	mark := func(caret string) string { return s.pal.errc.Sprint(caret) }
	if werr := pensieve.WriteDiagnostic(&out, line, err, mark); werr == nil {
		return strings.TrimSuffix(out.String(), "\n")
	}
	var derr *pensieve.DomainError
	if errors.As(err, &derr) {
		return s.pal.errc.Sprint("error: " + err.Error())
	}
	s.log.Error("evaluation failed", zap.String("mode", s.g.Name()), zap.String("line", line), zap.Error(err))
	return s.pal.errc.Sprint("internal error: " + err.Error())
}
