package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/pensieve"
)

var evalCmd = &cobra.Command{
	Use:   "eval [line...]",
	Short: "Evaluate lines of expressions and print the results",
	Long: `eval evaluates each argument as one line of input, or each line of stdin
when no arguments are given. In logic mode a line may hold several
comma-separated expressions.`,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

// linePayload is the structured result of one line.
type linePayload struct {
	Line       string        `json:"line" yaml:"line"`
	Mode       string        `json:"mode" yaml:"mode"`
	Exprs      []exprPayload `json:"exprs,omitempty" yaml:"exprs,omitempty"`
	Vars       []string      `json:"vars,omitempty" yaml:"vars,omitempty"`
	Equivalent *bool         `json:"equivalent,omitempty" yaml:"equivalent,omitempty"`
	Error      *errorPayload `json:"error,omitempty" yaml:"error,omitempty"`
}

type exprPayload struct {
	Infix   string   `json:"infix" yaml:"infix"`
	Postfix string   `json:"postfix" yaml:"postfix"`
	Vars    []string `json:"vars,omitempty" yaml:"vars,omitempty"`
	Value   string   `json:"value,omitempty" yaml:"value,omitempty"`
	Results []bool   `json:"results,omitempty" yaml:"results,omitempty"`
	Class   string   `json:"class,omitempty" yaml:"class,omitempty"`
}

type errorPayload struct {
	Message string `json:"message" yaml:"message"`
	// Col is the 1-based column of an input error, or 0.
	Col int `json:"col,omitempty" yaml:"col,omitempty"`
}

var errLinesFailed = errors.New("some lines failed")

func runEval(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "pretty", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json, or yaml)", format)
	}

	e, err := setup(cmd, os.Stdout)
	if err != nil {
		return err
	}
	defer e.Close()

	lines := args
	if len(lines) == 0 {
		lines, err = readLines(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}
	return evalLines(e.s, lines, format, cmd.OutOrStdout())
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

// evalLines evaluates each non-blank line and writes the results in the given
// format. All lines are evaluated even if some fail; errLinesFailed is
// returned afterward.
func evalLines(s *session, lines []string, format string, w io.Writer) error {
	var (
		payloads      []linePayload
		total, failed int
	)
	for _, line := range lines {
		line = s.normalize(line)
		if line == "" {
			continue
		}
		total++
		b, err := s.evalLine(line)
		if err != nil {
			failed++
		}
		switch format {
		case "pretty":
			var out string
			if err != nil {
				out = s.report(line, err)
			} else {
				out = s.render(b)
			}
			if _, err := fmt.Fprintln(w, out); err != nil {
				return err
			}
		default:
			payloads = append(payloads, s.payload(line, b, err))
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payloads); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(payloads); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d: %w", failed, total, errLinesFailed)
	}
	return nil
}

func (s *session) payload(line string, b *pensieve.Batch, err error) linePayload {
	p := linePayload{Line: line, Mode: s.g.Name()}
	if err != nil {
		p.Error = &errorPayload{Message: err.Error()}
		var ierr pensieve.InputError
		if errors.As(err, &ierr) {
			p.Error.Message = ierr.Message()
			p.Error.Col = ierr.Pos()
		}
		return p
	}
	for _, r := range b.Results {
		x := exprPayload{
			Infix:   r.Expr.Infix(),
			Postfix: r.Expr.String(),
			Vars:    r.Expr.Vars(),
		}
		if r.Value != nil {
			x.Value = fmt.Sprintf(s.format, r.Value)
		} else {
			x.Results = r.Table.Results
			x.Class = r.Table.Class().String()
		}
		p.Exprs = append(p.Exprs, x)
	}
	if !b.Grammar.Numeric() {
		p.Vars = b.Vars
		if len(b.Results) > 1 {
			eq := b.Equivalent
			p.Equivalent = &eq
		}
	}
	return p
}
