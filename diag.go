package pensieve

import (
	"errors"
	"io"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Diagnostic formats an input error as two lines: the source, then a caret
// under the offending column followed by the message. ok is false if err is
// not an InputError.
func Diagnostic(src string, err error) (diag string, ok bool) {
	echo, caret, ok := diagnosticLines(src, err)
	if !ok {
		return "", false
	}
	return echo + "\n" + caret, true
}

// WriteDiagnostic writes the diagnostic for err to w. The caret line is
// passed through mark, which may be nil, e.g. to color it. If err is not an
// InputError, WriteDiagnostic writes nothing and returns err.
func WriteDiagnostic(w io.Writer, src string, err error, mark func(string) string) error {
	echo, caret, ok := diagnosticLines(src, err)
	if !ok {
		return err
	}
	if mark != nil {
		caret = mark(caret)
	}
	_, werr := io.WriteString(w, echo+"\n"+caret+"\n")
	return werr
}

func diagnosticLines(src string, err error) (echo, caret string, ok bool) {
	var ierr InputError
	if !errors.As(err, &ierr) {
		return "", "", false
	}
	// Pad to the display width of everything before the error so that the
	// caret lines up under wide characters too. Whitespace is kept as is so
	// that tabs expand the same way in both lines.
	r := []rune(src)
	n := min(max(ierr.Pos()-1, 0), len(r))
	var pad strings.Builder
	for _, c := range r[:n] {
		if unicode.IsSpace(c) {
			pad.WriteRune(c)
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(c)))
	}
	return src, pad.String() + "^ " + ierr.Message(), true
}
