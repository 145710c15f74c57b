package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// history is the list of lines entered at the prompt, oldest first, with a
// cursor for browsing.
type history struct {
	lines []string
	max   int
	// pos is the index of the line being shown while browsing. len(lines)
	// means the fresh input line.
	pos int
	// draft holds the unfinished input while browsing.
	draft string
}

func newHistory(max int) *history {
	return &history{max: max}
}

// add appends a line and resets browsing. Blank lines and immediate repeats
// are not recorded.
func (h *history) add(line string) {
	defer h.reset()
	line = strings.TrimSpace(line)
	if line == "" || h.max == 0 {
		return
	}
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return
	}
	h.lines = append(h.lines, line)
	if over := len(h.lines) - h.max; over > 0 {
		h.lines = append(h.lines[:0], h.lines[over:]...)
	}
}

func (h *history) reset() {
	h.pos = len(h.lines)
	h.draft = ""
}

// prev moves to the previous line. cur is the current input, saved as the
// draft when browsing starts. ok is false at the oldest line.
func (h *history) prev(cur string) (line string, ok bool) {
	if h.pos == 0 {
		return "", false
	}
	if h.pos == len(h.lines) {
		h.draft = cur
	}
	h.pos--
	return h.lines[h.pos], true
}

// next moves to the next line, ending at the draft. ok is false if not
// browsing.
func (h *history) next() (line string, ok bool) {
	if h.pos >= len(h.lines) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.lines) {
		return h.draft, true
	}
	return h.lines[h.pos], true
}

// load reads history from a file with one entry per line. A missing file is
// not an error.
func (h *history) load(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading history: %w", err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		h.add(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("loading history %s: %w", path, err)
	}
	return nil
}

// save writes history to a file, replacing its contents.
func (h *history) save(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	var b strings.Builder
	for _, line := range h.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}
