package main

import (
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const banner = "exit OR quit OR /q OR ctrl+d on an empty line to exit"

// repl is the interactive prompt. Results are printed above the input line
// so that they stay in the terminal's scrollback.
type repl struct {
	s    *session
	hist *history
	in   textinput.Model
	// done is set once the session has ended.
	done bool
}

func newREPL(s *session, hist *history) repl {
	in := textinput.New()
	in.Prompt = "pensieve > "
	if s.pal.on {
		in.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	}
	in.ShowSuggestions = true
	in.SetSuggestions(commands)
	in.Focus()
	return repl{s: s, hist: hist, in: in}
}

func (m repl) Init() tea.Cmd {
	return tea.Sequence(tea.Println(m.s.pal.note.Sprint(banner)), textinput.Blink)
}

func (m repl) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.in, cmd = m.in.Update(msg)
		return m, cmd
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		// Blank lines are ignored, so an empty prompt ends the session only
		// through ctrl+d.
		if key.Type == tea.KeyCtrlD && m.in.Value() != "" {
			break
		}
		m.done = true
		return m, tea.Sequence(tea.Println(m.s.pal.note.Sprint("bye")), tea.Quit)
	case tea.KeyUp:
		if line, ok := m.hist.prev(m.in.Value()); ok {
			m.in.SetValue(line)
			m.in.CursorEnd()
		}
		return m, nil
	case tea.KeyDown:
		if line, ok := m.hist.next(); ok {
			m.in.SetValue(line)
			m.in.CursorEnd()
		}
		return m, nil
	case tea.KeyEnter:
		line := m.in.Value()
		m.in.Reset()
		m.hist.add(line)
		out, quit := m.s.handle(line)
		cmds := []tea.Cmd{tea.Println(m.in.Prompt + line)}
		if out != "" {
			cmds = append(cmds, tea.Println(out))
		}
		if quit {
			m.done = true
			cmds = append(cmds, tea.Quit)
		}
		return m, tea.Sequence(cmds...)
	}
	var cmd tea.Cmd
	m.in, cmd = m.in.Update(msg)
	return m, cmd
}

func (m repl) View() string {
	return m.in.View()
}

// runREPL runs the interactive prompt until the user quits, then saves the
// history.
func runREPL(s *session, cfg historyConfig, in io.Reader, out io.Writer) error {
	hist := newHistory(cfg.Max)
	if err := hist.load(cfg.File); err != nil {
		s.log.Warn("history not loaded", zap.String("file", cfg.File), zap.Error(err))
	}
	hist.reset()
	p := tea.NewProgram(newREPL(s, hist), tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	if serr := hist.save(cfg.File); serr != nil {
		s.log.Warn("history not saved", zap.String("file", cfg.File), zap.Error(serr))
	}
	return err
}
