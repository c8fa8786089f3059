package repl

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/debuglog/log"
)

const (
	prompt       = "➜ "
	defaultWidth = 80
)

// Styles.
var (
	promptStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	currentParamStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// model is the Bubble Tea model for the REPL.
type model struct {
	input   textinput.Model
	eval    *evaluator
	history *History
	histIdx int

	matches    fuzzy.Matches
	wordStart  int
	wordEnd    int
	selected   int    // index into matches while tab-cycling, else -1
	preTabText string // input before tab-cycling began
	preTabPos  int

	width    int
	quitting bool
}

// Run starts an interactive session that logs each expression result
// through r at level. History is kept in cacheDir when it is non-empty.
func Run(ctx context.Context, r *log.Router, level log.Level, cacheDir string) error {
	var path string
	if cacheDir != "" {
		path = filepath.Join(cacheDir, baseHistory)
	}

	history := NewHistory(path)
	if err := history.Load(); err != nil {
		r.Warn("could not load history:", err)
	}

	p := tea.NewProgram(newModel(r, level, history), tea.WithContext(ctx))
	_, err := p.Run()

	return err
}

func newModel(r *log.Router, level log.Level, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		input:    ti,
		eval:     newEvaluator(r, level),
		history:  history,
		histIdx:  history.Len(),
		selected: -1,
		width:    defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n" + m.hint() + "\n"
}

// hint renders the line below the input: a signature while typing call
// arguments, otherwise the completion bar or usage text.
func (m model) hint() string {
	input := m.input.Value()

	switch {
	case m.histIdx < m.history.Len():
		return hintStyle.Render(strconv.Itoa(m.histIdx+1) + "/" + strconv.Itoa(m.history.Len()))

	case strings.TrimSpace(input) == "":
		return hintStyle.Render("Type an expression, or " + commandPrefix + "help")
	}

	if c, ok := callAt(input, m.input.Position()); ok && m.selected < 0 {
		if params, ok := signature(c.name); ok {
			return renderSignature(c.name, params, c.arg)
		}
	}

	return renderCandidates(m.matches, m.selected, m.width)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			return m.quit()
		}

		m.input.SetValue("")
		m.histIdx = m.history.Len()
		m.refresh()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			return m.quit()
		}

		return m, nil

	case tea.KeyEnter:
		if m.selected >= 0 {
			m.selected = -1
			m.refresh()

			return m, nil
		}

		return m.submit()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.browse(-1), nil

	case tea.KeyDown:
		return m.browse(1), nil

	case tea.KeyEsc:
		if m.selected >= 0 {
			m.selected = -1
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabPos)
			m.refresh()
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.selected = -1
	m.histIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh()

	return m, cmd
}

func (m model) quit() (model, tea.Cmd) {
	m.quitting = true

	return m, tea.Quit
}

// submit evaluates or executes the input line and prints the outcome above
// the prompt.
func (m model) submit() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	var out []tea.Cmd

	if err := m.history.Add(line); err != nil {
		out = append(out, tea.Println(errorStyle.Render("history: "+err.Error())))
	}

	m.histIdx = m.history.Len()

	out = append(out, tea.Println(promptStyle.Render(prompt)+line))

	if rest, ok := strings.CutPrefix(line, commandPrefix); ok {
		if strings.TrimSpace(rest) == "clear" {
			return m, tea.Sequence(append(out, tea.ClearScreen)...)
		}

		text, quit, err := m.eval.command(rest)

		switch {
		case err != nil:
			out = append(out, tea.Println(errorStyle.Render(err.Error())))
		case text != "":
			out = append(out, tea.Println(text))
		}

		if quit {
			m.quitting = true
			out = append(out, tea.Quit)
		}

		return m, tea.Sequence(out...)
	}

	text, err := m.eval.evaluate(line)

	switch {
	case err != nil:
		out = append(out, tea.Println(errorStyle.Render(err.Error())))
	case text == "":
		out = append(out, tea.Println(hintStyle.Render("(not admitted at "+m.eval.level.String()+")")))
	default:
		out = append(out, tea.Println(text))
	}

	return m, tea.Sequence(out...)
}

// cycle moves the completion selection by step, replacing the word under
// the cursor with the selected candidate. A lone candidate is accepted
// outright.
func (m model) cycle(step int) model {
	if len(m.matches) == 0 {
		return m
	}

	if len(m.matches) == 1 {
		m.replaceWord(m.matches[0].Str)
		m.selected = -1
		m.matches = nil

		return m
	}

	if m.selected < 0 {
		m.preTabText = m.input.Value()
		m.preTabPos = m.input.Position()

		if step > 0 {
			m.selected = 0
		} else {
			m.selected = len(m.matches) - 1
		}
	} else {
		m.selected = (m.selected + step + len(m.matches)) % len(m.matches)
	}

	m.replaceWord(m.matches[m.selected].Str)

	return m
}

// browse moves through history by step. Moving past the newest entry
// clears the input.
func (m model) browse(step int) model {
	idx := m.histIdx + step
	if idx < 0 || idx > m.history.Len() {
		return m
	}

	m.selected = -1

	if line, err := m.history.At(idx); err == nil {
		m.histIdx = idx
		m.input.SetValue(line)
		m.input.SetCursor(len(line))
	} else {
		m.histIdx = m.history.Len()
		m.input.SetValue("")
	}

	m.refresh()

	return m
}

func (m *model) replaceWord(s string) {
	input := m.input.Value()
	m.input.SetValue(input[:m.wordStart] + s + input[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(s))
	m.wordEnd = m.wordStart + len(s)
}

// refresh recomputes completions for the current input.
func (m *model) refresh() {
	m.matches, m.wordStart, m.wordEnd = complete(m.input.Value(), m.input.Position())
}
