// Package tui is the interactive prompt: a single line editor with a
// completion menu, running each entered line against the session.
package tui

import (
	"strings"

	"github.com/bastiangx/hprompt/pkg/lexer"
	"github.com/bastiangx/hprompt/pkg/server"
	"github.com/bastiangx/hprompt/pkg/session"
	"github.com/bastiangx/hprompt/pkg/suggest"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	sPrompt  = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	sErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	sItem    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	sItemSel = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	sMeta    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sBar     = lipgloss.NewStyle().Faint(true)
)

// Options configure the prompt.
type Options struct {
	// Style is the chroma style for echoed lines; empty disables highlighting.
	Style string
	// MenuHeight is the number of completions shown at once.
	MenuHeight int
	// Limit caps the completions fetched per keystroke, zero for all.
	Limit int
	// HistoryPath persists entered lines; empty keeps history in memory.
	HistoryPath string
}

// Model is the bubbletea model of the prompt.
type Model struct {
	ctx       *session.Context
	completer suggest.ICompleter
	executor  server.Executor
	opts      Options

	input    textinput.Model
	comps    []suggest.Completion
	selected int
	hidden   bool

	history []string
	histIdx int
	histBuf string
}

// New creates the prompt model over the session ctx.
func New(ctx *session.Context, completer suggest.ICompleter, executor server.Executor, opts Options) Model {
	if opts.MenuHeight < 1 {
		opts.MenuHeight = 8
	}
	history := loadHistory(opts.HistoryPath)
	opts.HistoryPath = historyFile(opts.HistoryPath)
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.Focus()

	m := Model{
		ctx:       ctx,
		completer: completer,
		executor:  executor,
		opts:      opts,
		input:     ti,
		histIdx:   -1,
		history:   history,
	}
	m.refresh()
	return m
}

// Run starts the prompt and blocks until the session ends.
func Run(m Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC:
			saveHistory(m.opts.HistoryPath, m.history)
			return m, tea.Quit
		case tea.KeyCtrlD:
			if m.input.Value() == "" {
				saveHistory(m.opts.HistoryPath, m.history)
				return m, tea.Quit
			}
		case tea.KeyEsc:
			m.hidden = true
			return m, nil
		case tea.KeyTab:
			m.accept()
			return m, nil
		case tea.KeyUp:
			if m.menuVisible() {
				m.selected = (m.selected - 1 + len(m.comps)) % len(m.comps)
			} else {
				m.historyBack()
			}
			return m, nil
		case tea.KeyDown:
			if m.menuVisible() {
				m.selected = (m.selected + 1) % len(m.comps)
			} else {
				m.historyForward()
			}
			return m, nil
		case tea.KeyEnter:
			return m.enter()
		}
	}

	prev, pos := m.input.Value(), m.input.Position()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev || m.input.Position() != pos {
		m.hidden = false
		m.refresh()
	}
	return m, cmd
}

// beforeCursor is the text the completer sees.
func (m Model) beforeCursor() string {
	runes := []rune(m.input.Value())
	return string(runes[:min(m.input.Position(), len(runes))])
}

// refresh recomputes the menu. An empty line shows no menu.
func (m *Model) refresh() {
	m.selected = 0
	text := m.beforeCursor()
	if strings.TrimSpace(m.input.Value()) == "" {
		m.comps = nil
		return
	}
	m.comps = m.completer.Suggest(text, m.opts.Limit)
}

func (m Model) menuVisible() bool {
	return !m.hidden && len(m.comps) > 0
}

// accept replaces the partial word before the cursor with the selected completion.
func (m *Model) accept() {
	if !m.menuVisible() {
		return
	}
	comp := m.comps[m.selected]
	runes := []rune(m.input.Value())
	pos := min(m.input.Position(), len(runes))
	start := max(pos+comp.StartPosition, 0)

	var b strings.Builder
	b.WriteString(string(runes[:start]))
	b.WriteString(comp.Text)
	b.WriteString(string(runes[pos:]))
	m.input.SetValue(b.String())
	m.input.SetCursor(start + len([]rune(comp.Text)))
	m.refresh()
}

func (m Model) enter() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.histIdx = -1
	m.histBuf = ""
	m.hidden = false

	if line == "" {
		m.refresh()
		return m, nil
	}
	if len(m.history) == 0 || m.history[len(m.history)-1] != line {
		m.history = append(m.history, line)
	}

	cmds := []tea.Cmd{tea.Println(m.prompt() + m.echo(line))}
	res, err := m.executor.Execute(line)
	switch {
	case err != nil:
		cmds = append(cmds, tea.Println(sErr.Render(err.Error())))
	case res.Clear:
		cmds = append(cmds, tea.ClearScreen)
	case res.Output != "":
		cmds = append(cmds, tea.Println(res.Output))
	}
	if res.Exit {
		saveHistory(m.opts.HistoryPath, m.history)
		cmds = append(cmds, tea.Quit)
	}
	m.refresh()
	return m, tea.Sequence(cmds...)
}

func (m Model) echo(line string) string {
	if m.opts.Style == "" {
		return line
	}
	return strings.TrimSuffix(lexer.HighlightString(line, m.opts.Style), "\n")
}

func (m Model) prompt() string {
	return sPrompt.Render(m.ctx.URL + "> ")
}

func (m *Model) historyBack() {
	if len(m.history) == 0 {
		return
	}
	if m.histIdx == -1 {
		m.histBuf = m.input.Value()
		m.histIdx = len(m.history) - 1
	} else if m.histIdx > 0 {
		m.histIdx--
	}
	m.input.SetValue(m.history[m.histIdx])
	m.input.CursorEnd()
	m.hidden = true
}

func (m *Model) historyForward() {
	if m.histIdx == -1 {
		return
	}
	if m.histIdx < len(m.history)-1 {
		m.histIdx++
		m.input.SetValue(m.history[m.histIdx])
	} else {
		m.histIdx = -1
		m.input.SetValue(m.histBuf)
	}
	m.input.CursorEnd()
	m.hidden = true
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.prompt())
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if !m.menuVisible() {
		b.WriteString(sBar.Render("tab: complete  enter: run  ctrl+d: quit"))
		return b.String()
	}

	first, last := menuWindow(m.selected, len(m.comps), m.opts.MenuHeight)
	width := 0
	for _, c := range m.comps[first:last] {
		width = max(width, lipgloss.Width(c.Text))
	}
	for i := first; i < last; i++ {
		c := m.comps[i]
		item := " " + c.Text + strings.Repeat(" ", width-lipgloss.Width(c.Text)) + " "
		if i == m.selected {
			b.WriteString(sItemSel.Render(item))
		} else {
			b.WriteString(sItem.Render(item))
		}
		b.WriteString(" " + sMeta.Render(c.DisplayMeta))
		if i < last-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// menuWindow returns the visible slice bounds keeping selected in view.
func menuWindow(selected, total, height int) (int, int) {
	if total <= height {
		return 0, total
	}
	first := max(selected-height+1, 0)
	return first, first + height
}
