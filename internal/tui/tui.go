// Package tui is the full-screen terminal front end of the calculator: a
// stack pane, an info pane with the top value in every base, a prompt with
// tab completion and a status line.
package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/codefionn/rpncalc/internal/calc"
	"github.com/codefionn/rpncalc/internal/config"
	"github.com/codefionn/rpncalc/internal/logger"
	"github.com/codefionn/rpncalc/internal/value"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

const (
	errorDisplayDuration = 5 * time.Second
	maxSuggestions       = 6
	defaultWidth         = 80
	defaultHeight        = 24
	// title, prompt, status and key help lines plus both pane borders
	chromeHeight = 8
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			MarginLeft(2)

	fatalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			MarginLeft(2)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1)

	stackIndexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	infoLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Bold(true)

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	selectedSuggestionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Background(lipgloss.Color("238")).
				Bold(true)
)

// ConfigChangedMsg carries a reloaded configuration into the running program.
type ConfigChangedMsg struct {
	Config *config.Config
	Err    error
}

type clearErrorMsg struct{}

type Model struct {
	state    *calc.State
	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	log      *logger.Logger

	width  int
	height int
	ready  bool

	showHelp      bool
	renderer      *glamour.TermRenderer
	rendererWidth int

	suggestions         []string
	originalSuggestions []string
	originalInput       string
	tabCycleIndex       int

	preview    value.Value
	previewOK  bool
	previewErr error

	errorMsg        string
	errorFatal      bool
	errVisibleUntil time.Time
	now             func() time.Time
}

// New creates the UI model around state.
func New(state *calc.State) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "number, expression or function (F1 for help)"
	ti.Focus()

	m := &Model{
		state:         state,
		input:         ti,
		viewport:      viewport.New(defaultWidth, defaultHeight-2),
		help:          help.New(),
		keys:          defaultKeyMap(),
		log:           logger.Global().WithPrefix("tui"),
		width:         defaultWidth,
		height:        defaultHeight,
		tabCycleIndex: -1,
		now:           time.Now,
	}
	m.applyWindowSize(defaultWidth, defaultHeight)
	return m
}

func (m *Model) Init() tea.Cmd {
	initialWindowSize := func() tea.Msg {
		fd := int(os.Stdout.Fd())
		if !term.IsTerminal(fd) {
			return nil
		}
		if width, height, err := term.GetSize(fd); err == nil && width > 0 && height > 0 {
			return tea.WindowSizeMsg{
				Width:  width,
				Height: height,
			}
		}
		return nil
	}

	return tea.Batch(
		textinput.Blink,
		initialWindowSize,
	)
}

func (m *Model) applyWindowSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width = width
	m.height = height
	m.ready = true
	m.input.Width = max(m.contentWidth()-lipgloss.Width(m.input.Prompt)-1, 1)
	m.help.Width = m.contentWidth()
	if m.showHelp {
		m.renderHelp()
	}
}

func (m *Model) contentWidth() int {
	return max(m.width-2, 1)
}

func (m *Model) setError(err error) tea.Cmd {
	m.errorMsg = err.Error()
	m.errorFatal = calc.IsFatal(err)
	m.errVisibleUntil = m.now().Add(errorDisplayDuration)
	return tea.Tick(errorDisplayDuration, func(time.Time) tea.Msg { return clearErrorMsg{} })
}

func (m *Model) errorVisible() bool {
	return m.errorMsg != "" && m.now().Before(m.errVisibleUntil)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.applyWindowSize(msg.Width, msg.Height)
		return m, nil

	case clearErrorMsg:
		if !m.errorVisible() {
			m.errorMsg = ""
			m.errorFatal = false
		}
		return m, nil

	case ConfigChangedMsg:
		// Load returns a normalized config together with validation errors
		if msg.Config != nil {
			m.state.SetDisplay(msg.Config.Precision, msg.Config.ScientificNotationLimit, msg.Config.LocaleTag())
			m.log.SetLevel(msg.Config.Level())
			m.log.Info("display settings reloaded")
			if m.showHelp {
				m.renderHelp()
			}
		}
		if msg.Err != nil {
			m.log.Warn("config reload: %v", msg.Err)
			return m, m.setError(fmt.Errorf("config: %w", msg.Err))
		}
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			return m.updateHelp(msg)
		}
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Help):
		m.showHelp = false
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	empty := m.input.Value() == ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.openHelp()
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		return m, m.afterAction(m.state.Undo())

	case key.Matches(msg, m.keys.Redo):
		return m, m.afterAction(m.state.Redo())

	case key.Matches(msg, m.keys.Complete):
		m.cycleSuggestion(1)
		m.refreshPreview()
		return m, nil

	case key.Matches(msg, m.keys.Previous):
		m.cycleSuggestion(-1)
		m.refreshPreview()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Drop) && empty:
		return m, m.afterAction(m.state.Pop())

	case msg.Type == tea.KeyEsc:
		m.input.Reset()
		m.clearSuggestions()
		m.refreshPreview()
		return m, nil

	case empty && msg.Type == tea.KeyRunes && !msg.Paste && operatorKeys[string(msg.Runes)]:
		return m, m.afterAction(m.state.PushInput(string(msg.Runes)))
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.updateSuggestions()
		m.refreshPreview()
	}
	return m, cmd
}

// afterAction reports err, if any, and refreshes everything derived from the
// stack.
func (m *Model) afterAction(err error) tea.Cmd {
	m.refreshPreview()
	if err == nil {
		return nil
	}
	return m.setError(err)
}

func isCommandWord(line string) bool {
	switch line {
	case "undo", "redo", "help", "?", "exit", "quit":
		return true
	}
	return false
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())

	var err error
	switch line {
	case "":
		return m, nil
	case "exit", "quit":
		return m, tea.Quit
	case "help", "?":
		m.resetInput()
		m.openHelp()
		return m, nil
	case "undo":
		err = m.state.Undo()
	case "redo":
		err = m.state.Redo()
	default:
		err = m.state.PushInput(line)
	}

	if err != nil {
		// keep the line so it can be corrected
		return m, m.afterAction(err)
	}
	m.resetInput()
	m.errorMsg = ""
	m.errorFatal = false
	return m, m.afterAction(nil)
}

func (m *Model) resetInput() {
	m.input.Reset()
	m.clearSuggestions()
}

func (m *Model) View() string {
	if m.showHelp {
		return m.helpView()
	}

	info := m.infoLines()
	infoHeight := max(len(info), 1)
	stackHeight := max(m.height-chromeHeight-infoHeight, 1)

	var sb strings.Builder
	sb.WriteString(m.renderFooter(titleStyle.Render("rpncalc"), m.renderModes()))
	sb.WriteString("\n")
	sb.WriteString(m.renderStack(stackHeight))
	sb.WriteString("\n")
	sb.WriteString(paneStyle.Width(m.contentWidth() - 2).Render(strings.Join(info, "\n")))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(m.renderStatus())
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return sb.String()
}

func (m *Model) renderModes() string {
	cursor, length := m.state.History()
	right := fmt.Sprintf("%s %s", m.state.AngleMode(), baseLabel(m.state.DisplayBase()))
	history := stackIndexStyle.Render(fmt.Sprintf("%d/%d", cursor, length))
	return history + " " + modeStyle.Render(right)
}

// renderStack draws the newest height items, top of stack last and labelled 1.
func (m *Model) renderStack(height int) string {
	items := m.state.Stack()
	inner := max(m.contentWidth()-4, 1)

	lines := make([]string, 0, height)
	for i := max(len(items)-height, 0); i < len(items); i++ {
		label := stackIndexStyle.Render(fmt.Sprintf("%d:", len(items)-i))
		text := m.state.Format(items[i])
		room := inner - lipgloss.Width(label) - 1
		if lipgloss.Width(text) > room {
			text = truncate.StringWithTail(text, uint(max(room, 1)), "…")
		}
		pad := max(inner-lipgloss.Width(label)-lipgloss.Width(text), 1)
		lines = append(lines, label+strings.Repeat(" ", pad)+text)
	}
	for len(lines) < height {
		lines = append([]string{""}, lines...)
	}
	return paneStyle.Width(m.contentWidth() - 2).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderStatus() string {
	if m.errorVisible() {
		text := wordwrap.String(m.errorMsg, m.contentWidth()-2)
		if m.errorFatal {
			return fatalStyle.Render(text)
		}
		return errorStyle.Render(text)
	}
	return m.renderFooter(m.renderSuggestions(), "")
}

func (m *Model) renderSuggestions() string {
	list := m.suggestions
	selected := -1
	if len(m.originalSuggestions) > 0 {
		list = m.originalSuggestions
		selected = m.tabCycleIndex
	}
	if len(list) == 0 {
		return ""
	}

	start := 0
	if selected >= maxSuggestions {
		start = selected - maxSuggestions + 1
	}
	end := min(start+maxSuggestions, len(list))

	parts := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		if i == selected {
			parts = append(parts, selectedSuggestionStyle.Render(list[i]))
		} else {
			parts = append(parts, suggestionStyle.Render(list[i]))
		}
	}
	if end < len(list) {
		parts = append(parts, suggestionStyle.Render(fmt.Sprintf("+%d", len(list)-end)))
	}
	return statusStyle.Render(strings.Join(parts, " "))
}

func (m *Model) renderFooter(left, right string) string {
	width := m.contentWidth()
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	space := width - leftWidth - rightWidth
	if space < 1 {
		space = 1
	}

	return left + strings.Repeat(" ", space) + right
}

// ErrorText returns the error currently shown on the status line.
func (m *Model) ErrorText() string {
	if !m.errorVisible() {
		return ""
	}
	return m.errorMsg
}

var _ tea.Model = (*Model)(nil)
