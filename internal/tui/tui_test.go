package tui

import (
	"bytes"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/codefionn/rpncalc/internal/calc"
	"github.com/codefionn/rpncalc/internal/config"
	"github.com/codefionn/rpncalc/internal/logger"
	"github.com/codefionn/rpncalc/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := New(calc.New())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func enter(m *Model, line string) {
	typeText(m, line)
	press(m, tea.KeyEnter)
}

func numbers(t *testing.T, m *Model) []float64 {
	t.Helper()
	var out []float64
	for _, v := range m.state.Stack() {
		f, ok := v.Float()
		require.True(t, ok, "not a number: %#v", v)
		out = append(out, f)
	}
	return out
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestEnterPushesInput(t *testing.T) {
	m := newTestModel(t)
	enter(m, "1")
	enter(m, "2")
	enter(m, "3 * 4")

	assert.Equal(t, []float64{1, 2, 12}, numbers(t, m))
	assert.Empty(t, m.input.Value())
}

func TestOperatorKeyOnEmptyPrompt(t *testing.T) {
	m := newTestModel(t)
	enter(m, "6")
	enter(m, "7")
	typeText(m, "*")

	assert.Equal(t, []float64{42}, numbers(t, m))
	assert.Empty(t, m.input.Value())

	// with text in the prompt the operator is just typed
	typeText(m, "2-")
	assert.Equal(t, "2-", m.input.Value())
	assert.Equal(t, []float64{42}, numbers(t, m))
}

func TestBackspaceOnEmptyPromptDrops(t *testing.T) {
	m := newTestModel(t)
	enter(m, "1")
	enter(m, "2")

	typeText(m, "3")
	press(m, tea.KeyBackspace)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, []float64{1, 2}, numbers(t, m), "backspace edits a non-empty prompt")

	press(m, tea.KeyBackspace)
	assert.Equal(t, []float64{1}, numbers(t, m))

	press(m, tea.KeyCtrlZ)
	assert.Equal(t, []float64{1, 2}, numbers(t, m))
}

func TestUndoRedoKeysAndWords(t *testing.T) {
	m := newTestModel(t)
	enter(m, "1")
	enter(m, "2")
	enter(m, "+")
	require.Equal(t, []float64{3}, numbers(t, m))

	press(m, tea.KeyCtrlZ)
	assert.Equal(t, []float64{1, 2}, numbers(t, m))
	press(m, tea.KeyCtrlY)
	assert.Equal(t, []float64{3}, numbers(t, m))

	enter(m, "undo")
	assert.Equal(t, []float64{1, 2}, numbers(t, m))
	enter(m, "redo")
	assert.Equal(t, []float64{3}, numbers(t, m))

	press(m, tea.KeyCtrlY)
	assert.Equal(t, calc.ErrNothingToRedo.Error(), m.ErrorText())
}

func TestFailedInputIsKeptAndReported(t *testing.T) {
	m := newTestModel(t)
	enter(m, "1 +")

	assert.Equal(t, "1 +", m.input.Value())
	assert.NotEmpty(t, m.ErrorText())
	assert.Empty(t, m.state.Stack())

	press(m, tea.KeyEsc)
	assert.Empty(t, m.input.Value())
}

func TestErrorExpires(t *testing.T) {
	m := newTestModel(t)
	now := time.Now()
	m.now = func() time.Time { return now }

	cmd := press(m, tea.KeyBackspace)
	require.NotNil(t, cmd)
	assert.Contains(t, m.ErrorText(), "not enough arguments")

	now = now.Add(errorDisplayDuration + time.Second)
	m.Update(clearErrorMsg{})
	assert.Empty(t, m.ErrorText())
	assert.Empty(t, m.errorMsg)
}

func TestNewerErrorSurvivesOlderTick(t *testing.T) {
	m := newTestModel(t)
	now := time.Now()
	m.now = func() time.Time { return now }

	press(m, tea.KeyBackspace)
	now = now.Add(errorDisplayDuration - time.Second)
	press(m, tea.KeyCtrlZ)

	// the tick of the first error arrives while the second is fresh
	now = now.Add(2 * time.Second)
	m.Update(clearErrorMsg{})
	assert.Equal(t, calc.ErrNothingToUndo.Error(), m.ErrorText())
}

func TestTabCyclesCompletions(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "2 + sq")
	require.Equal(t, []string{"sq", "sqrt"}, m.suggestions[:2])

	press(m, tea.KeyTab)
	assert.Equal(t, "2 + sq", m.input.Value())
	press(m, tea.KeyTab)
	assert.Equal(t, "2 + sqrt", m.input.Value())
	press(m, tea.KeyShiftTab)
	assert.Equal(t, "2 + sq", m.input.Value())

	typeText(m, "(9)")
	enter(m, "")
	assert.Equal(t, []float64{83}, numbers(t, m))
}

func TestCompletionStart(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"sin", 0},
		{"2 + co", 4},
		{"sqrt(ab", 5},
		{"12", 2},
		{"x1", 0},
		{"1x", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, completionStart(tt.input), tt.input)
	}
}

func TestInfoPaneShowsBases(t *testing.T) {
	m := newTestModel(t)
	enter(m, "255")

	view := m.View()
	assert.Contains(t, view, "ff")
	assert.Contains(t, view, "377")
	assert.Contains(t, view, "1111 1111")
	assert.Contains(t, view, "DEG DEC")
}

func TestInfoPanePreview(t *testing.T) {
	m := newTestModel(t)
	enter(m, "1")
	typeText(m, "sq(4)")

	require.True(t, m.previewOK)
	f, _ := m.preview.Float()
	assert.Equal(t, 16.0, f)
	assert.Equal(t, []float64{1}, numbers(t, m), "preview leaves the stack untouched")

	enter(m, "")
	m.input.Reset()
	typeText(m, "1 2")
	lines := m.infoLines()
	require.Len(t, lines, 2)
	assert.Equal(t, "1 2", lines[0])
	assert.Contains(t, lines[1], "^ expected end of input")
}

func TestModeIndicators(t *testing.T) {
	m := newTestModel(t)
	enter(m, "rad")
	enter(m, "hex")
	assert.Contains(t, m.View(), "RAD HEX")
	assert.Equal(t, value.Radians, m.state.AngleMode())
}

func TestHelpScreen(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyF1)
	require.True(t, m.showHelp)
	assert.NotEmpty(t, m.View())

	// keys are routed to the viewport, not the prompt
	typeText(m, "1")
	assert.Empty(t, m.input.Value())

	press(m, tea.KeyEsc)
	assert.False(t, m.showHelp)

	enter(m, "help")
	assert.True(t, m.showHelp)
	typeText(m, "q")
	assert.False(t, m.showHelp)
}

func TestHelpMarkdownListsKeys(t *testing.T) {
	m := newTestModel(t)
	md := m.helpMarkdown()
	assert.Contains(t, md, "# Functions")
	assert.Contains(t, md, "# Keys")
	assert.Contains(t, md, "| `ctrl+z` | undo |")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	assert.True(t, isQuit(press(m, tea.KeyCtrlC)))

	m = newTestModel(t)
	typeText(m, "quit")
	assert.True(t, isQuit(press(m, tea.KeyEnter)))

	m = newTestModel(t)
	typeText(m, "exit")
	assert.True(t, isQuit(press(m, tea.KeyEnter)))
}

func TestConfigChanged(t *testing.T) {
	m := newTestModel(t)
	enter(m, "1234.5")

	cfg := config.DefaultConfig()
	cfg.Locale = "de-DE"
	require.NoError(t, cfg.Validate())
	m.Update(ConfigChangedMsg{Config: cfg})
	assert.Equal(t, "1.234,5", m.state.Format(m.state.Stack()[0]))

	m.Update(ConfigChangedMsg{Err: errors.New("bad json")})
	assert.Equal(t, "config: bad json", m.ErrorText())
}

func TestConfigChangedAppliesLogLevel(t *testing.T) {
	m := newTestModel(t)
	var buf bytes.Buffer
	m.log = logger.NewWriter(logger.LevelError, &buf, "tui")

	cfg := config.DefaultConfig()
	cfg.LogLevel = "debug"
	m.Update(ConfigChangedMsg{Config: cfg})

	assert.Equal(t, logger.LevelDebug, m.log.GetLevel())
	assert.Contains(t, buf.String(), "[INFO] [tui] display settings reloaded")
}

func TestSmallWindowStillRenders(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 10, Height: 5})
	enter(m, "123456789012345")
	assert.NotPanics(t, func() { _ = m.View() })
}
