package tui

import "unicode"

// completionStart returns the offset of the identifier being typed at the end
// of input.
func completionStart(input string) int {
	runes := []rune(input)
	i := len(runes)
	for i > 0 {
		r := runes[i-1]
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			break
		}
		i--
	}
	// identifiers start with a letter
	for i < len(runes) && !unicode.IsLetter(runes[i]) {
		i++
	}
	return len(string(runes[:i]))
}

func (m *Model) updateSuggestions() {
	input := m.input.Value()
	start := completionStart(input)

	m.suggestions = m.state.Completions(input[start:])
	m.originalSuggestions = nil
	m.originalInput = ""
	m.tabCycleIndex = -1
}

func (m *Model) clearSuggestions() {
	m.suggestions = nil
	m.originalSuggestions = nil
	m.originalInput = ""
	m.tabCycleIndex = -1
}

// cycleSuggestion replaces the identifier at the end of the prompt with the
// next (direction > 0) or previous completion.
func (m *Model) cycleSuggestion(direction int) {
	if len(m.originalSuggestions) == 0 {
		if len(m.suggestions) == 0 {
			return
		}
		m.originalSuggestions = append([]string(nil), m.suggestions...)
		m.originalInput = m.input.Value()
		m.tabCycleIndex = -1
	}

	n := len(m.originalSuggestions)
	switch {
	case m.tabCycleIndex < 0 && direction >= 0:
		m.tabCycleIndex = 0
	case m.tabCycleIndex < 0:
		m.tabCycleIndex = n - 1
	case direction >= 0:
		m.tabCycleIndex = (m.tabCycleIndex + 1) % n
	default:
		m.tabCycleIndex = (m.tabCycleIndex - 1 + n) % n
	}

	base := m.originalInput[:completionStart(m.originalInput)]
	m.input.SetValue(base + m.originalSuggestions[m.tabCycleIndex])
	m.input.CursorEnd()
}
