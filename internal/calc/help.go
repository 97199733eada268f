package calc

import (
	"fmt"
	"strings"
)

// HelpMarkdown renders a reference of every function, constant and bound
// variable as markdown tables.
func (s *State) HelpMarkdown() string {
	var sb strings.Builder

	sb.WriteString("# Functions\n\n")
	sb.WriteString("| Name | Aliases | Description |\n")
	sb.WriteString("|------|---------|-------------|\n")
	for _, f := range s.registry.Functions() {
		aliases := make([]string, len(f.Aliases()))
		for i, a := range f.Aliases() {
			aliases[i] = code(a)
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", code(f.Name()), strings.Join(aliases, " "), cell(f.Description()))
	}

	sb.WriteString("\n# Constants\n\n")
	sb.WriteString("| Name | Value | Description |\n")
	sb.WriteString("|------|-------|-------------|\n")
	for _, c := range s.Constants() {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", code(c.Name), cell(s.Format(c.Value)), cell(c.Description))
	}

	if names := s.VariableNames(); len(names) > 0 {
		sb.WriteString("\n# Variables\n\n")
		sb.WriteString("| Name | Value |\n")
		sb.WriteString("|------|-------|\n")
		for _, name := range names {
			fmt.Fprintf(&sb, "| %s | %s |\n", code(name), cell(s.Format(s.variables[name])))
		}
	}

	return sb.String()
}

func code(s string) string { return "`" + s + "`" }

func cell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }
