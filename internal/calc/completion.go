package calc

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Completions returns candidate names for prefix: functions (canonical names
// and identifier aliases), constants and variables. Names starting with prefix
// come first in lexical order, followed by fuzzy matches by score.
func (s *State) Completions(prefix string) []string {
	if prefix == "" {
		return nil
	}

	names := s.completionNames()
	var out []string
	seen := make(map[string]bool)
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
			seen[name] = true
		}
	}
	for _, m := range fuzzy.Find(prefix, names) {
		if !seen[m.Str] {
			out = append(out, m.Str)
			seen[m.Str] = true
		}
	}
	return out
}

func (s *State) completionNames() []string {
	set := make(map[string]struct{})
	for _, key := range s.registry.Keys() {
		if identifierRe.MatchString(key) {
			set[key] = struct{}{}
		}
	}
	for name := range s.constants {
		set[name] = struct{}{}
	}
	for name := range s.variables {
		set[name] = struct{}{}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
