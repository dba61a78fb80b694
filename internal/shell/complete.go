package shell

import (
	"sort"
	"strings"

	"go.starlark.net/starlark"
)

// Starlark keywords and reserved constants offered alongside the
// session's own names.
var keywords = []string{
	"and", "break", "continue", "def", "elif", "else", "for", "if",
	"in", "lambda", "load", "not", "or", "pass", "return",
	"True", "False", "None",
}

// completer implements readline.AutoCompleter over the session
// namespace, the universe builtins, and the language keywords.
type completer struct {
	s *session
}

// Do returns the suffixes that complete the identifier ending at pos.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && isIdentRune(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	var out [][]rune
	for _, name := range c.names() {
		if strings.HasPrefix(name, prefix) && name != prefix {
			out = append(out, []rune(name[len(prefix):]))
		}
	}
	return out, len(prefix)
}

func (c *completer) names() []string {
	seen := make(map[string]struct{})
	var names []string
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	for name := range c.s.env {
		add(name)
	}
	for name := range starlark.Universe {
		add(name)
	}
	for _, name := range keywords {
		add(name)
	}

	sort.Strings(names)
	return names
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
