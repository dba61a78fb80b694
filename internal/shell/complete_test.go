package shell

import (
	"bytes"
	"testing"

	"go.starlark.net/starlark"
)

func testCompleter(env starlark.StringDict) *completer {
	var out, errOut bytes.Buffer
	s := newSession(env, nil, Options{NoColors: true}, &out, &errOut)
	return &completer{s: s}
}

func suffixes(candidates [][]rune) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = string(c)
	}
	return out
}

func TestCompleteSessionNames(t *testing.T) {
	c := testCompleter(starlark.StringDict{
		"greeting": starlark.String("hi"),
		"grid":     starlark.MakeInt(1),
		"other":    starlark.MakeInt(2),
	})

	line := []rune("gr")
	candidates, length := c.Do(line, len(line))
	if length != 2 {
		t.Errorf("length = %d, want 2", length)
	}

	got := suffixes(candidates)
	want := map[string]bool{"eeting": true, "id": true}
	if len(got) != len(want) {
		t.Fatalf("candidates = %v, want suffixes of greeting and grid", got)
	}
	for _, s := range got {
		if !want[s] {
			t.Errorf("unexpected candidate %q", s)
		}
	}
}

func TestCompleteUniverseBuiltins(t *testing.T) {
	c := testCompleter(nil)

	line := []rune("le")
	candidates, _ := c.Do(line, len(line))

	found := false
	for _, s := range suffixes(candidates) {
		if s == "n" {
			found = true
		}
	}
	if !found {
		t.Errorf("candidates %v do not complete len", suffixes(candidates))
	}
}

func TestCompleteKeywords(t *testing.T) {
	c := testCompleter(nil)

	line := []rune("lam")
	candidates, _ := c.Do(line, len(line))

	found := false
	for _, s := range suffixes(candidates) {
		if s == "bda" {
			found = true
		}
	}
	if !found {
		t.Errorf("candidates %v do not complete lambda", suffixes(candidates))
	}
}

func TestCompleteEmptyPrefix(t *testing.T) {
	c := testCompleter(nil)

	candidates, length := c.Do([]rune(""), 0)
	if candidates != nil || length != 0 {
		t.Errorf("Do() = %v, %d, want nil, 0", candidates, length)
	}
}

func TestCompleteMidLineIdentifier(t *testing.T) {
	c := testCompleter(starlark.StringDict{"value": starlark.MakeInt(1)})

	line := []rune("x = val")
	candidates, length := c.Do(line, len(line))
	if length != 3 {
		t.Errorf("length = %d, want 3", length)
	}

	found := false
	for _, s := range suffixes(candidates) {
		if s == "ue" {
			found = true
		}
	}
	if !found {
		t.Errorf("candidates %v do not complete value", suffixes(candidates))
	}
}

func TestCompleteExactMatchExcluded(t *testing.T) {
	c := testCompleter(starlark.StringDict{"x": starlark.MakeInt(1)})

	line := []rune("x")
	for _, s := range suffixes(first(c.Do(line, len(line)))) {
		if s == "" {
			t.Error("exact match offered as a candidate")
		}
	}
}

func first(candidates [][]rune, _ int) [][]rune { return candidates }
