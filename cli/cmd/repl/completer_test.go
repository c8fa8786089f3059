package repl

import (
	"slices"
	"testing"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		input  string
		cursor int
		word   string
		start  int
		end    int
	}{
		{"", 0, "", 0, 0},
		{"hex", 3, "hex", 0, 3},
		{"hex", 1, "hex", 0, 3},
		{"[hex, 25", 4, "hex", 1, 4},
		{"path.ca", 7, "ca", 5, 7},
		{"path.", 5, "", 5, 5},
		{"a + b", 2, "", 2, 2},
		{"x", 9, "x", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.word || start != tt.start || end != tt.end {
				t.Errorf("got (%q, %d, %d), want (%q, %d, %d)",
					word, start, end, tt.word, tt.start, tt.end)
			}
		})
	}
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		input     string
		wordStart int
		want      string
	}{
		{"hex", 0, ""},
		{"path.ca", 5, "path"},
		{"x + file.is", 9, "file"},
		{"a.b.c", 4, "a.b"},
		{"1 + x", 4, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parentPath(tt.input, tt.wordStart); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	top := candidates("")

	for _, want := range []string{"hex", "precision", "len", "mung"} {
		if !slices.Contains(top, want) {
			t.Errorf("top-level candidates missing %q", want)
		}
	}

	if !slices.IsSorted(top) {
		t.Error("top-level candidates are not sorted")
	}

	if got := candidates("mung"); !slices.Equal(got, []string{"prefix", "prefixif"}) {
		t.Errorf("mung members: got %v", got)
	}
}

func TestComplete(t *testing.T) {
	matches, start, end := complete("file.", 5)
	if len(matches) != 4 || start != 5 || end != 5 {
		t.Errorf("member listing: got %d matches at %d:%d", len(matches), start, end)
	}

	matches, _, _ = complete("", 0)
	if matches != nil {
		t.Errorf("expected no matches for empty input, got %v", matches)
	}

	matches, start, end = complete(":lev", 4)
	if len(matches) == 0 || matches[0].Str != "level" || start != 1 || end != 4 {
		t.Errorf("command completion: got %v at %d:%d", matches, start, end)
	}

	if matches, _, _ = complete(":level de", 9); matches != nil {
		t.Errorf("expected no completion of command arguments, got %v", matches)
	}
}
