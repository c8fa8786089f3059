package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/debuglog/lang"
)

// commands are the names accepted after the command prefix.
var commands = []string{"base-reset", "clear", "help", "level", "quit", "reset", "state"}

// isWordBoundary reports whether r delimits words for completion. This
// includes whitespace, the member-access dot, and expr-lang operator and
// punctuation characters.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']', '{', '}',
		'+', '-', '*', '/', '%', '^',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';', '#':
		return true
	}

	return false
}

// wordBounds returns the word under the cursor and its byte offsets. The
// word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	for start = cursor; start > 0; {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	for end = cursor; end < len(input); {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the member-access chain leading to the word starting at
// wordStart. For "x + path.ca" with the word "ca" it returns "path".
func parentPath(input string, wordStart int) string {
	prefix := input[:wordStart]
	if !strings.HasSuffix(prefix, ".") {
		return ""
	}

	prefix = strings.TrimSuffix(prefix, ".")
	pos := len(prefix)

	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return prefix[pos:]
}

// candidates returns the completions available after parent. At the top
// level these are the built-in environment names and the expr-lang
// builtins.
func candidates(parent string) []string {
	if parent == "" {
		names := append(lang.BuiltinEnvKeys(), slices.Collect(maps.Keys(builtin.Index))...)
		slices.Sort(names)

		return slices.Compact(names)
	}

	return lang.BuiltinEnvLookup(parent)
}

// complete returns the fuzzy matches for the word under the cursor along
// with the word's offsets. Command lines complete command names.
func complete(input string, cursor int) (matches fuzzy.Matches, start, end int) {
	if rest, ok := strings.CutPrefix(input, commandPrefix); ok {
		if strings.ContainsAny(rest, " \t") {
			return nil, 0, 0
		}

		if rest == "" {
			return every(commands), len(commandPrefix), len(input)
		}

		return fuzzy.Find(rest, commands), len(commandPrefix), len(input)
	}

	word, start, end := wordBounds(input, cursor)
	parent := parentPath(input, start)

	names := candidates(parent)
	if len(names) == 0 {
		return nil, start, end
	}

	// After a dot, list every member so they can be browsed.
	if word == "" {
		if parent == "" {
			return nil, start, end
		}

		return every(names), start, end
	}

	return fuzzy.Find(word, names), start, end
}

// every returns names as unfiltered matches.
func every(names []string) fuzzy.Matches {
	matches := make(fuzzy.Matches, len(names))
	for i, name := range names {
		matches[i] = fuzzy.Match{Str: name, Index: i}
	}

	return matches
}

// renderCandidates renders the completion bar, truncated with an ellipsis to
// fit width. The selected candidate is highlighted while tab-cycling.
func renderCandidates(matches fuzzy.Matches, selected, width int) string {
	const sep = "  "

	ellipsis := hintStyle.Render("...")

	var (
		b    strings.Builder
		used int
	)

	for i, match := range matches {
		item := renderCandidate(match, i == selected)

		w := lipgloss.Width(item)
		if i > 0 {
			w += len(sep)
		}

		if i > 0 && used+w+lipgloss.Width(ellipsis) > width {
			b.WriteString(sep + ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(item)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// emphasized.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, bold := suggestionStyle, suggestionStyle.Bold(true)
	if selected {
		base, bold = selectedStyle, selectedStyle.Bold(true)
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(bold.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
