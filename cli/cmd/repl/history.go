package repl

import (
	"bufio"
	"os"
	"slices"
	"strings"
)

const baseHistory = "history.utf8"

// History is the list of submitted lines, persisted one per line.
type History struct {
	path    string
	entries []string
}

// NewHistory creates a History backed by the file at path. An empty path
// keeps the history in memory only.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with the contents of the history file. A missing
// file is not an error.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.entries = append(h.entries, line)
		}
	}

	return scanner.Err()
}

// Add appends line, moving an earlier duplicate to the end, and persists the
// change.
func (h *History) Add(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return nil
	}

	if i := slices.Index(h.entries, line); i >= 0 {
		h.entries = append(slices.Delete(h.entries, i, i+1), line)

		return h.rewrite()
	}

	h.entries = append(h.entries, line)

	if h.path == "" {
		return nil
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(line + "\n")

	return err
}

// At returns the entry at index i. Index 0 is the oldest entry.
func (h *History) At(i int) (string, error) {
	if i < 0 || i >= len(h.entries) {
		return "", ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// rewrite replaces the history file with the current entries.
func (h *History) rewrite() error {
	if h.path == "" {
		return nil
	}

	var b strings.Builder

	for _, line := range h.entries {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return os.WriteFile(h.path, []byte(b.String()), 0o600)
}
