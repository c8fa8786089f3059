package pkg

import (
	"errors"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	expected := "debuglog"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestDescription(t *testing.T) {
	expected := "Leveled variadic logger with dual-sink routing"
	if Description != expected {
		t.Errorf("Expected Description to be %q, got %q", expected, Description)
	}
}

func TestVersion(t *testing.T) {
	// Version is embedded from the VERSION file next to this package.
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := string(buf); Version != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version)
	}

	if strings.TrimSpace(Version) == "" {
		t.Error("Expected Version to be non-empty")
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Fatal("Expected Author to have at least one entry")
	}

	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("Expected Author to contain ardnew")
	}
}

func TestError_IsMatchesWrappedSentinel(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"sentinel itself", ErrInvalidLevel, ErrInvalidLevel, true},
		{"wrapf", ErrInvalidLevel.Wrapf("%q", "loud"), ErrInvalidLevel, true},
		{"wrap io error", ErrOpenSink.Wrap(os.ErrNotExist), ErrOpenSink, true},
		{"other sentinel", ErrInvalidLevel.Wrapf("x"), ErrInvalidBase, false},
		{"fmt wrapped", errors.Join(ErrEval.Wrapf("boom")), ErrEval, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestError_WrapKeepsUnderlyingCause(t *testing.T) {
	err := ErrOpenSink.Wrap(os.ErrPermission)

	require.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, "failed to open sink: permission denied", err.Error())
	// The sentinel is never mutated by wrapping.
	assert.Len(t, ErrOpenSink, 1)
}

func TestError_MakeErrorSkipsNil(t *testing.T) {
	assert.Nil(t, MakeError(nil, nil))
	assert.Len(t, MakeError(nil, errors.New("a")), 1)
}

func TestAnyValues(t *testing.T) {
	got := slices.Collect(AnyValues("a", "b"))
	assert.Equal(t, []any{"a", "b"}, got)

	lengths := slices.Collect(Convert(func(s string) int { return len(s) }, "ab", "c"))
	assert.Equal(t, []int{2, 1}, lengths)
}

func TestConfigPath(t *testing.T) {
	p := ConfigPath("config.yaml")
	assert.True(t, strings.HasSuffix(p, "config.yaml"))
	assert.True(t, strings.HasPrefix(p, ConfigDir()))
}
