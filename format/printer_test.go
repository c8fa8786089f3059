package format

import (
	"container/list"
	"errors"
	"math"
	"net/url"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/debuglog/pkg"
)

type code uint8

type point struct{ X, Y int }

type failure struct{ reason string }

func (e *failure) Error() string { return e.reason }

type fragile struct{}

func (fragile) String() string { panic("unavailable") }

func TestSprint_Scalars(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want string
	}{
		{"text", []any{"a", "b", "c"}, "a b c"},
		{"mixed", []any{1, 2.5, "x", true}, "1 2.50 x true"},
		{"negative decimal", []any{-5}, "-5"},
		{"hex", []any{Hex, 255}, "ff"},
		{"oct", []any{Oct, 255}, "377"},
		{"bin", []any{Bin, 5}, "101"},
		{"hex int8 two's complement", []any{Hex, int8(-1)}, "ff"},
		{"hex int32 two's complement", []any{Hex, int32(-1)}, "ffffffff"},
		{"oct int16 two's complement", []any{Oct, int16(-2)}, "177776"},
		{"hex uint64", []any{Hex, uint64(math.MaxUint64)}, "ffffffffffffffff"},
		{"named unsigned", []any{Hex, code(255)}, "ff"},
		{"precision", []any{Precision(3), 1.5}, "1.500"},
		{"precision zero", []any{Precision(0), 2.7}, "3"},
		{"shortest", []any{Precision(-1), 0.1}, "0.1"},
		{"float32", []any{float32(0.25)}, "0.25"},
		{"nan", []any{math.NaN()}, "nan"},
		{"inf", []any{math.Inf(1), math.Inf(-1)}, "inf -inf"},
		{"complex", []any{complex(1, -2), complex(1, 2)}, "(1.00-2.00i) (1.00+2.00i)"},
		{"nil", []any{nil}, "<nil>"},
		{"nil pointer", []any{(*int)(nil)}, "<nil>"},
		{"error", []any{errors.New("boom")}, "boom"},
		{"stringer", []any{1500 * time.Millisecond}, "1.5s"},
		{"nil stringer pointer", []any{(*time.Time)(nil)}, "<nil>"},
		{"nil url", []any{(*url.URL)(nil)}, "<nil>"},
		{"nil error pointer", []any{error((*failure)(nil))}, "<nil>"},
		{"error pointer", []any{&failure{"denied"}}, "denied"},
		{"panicking stringer", []any{fragile{}, 1}, "<panic: unavailable> 1"},
		{"struct fallback", []any{point{1, 2}}, "{1 2}"},
		{"invalid base ignored", []any{Base(99), 10}, "10"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sprint(" ", tt.args...))
		})
	}
}

func TestJoin_PseudoValuesTakeNoDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		delim string
		args  []any
		want  string
	}{
		{"leading", " ", []any{Hex, 255, 16}, "ff 10"},
		{"middle", " ", []any{10, Hex, 10}, "10 a"},
		{"trailing", ",", []any{1, 2, Precision(4)}, "1,2"},
		{"only pseudo", " ", []any{Hex, Precision(1)}, ""},
		{"empty delimiter", "", []any{"a", "b"}, "ab"},
		{"long delimiter", " | ", []any{"a", "b", "c"}, "a | b | c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sprint(tt.delim, tt.args...))
		})
	}
}

func TestSprint_Containers(t *testing.T) {
	deque := list.New()
	deque.PushBack(1)
	deque.PushBack("a")
	deque.PushFront(0)

	tests := []struct {
		name string
		args []any
		want string
	}{
		{"empty slice", []any{[]int{}}, "[]"},
		{"nil slice", []any{[]string(nil)}, "[]"},
		{"empty ordered map", []any{KV()}, "{}"},
		{"empty native map", []any{map[string]int{}}, "{}"},
		{"array", []any{[3]int{1, 2, 3}}, "[1, 2, 3]"},
		{"hex slice", []any{Hex, []int{1, 2, 255}}, "[1, 2, ff]"},
		{"bytes", []any{Hex, []byte{1, 2, 255}}, "[1, 2, ff]"},
		{"ignores delimiter", []any{[]string{"a", "b"}, "c"}, "[a, b] c"},
		{"ordered map", []any{KV("a", 1, "b", 2)}, "{a:1, b:2}"},
		{"ordered map keeps insertion order", []any{KV("z", 1, "a", 2)}, "{z:1, a:2}"},
		{"native map sorted", []any{map[string]int{"b": 2, "a": 1}}, "{a:1, b:2}"},
		{"native map numeric keys", []any{map[int]string{10: "x", 9: "y"}}, "{9:y, 10:x}"},
		{"native map mixed keys", []any{map[any]int{"b": 1, "a": 2}}, "{a:2, b:1}"},
		{"deque", []any{deque}, "[0, 1, a]"},
		{"yaml map slice", []any{yaml.MapSlice{{Key: "k", Value: 1}, {Key: "j", Value: []int{2}}}}, "{k:1, j:[2]}"},
		{"iter seq", []any{slices.Values([]int{1, 2})}, "[1, 2]"},
		{"iter seq2", []any{slices.All([]string{"a", "b"})}, "{0:a, 1:b}"},
		{"pointer to slice", []any{&[]int{7}}, "[7]"},
		{"pointer to map", []any{&Map{{Key: "k", Value: "v"}}}, "{k:v}"},
		{"dangling key", []any{KV("k")}, "{k:<nil>}"},
		{
			"sequence of mappings",
			[]any{[]Map{KV("a", 1), KV("b", []int{2, 3})}},
			"[{a:1}, {b:[2, 3]}]",
		},
		{
			"nested ambient precision",
			[]any{Precision(1), [][]float64{{1}, {2.26}}},
			"[[1.0], [2.3]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sprint(" ", tt.args...))
		})
	}
}

func TestJoin_ContainerStateIsScoped(t *testing.T) {
	t.Run("siblings do not leak", func(t *testing.T) {
		got := Sprint(" ", []any{[]any{Hex, 255}, 255}, 255)
		assert.Equal(t, "[[ff], 255] 255", got)
	})

	t.Run("ambient flows into maps", func(t *testing.T) {
		got := Sprint(" ", Hex, []any{255, KV("x", 255)})
		assert.Equal(t, "[ff, {x:ff}]", got)
	})

	t.Run("pseudo value as map key consumes the entry", func(t *testing.T) {
		got := Sprint(" ", KV(Hex, "dropped", "b", 255), 255)
		assert.Equal(t, "{b:ff} 255", got)
	})

	t.Run("pseudo value in map value", func(t *testing.T) {
		got := Sprint(" ", KV("a", Hex, "b", 255), 255)
		assert.Equal(t, "{a:, b:ff} 255", got)
	})
}

func TestPrinter_StatePersistsUntilReset(t *testing.T) {
	p := NewPrinter()

	var sb strings.Builder

	p.Join(&sb, " ", Hex, Precision(4), 1)
	assert.Equal(t, State{Base: Hex, Precision: 4}, p.State)

	sb.Reset()
	p.Join(&sb, " ", 255, 0.5)
	assert.Equal(t, "ff 0.5000", sb.String())

	p.Reset()
	assert.Equal(t, DefaultState(), p.State)

	sb.Reset()
	p.Render(&sb, 255)
	assert.Equal(t, "255", sb.String())
}

func TestPrinter_RenderAppliesPseudoValue(t *testing.T) {
	p := NewPrinter()

	var sb strings.Builder

	p.Render(&sb, Oct)
	assert.Empty(t, sb.String())
	assert.Equal(t, Oct, p.State.Base)
}

func TestParseBase(t *testing.T) {
	tests := []struct {
		in   string
		want Base
	}{
		{"dec", Dec},
		{"HEX", Hex},
		{" oct ", Oct},
		{"2", Bin},
		{"16", Hex},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBase(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseBase("sexagesimal")
	require.ErrorIs(t, err, pkg.ErrInvalidBase)
}

func TestBase_String(t *testing.T) {
	assert.Equal(t, "hex", Hex.String())
	assert.Equal(t, "Base(3)", Base(3).String())
}
