package format

import (
	"cmp"
	"container/list"
	"fmt"
	"io"
	"iter"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Element separator used inside sequences and mappings.
const elemDelim = ", "

// Printer renders values to a writer using its current [State].
//
// The zero value renders integers in decimal and floats with no fractional
// digits; use [NewPrinter] to start from [DefaultState].
// A Printer is not safe for concurrent use.
type Printer struct {
	State State
}

// NewPrinter returns a Printer in the default state.
func NewPrinter() *Printer {
	return &Printer{State: DefaultState()}
}

// Reset restores the default state.
func (p *Printer) Reset() {
	p.State = DefaultState()
}

// Render writes the textual form of v to w. If v is a [Base] or [Precision]
// it updates the printer state instead and writes nothing.
func (p *Printer) Render(w io.StringWriter, v any) {
	if p.apply(v) {
		return
	}

	p.render(w, v)
}

// Join renders each argument in order, writing delim between consecutive
// printed arguments. No delimiter follows the last argument, and
// pseudo-values neither print nor take a delimiter.
func (p *Printer) Join(w io.StringWriter, delim string, args ...any) {
	first := true

	for _, arg := range args {
		if p.apply(arg) {
			continue
		}

		if !first {
			_, _ = w.WriteString(delim)
		}

		first = false

		p.render(w, arg)
	}
}

// Sprint renders args with a fresh default printer and returns the text.
func Sprint(delim string, args ...any) string {
	var sb strings.Builder

	NewPrinter().Join(&sb, delim, args...)

	return sb.String()
}

// apply consumes pseudo-values and reports whether v was one.
func (p *Printer) apply(v any) bool {
	switch v := v.(type) {
	case Base:
		if v.valid() {
			p.State.Base = v
		}

		return true

	case Precision:
		p.State.Precision = v

		return true
	}

	return false
}

// scope saves the current state and returns a function restoring it.
func (p *Printer) scope() func() {
	saved := p.State

	return func() { p.State = saved }
}

func (p *Printer) base() int {
	if !p.State.Base.valid() {
		return int(DefaultBase)
	}

	return int(p.State.Base)
}

//nolint:cyclop,funlen
func (p *Printer) render(w io.StringWriter, v any) {
	switch v := v.(type) {
	case nil:
		_, _ = w.WriteString("<nil>")

	case string:
		_, _ = w.WriteString(v)

	case bool:
		_, _ = w.WriteString(strconv.FormatBool(v))

	case int:
		p.writeInt(w, int64(v), strconv.IntSize)
	case int8:
		p.writeInt(w, int64(v), 8)
	case int16:
		p.writeInt(w, int64(v), 16)
	case int32:
		p.writeInt(w, int64(v), 32)
	case int64:
		p.writeInt(w, v, 64)

	case uint:
		p.writeUint(w, uint64(v))
	case uint8:
		p.writeUint(w, uint64(v))
	case uint16:
		p.writeUint(w, uint64(v))
	case uint32:
		p.writeUint(w, uint64(v))
	case uint64:
		p.writeUint(w, v)
	case uintptr:
		p.writeUint(w, uint64(v))

	case float32:
		p.writeFloat(w, float64(v), 32)
	case float64:
		p.writeFloat(w, v, 64)

	case complex64:
		p.writeComplex(w, complex128(v), 32)
	case complex128:
		p.writeComplex(w, v, 64)

	case Map:
		p.writeMap(w, v.All())

	case *Map:
		if v == nil {
			_, _ = w.WriteString("<nil>")

			return
		}

		p.writeMap(w, v.All())

	case yaml.MapSlice:
		p.writeMap(w, mapSliceItems(v))

	case *list.List:
		if v == nil {
			_, _ = w.WriteString("<nil>")

			return
		}

		p.writeSeq(w, listElements(v))

	case error:
		writeMethod(w, v, v.Error)

	case fmt.Stringer:
		writeMethod(w, v, v.String)

	default:
		p.renderValue(w, reflect.ValueOf(v))
	}
}

// writeMethod writes the result of an Error or String method of v. Like fmt,
// a method that panics on a nil pointer receiver renders as "<nil>", and any
// other panic is reported inline instead of escaping the logging call.
func writeMethod(w io.StringWriter, v any, method func() string) {
	defer func() {
		if err := recover(); err != nil {
			if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
				_, _ = w.WriteString("<nil>")

				return
			}

			_, _ = w.WriteString(fmt.Sprintf("<panic: %v>", err))
		}
	}()

	_, _ = w.WriteString(method())
}

// renderValue handles named types and composite kinds via reflection.
//
//nolint:cyclop
func (p *Printer) renderValue(w io.StringWriter, rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Invalid:
		_, _ = w.WriteString("<nil>")

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		p.writeInt(w, rv.Int(), rv.Type().Bits())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		p.writeUint(w, rv.Uint())

	case reflect.Float32, reflect.Float64:
		p.writeFloat(w, rv.Float(), rv.Type().Bits())

	case reflect.Complex64, reflect.Complex128:
		p.writeComplex(w, rv.Complex(), rv.Type().Bits()/2)

	case reflect.String:
		_, _ = w.WriteString(rv.String())

	case reflect.Bool:
		_, _ = w.WriteString(strconv.FormatBool(rv.Bool()))

	case reflect.Array, reflect.Slice:
		p.writeSeq(w, indexed(rv))

	case reflect.Map:
		p.writeMap(w, sortedEntries(rv))

	case reflect.Func:
		switch {
		case rv.IsNil():
			_, _ = w.WriteString("<nil>")
		case rv.Type().CanSeq2():
			p.writeMap(w, interfaces2(rv.Seq2()))
		case rv.Type().CanSeq():
			p.writeSeq(w, interfaces(rv.Seq()))
		default:
			_, _ = w.WriteString(fmt.Sprint(rv.Interface()))
		}

	case reflect.Pointer:
		if rv.IsNil() {
			_, _ = w.WriteString("<nil>")

			return
		}

		switch rv.Elem().Kind() { //nolint:exhaustive
		case reflect.Array, reflect.Slice, reflect.Map:
			p.render(w, rv.Elem().Interface())
		default:
			_, _ = w.WriteString(fmt.Sprint(rv.Interface()))
		}

	default:
		_, _ = w.WriteString(fmt.Sprint(rv.Interface()))
	}
}

// writeInt renders v in the current base. Negative values in a non-decimal
// base are written as the two's complement of their bit width.
func (p *Printer) writeInt(w io.StringWriter, v int64, bits int) {
	base := p.base()

	if v < 0 && base != int(Dec) {
		u := uint64(v)
		if bits < 64 {
			u &= 1<<bits - 1
		}

		_, _ = w.WriteString(strconv.FormatUint(u, base))

		return
	}

	_, _ = w.WriteString(strconv.FormatInt(v, base))
}

func (p *Printer) writeUint(w io.StringWriter, v uint64) {
	_, _ = w.WriteString(strconv.FormatUint(v, p.base()))
}

func (p *Printer) writeFloat(w io.StringWriter, f float64, bits int) {
	switch {
	case math.IsNaN(f):
		_, _ = w.WriteString("nan")
	case math.IsInf(f, 1):
		_, _ = w.WriteString("inf")
	case math.IsInf(f, -1):
		_, _ = w.WriteString("-inf")
	default:
		_, _ = w.WriteString(
			strconv.FormatFloat(f, 'f', int(p.State.Precision), bits),
		)
	}
}

func (p *Printer) writeComplex(w io.StringWriter, c complex128, bits int) {
	_, _ = w.WriteString("(")
	p.writeFloat(w, real(c), bits)

	if im := imag(c); !math.Signbit(im) || math.IsNaN(im) {
		_, _ = w.WriteString("+")
	}

	p.writeFloat(w, imag(c), bits)
	_, _ = w.WriteString("i)")
}

// writeSeq renders elements as "[e0, e1, ...]".
func (p *Printer) writeSeq(w io.StringWriter, seq iter.Seq[any]) {
	defer p.scope()()

	_, _ = w.WriteString("[")

	first := true

	for v := range seq {
		if p.apply(v) {
			continue
		}

		if !first {
			_, _ = w.WriteString(elemDelim)
		}

		first = false

		p.render(w, v)
	}

	_, _ = w.WriteString("]")
}

// writeMap renders entries as "{k0:v0, k1:v1, ...}".
func (p *Printer) writeMap(w io.StringWriter, seq iter.Seq2[any, any]) {
	defer p.scope()()

	_, _ = w.WriteString("{")

	first := true

	for k, v := range seq {
		// A pseudo-value key consumes its entry.
		if p.apply(k) {
			p.apply(v)

			continue
		}

		if !first {
			_, _ = w.WriteString(elemDelim)
		}

		first = false

		p.render(w, k)
		_, _ = w.WriteString(":")
		p.Render(w, v)
	}

	_, _ = w.WriteString("}")
}

func indexed(rv reflect.Value) iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := range rv.Len() {
			if !yield(rv.Index(i).Interface()) {
				return
			}
		}
	}
}

func listElements(l *list.List) iter.Seq[any] {
	return func(yield func(any) bool) {
		for e := l.Front(); e != nil; e = e.Next() {
			if !yield(e.Value) {
				return
			}
		}
	}
}

func mapSliceItems(m yaml.MapSlice) iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, item := range m {
			if !yield(item.Key, item.Value) {
				return
			}
		}
	}
}

func interfaces(seq iter.Seq[reflect.Value]) iter.Seq[any] {
	return func(yield func(any) bool) {
		for v := range seq {
			if !yield(valueOf(v)) {
				return
			}
		}
	}
}

func interfaces2(seq iter.Seq2[reflect.Value, reflect.Value]) iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for k, v := range seq {
			if !yield(valueOf(k), valueOf(v)) {
				return
			}
		}
	}
}

func valueOf(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}

	return v.Interface()
}

// sortedEntries yields the entries of a native map ordered by key.
func sortedEntries(rv reflect.Value) iter.Seq2[any, any] {
	keys := rv.MapKeys()
	slices.SortFunc(keys, compareKeys)

	return func(yield func(any, any) bool) {
		for _, k := range keys {
			if !yield(k.Interface(), rv.MapIndex(k).Interface()) {
				return
			}
		}
	}
}

// compareKeys orders numbers numerically and everything else by text.
func compareKeys(a, b reflect.Value) int {
	if a.Kind() == reflect.Interface && !a.IsNil() {
		a = a.Elem()
	}

	if b.Kind() == reflect.Interface && !b.IsNil() {
		b = b.Elem()
	}

	switch {
	case a.CanInt() && b.CanInt():
		return cmp.Compare(a.Int(), b.Int())
	case a.CanUint() && b.CanUint():
		return cmp.Compare(a.Uint(), b.Uint())
	case a.CanFloat() && b.CanFloat():
		return cmp.Compare(a.Float(), b.Float())
	case a.Kind() == reflect.String && b.Kind() == reflect.String:
		return cmp.Compare(a.String(), b.String())
	}

	return cmp.Compare(fmt.Sprint(valueOf(a)), fmt.Sprint(valueOf(b)))
}
