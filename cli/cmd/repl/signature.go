package repl

import (
	"reflect"
	"strings"

	"github.com/expr-lang/expr/builtin"

	"github.com/ardnew/debuglog/lang"
)

// call describes the function call enclosing the cursor.
type call struct {
	name string // qualified name, e.g. "path.cat"
	arg  int    // zero-based index of the argument under the cursor
}

// callAt finds the innermost unclosed function call before cursor. Commas
// inside nested brackets do not count toward the argument index.
func callAt(input string, cursor int) (call, bool) {
	depth, arg := 0, 0

	for i := min(cursor, len(input)) - 1; i >= 0; i-- {
		switch input[i] {
		case ')', ']', '}':
			depth++

		case '[', '{':
			if depth == 0 {
				return call{}, false
			}

			depth--

		case '(':
			if depth > 0 {
				depth--

				continue
			}

			name := identBefore(input, i)

			return call{name: name, arg: arg}, name != ""

		case ',':
			if depth == 0 {
				arg++
			}
		}
	}

	return call{}, false
}

// identBefore returns the dotted identifier ending at offset end.
func identBefore(input string, end int) string {
	start := end

	for start > 0 {
		c := input[start-1]
		if c != '.' && c != '_' && !isAlnum(c) {
			break
		}

		start--
	}

	return strings.Trim(input[start:end], ".")
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// signature returns the parameter names of the named function. Built-in
// environment functions are described by reflection; expr-lang builtins
// take unnamed arguments.
func signature(name string) (params []string, ok bool) {
	if fn := lookup(name); fn != nil {
		return describe(reflect.TypeOf(fn)), true
	}

	if _, ok := builtin.Index[name]; ok {
		return []string{"..."}, true
	}

	return nil, false
}

// lookup resolves a dotted name to a function in the built-in environment.
func lookup(name string) any {
	var current any = lang.BuiltinEnvCache()

	for seg := range strings.SplitSeq(name, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}

		if current, ok = m[seg]; !ok {
			return nil
		}
	}

	if t := reflect.TypeOf(current); t == nil || t.Kind() != reflect.Func {
		return nil
	}

	return current
}

// describe names the parameters of a function type by their kinds.
func describe(t reflect.Type) []string {
	params := make([]string, t.NumIn())

	for i := range params {
		in := t.In(i)
		if t.IsVariadic() && i == len(params)-1 {
			params[i] = "..." + kindName(in.Elem())
		} else {
			params[i] = kindName(in)
		}
	}

	return params
}

func kindName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "uint"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Func:
		return "func"
	case reflect.Interface:
		return "any"
	default:
		return t.Kind().String()
	}
}

// renderSignature renders name(params...) with the parameter at index arg
// highlighted. A variadic parameter stays highlighted for every later
// argument.
func renderSignature(name string, params []string, arg int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		variadic := strings.HasPrefix(param, "...")
		if i == arg || variadic && arg >= i {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
