package lang

import (
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/debuglog/pkg"
)

// Program is a compiled expression together with the environment it runs in.
type Program struct {
	source     string
	program    *vm.Program
	env        map[string]any
	vars       map[string]any
	processEnv []string
	asBool     bool
}

// Option configures the compilation of a [Program].
type Option func(*Program)

// WithProcessEnv sets the "KEY=VALUE" list served by the env() function.
// A nil list selects os.Environ().
func WithProcessEnv(env []string) Option {
	return func(p *Program) {
		p.processEnv = env
	}
}

// WithVars adds variables to the environment. They shadow built-ins of the
// same name.
func WithVars(vars map[string]any) Option {
	return func(p *Program) {
		if p.vars == nil {
			p.vars = make(map[string]any, len(vars))
		}

		maps.Copy(p.vars, vars)
	}
}

// AsBool requires the expression to produce a boolean.
func AsBool() Option {
	return func(p *Program) {
		p.asBool = true
	}
}

// Compile compiles source against the built-in environment.
func Compile(source string, opts ...Option) (*Program, error) {
	p := &Program{source: strings.TrimSpace(source)}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	if p.source == "" {
		return nil, ErrEmptyExpr
	}

	p.env = makeEnv(buildProcessEnvMap(p.processEnv))
	maps.Copy(p.env, p.vars)

	compileOpts := []expr.Option{expr.Env(p.env)}
	if p.asBool {
		compileOpts = append(compileOpts, expr.AsBool())
	}

	program, err := expr.Compile(p.source, compileOpts...)
	if err != nil {
		return nil, ErrExprCompile.Wrap(pkg.ErrEval.Wrap(err)).
			With(slog.String("source", p.source))
	}

	p.program = program

	return p, nil
}

// Source returns the trimmed expression text.
func (p *Program) Source() string { return p.source }

// Run evaluates the program.
func (p *Program) Run() (any, error) {
	out, err := expr.Run(p.program, p.env)
	if err != nil {
		return nil, ErrExprEvaluate.Wrap(pkg.ErrEval.Wrap(err)).
			With(slog.String("source", p.source))
	}

	return out, nil
}

// Args evaluates the program and returns its result as log arguments.
func (p *Program) Args() ([]any, error) {
	out, err := p.Run()
	if err != nil {
		return nil, err
	}

	return Spread(out), nil
}

// Test evaluates a program compiled with [AsBool].
func (p *Program) Test() (bool, error) {
	out, err := p.Run()
	if err != nil {
		return false, err
	}

	ok, isBool := out.(bool)
	if !isBool {
		return false, ErrNotBoolean.With(slog.String("source", p.source))
	}

	return ok, nil
}

// Evaluate compiles and runs source, returning its result as log arguments.
func Evaluate(source string, opts ...Option) ([]any, error) {
	p, err := Compile(source, opts...)
	if err != nil {
		return nil, err
	}

	return p.Args()
}

// Spread returns the elements of a list result as separate arguments. Any
// other result is returned as the only argument.
func Spread(result any) []any {
	if list, ok := result.([]any); ok {
		return list
	}

	return []any{result}
}

// ParseWord converts a command-line word to the most specific value it
// spells: a signed or unsigned integer (decimal, or 0x/0o/0b prefixed), a
// float, a boolean, or else the string itself.
func ParseWord(s string) any {
	base := 10
	if hasRadixPrefix(s) {
		base = 0
	}

	if i, err := strconv.ParseInt(s, base, 64); err == nil {
		return i
	}

	if u, err := strconv.ParseUint(s, base, 64); err == nil {
		return u
	}

	if strings.ContainsAny(s, "0123456789") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	switch s {
	case "true":
		return true
	case "false":
		return false
	}

	return s
}

// hasRadixPrefix reports whether s, after an optional sign, starts with an
// explicit 0x, 0o or 0b prefix. A bare leading zero stays decimal.
func hasRadixPrefix(s string) bool {
	s = strings.TrimLeft(s, "+-")

	if len(s) < 3 || s[0] != '0' {
		return false
	}

	switch s[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}

	return false
}

// ParseWords applies [ParseWord] to each word.
func ParseWords(words ...string) []any {
	return slices.Collect(pkg.Convert(ParseWord, words...))
}
