package repl

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ardnew/debuglog/lang"
	"github.com/ardnew/debuglog/log"
)

// commandPrefix introduces a REPL command instead of an expression.
const commandPrefix = ":"

// evaluator logs expression results through a router whose primary sink is
// captured so the REPL can display it. The file sink, thresholds and
// formatting state are inherited from the router the REPL was started with.
type evaluator struct {
	router *log.Router
	out    *bytes.Buffer
	level  log.Level
}

func newEvaluator(r *log.Router, level log.Level) *evaluator {
	var out bytes.Buffer

	return &evaluator{
		router: r.Wrap(log.WithPrimary(log.WriterSink(&out))),
		out:    &out,
		level:  level,
	}
}

// evaluate logs the result of src at the current level and returns what the
// primary sink received. The output is empty when the level is not admitted.
func (e *evaluator) evaluate(src string) (string, error) {
	args, err := lang.Evaluate(src)
	if err != nil {
		return "", err
	}

	return e.capture(func() { e.router.Log(e.level, args...) }), nil
}

func (e *evaluator) capture(fn func()) string {
	e.out.Reset()
	fn()

	return strings.TrimSuffix(e.out.String(), "\n")
}

// command runs a REPL command line (without its prefix) and returns the text
// to display. quit is set by the quit command.
func (e *evaluator) command(line string) (out string, quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false, nil
	}

	name, args := fields[0], fields[1:]

	switch name {
	case "q", "quit", "exit":
		return "", true, nil

	case "h", "help":
		return helpMessage(), false, nil

	case "level":
		if len(args) == 0 {
			return e.describeLevels(), false, nil
		}

		var level log.Level
		if err := level.UnmarshalText([]byte(args[0])); err != nil {
			return "", false, err
		}

		e.level = level

		return "level " + level.String(), false, nil

	case "base-reset":
		if len(args) > 0 {
			enable, err := strconv.ParseBool(args[0])
			if err != nil {
				return "", false, err
			}

			e.router.SetBaseReset(enable)
		}

		return "base-reset " + strconv.FormatBool(e.router.BaseReset()), false, nil

	case "reset":
		e.router.ResetState()

		return e.describeState(), false, nil

	case "state":
		return e.describeState(), false, nil
	}

	return "", false, fmt.Errorf("%w: %s (try %shelp)", ErrUnknownCommand, name, commandPrefix)
}

func (e *evaluator) describeLevels() string {
	return fmt.Sprintf("level %s (threshold %s, file %s)",
		e.level, e.router.Level(), e.router.FileLevel())
}

func (e *evaluator) describeState() string {
	s := e.router.State()

	return fmt.Sprintf("base %s, precision %d", s.Base, int(s.Precision))
}

func helpMessage() string {
	return `Type an expression to log its result. A list result is logged as
separate arguments, so [hex, 255] logs "ff".

Commands:
  :level [name]        show or set the level results are logged at
  :base-reset [bool]   show or set the base-reset policy
  :reset               restore the default base and precision
  :state               show the pinned base and precision
  :clear               clear the screen
  :quit                exit (also Ctrl+D on an empty line)

Keys:
  Tab / Shift+Tab      cycle completions
  Up / Down            browse history
  Esc                  cancel completion`
}
