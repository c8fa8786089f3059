package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ardnew/debuglog/pkg"
)

// Base is the radix used to render integer values.
//
// As an argument, a Base is a pseudo-value: it selects the radix for the
// integers that follow and renders nothing.
type Base int

// Supported integer bases.
const (
	Bin Base = 2
	Oct Base = 8
	Dec Base = 10
	Hex Base = 16
)

// DefaultBase is the base restored by [Printer.Reset].
const DefaultBase = Dec

// String returns the short name of the base.
func (b Base) String() string {
	switch b {
	case Bin:
		return "bin"
	case Oct:
		return "oct"
	case Dec:
		return "dec"
	case Hex:
		return "hex"
	default:
		return "Base(" + strconv.Itoa(int(b)) + ")"
	}
}

// valid reports whether b can be passed to strconv.
func (b Base) valid() bool {
	return b >= 2 && b <= 36
}

// ParseBase parses a base name ("dec", "hex", "oct", "bin") or its radix
// ("10", "16", "8", "2").
func ParseBase(s string) (Base, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dec", "10":
		return Dec, nil
	case "hex", "16":
		return Hex, nil
	case "oct", "8":
		return Oct, nil
	case "bin", "2":
		return Bin, nil
	default:
		return DefaultBase, pkg.ErrInvalidBase.Wrapf("%q", s)
	}
}

// Precision is the number of digits printed after the decimal point of
// floating-point values. A negative precision selects the shortest
// representation that round-trips.
//
// Like [Base], a Precision argument is a pseudo-value.
type Precision int

// DefaultPrecision is the precision restored by [Printer.Reset].
const DefaultPrecision Precision = 2

// String returns a description of the precision.
func (p Precision) String() string {
	return fmt.Sprintf("Precision(%d)", int(p))
}

// State is the numeric formatting state shared by every argument of one
// statement, including the elements of nested containers.
type State struct {
	Base      Base
	Precision Precision
}

// DefaultState returns the state every statement starts from.
func DefaultState() State {
	return State{Base: DefaultBase, Precision: DefaultPrecision}
}
