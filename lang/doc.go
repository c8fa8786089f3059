// Package lang evaluates expr-lang expressions into log arguments.
//
// Every expression is compiled against a built-in environment that exposes
// the formatting pseudo-values alongside a handful of host helpers:
//
//	hex, dec, oct, bin      integer base selectors
//	precision(n)            floating-point precision selector
//	kv(k0, v0, k1, v1...)   ordered map
//	levels                  severity level names
//	env(name)               process environment lookup
//	platform, hostname      host information
//	cwd()                   working directory
//	file.*, path.*, mung.*  filesystem, path and PATH-list helpers
//
// A list result is spread into separate arguments, so the expression
//
//	["mask", hex, 255, precision(1), 2.25 * 2]
//
// logs as "mask ff 4.5". Wrap a list in another list to log it as a single
// container argument.
package lang
