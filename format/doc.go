// Package format renders heterogeneous argument lists as plain text.
//
// A [Printer] carries the numeric [State] of one logging statement: the
// [Base] used for integers and the [Precision] used for floating-point
// values. Both are changed in-stream by passing a Base or Precision value as
// an argument; such pseudo-values print nothing and take no delimiter.
//
//	var p = format.NewPrinter()
//	var sb strings.Builder
//	p.Join(&sb, " ", "id", format.Hex, 255, format.Precision(3), 1.5)
//	// sb.String() == "id ff 1.500"
//
// # Containers
//
// Arrays, slices, [container/list.List] values and [iter.Seq] functions
// render as sequences:
//
//	[e0, e1, e2]
//
// [Map], goccy/go-yaml's MapSlice and [iter.Seq2] functions render as
// mappings in insertion order:
//
//	{k0:v0, k1:v1}
//
// Native Go maps are rendered with their keys sorted. Elements are joined by
// ", " regardless of the statement delimiter, and nested containers inherit
// the enclosing state. State changes made inside a container end with it.
package format
