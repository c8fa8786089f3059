package format

import "iter"

// Pair is one entry of a [Map].
type Pair struct {
	Key   any
	Value any
}

// Map is an ordered mapping. It renders as {k0:v0, k1:v1} in insertion
// order, unlike a native Go map whose keys are sorted before rendering.
type Map []Pair

// KV builds a Map from alternating keys and values. A trailing key without a
// value is paired with nil.
func KV(kv ...any) Map {
	m := make(Map, 0, (len(kv)+1)/2)

	for i := 0; i < len(kv); i += 2 {
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
		}

		m = append(m, Pair{Key: kv[i], Value: v})
	}

	return m
}

// Add appends an entry and returns the extended map.
func (m Map) Add(key, value any) Map {
	return append(m, Pair{Key: key, Value: value})
}

// All returns an iterator over the entries in insertion order.
func (m Map) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, p := range m {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}
