package log

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/ardnew/debuglog/format"
)

// Handler is a [slog.Handler] that logs records through a [Router].
//
// Each record becomes one leveled line: the message followed by its
// attributes rendered as a mapping, with groups nested as sub-mappings.
// Unlike the Router itself, a Handler is safe for concurrent use; all
// handlers derived from the same [NewHandler] call share one lock.
type Handler struct {
	mu     *sync.Mutex
	router *Router
	attrs  format.Map
	groups []string
}

// NewHandler returns a [Handler] writing to r.
func NewHandler(r *Router) *Handler {
	return &Handler{
		mu:     &sync.Mutex{},
		router: r,
	}
}

// Enabled reports whether the router would emit a record at level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.router.Enabled(FromSlog(level))
}

// Handle logs the record through the router.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, r.NumAttrs())

	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)

		return true
	})

	m := insert(h.attrs, h.groups, attrs)

	args := []any{r.Message}
	if len(m) > 0 {
		args = append(args, m)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.router.Log(FromSlog(r.Level), args...)

	return nil
}

// WithAttrs returns a handler that includes attrs in every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	return &Handler{
		mu:     h.mu,
		router: h.router,
		attrs:  insert(h.attrs, h.groups, attrs),
		groups: h.groups,
	}
}

// WithGroup returns a handler that nests subsequent attributes under name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return &Handler{
		mu:     h.mu,
		router: h.router,
		attrs:  h.attrs,
		groups: append(slices.Clip(h.groups), name),
	}
}

// insert returns a copy of m with attrs added under the nested group path.
// Groups are created only when there is something to put in them.
func insert(m format.Map, path []string, attrs []slog.Attr) format.Map {
	add := appendAttrs(nil, attrs)
	if len(add) == 0 {
		return m
	}

	return merge(m, path, add)
}

func merge(m format.Map, path []string, add format.Map) format.Map {
	if len(path) == 0 {
		return append(slices.Clip(m), add...)
	}

	out := slices.Clone(m)

	for i, p := range out {
		if sub, ok := p.Value.(format.Map); ok && p.Key == path[0] {
			out[i].Value = merge(sub, path[1:], add)

			return out
		}
	}

	return append(out, format.Pair{Key: path[0], Value: merge(nil, path[1:], add)})
}

func appendAttrs(m format.Map, attrs []slog.Attr) format.Map {
	for _, a := range attrs {
		v := a.Value.Resolve()

		switch {
		case a.Equal(slog.Attr{}):
			continue

		case v.Kind() == slog.KindGroup:
			group := appendAttrs(nil, v.Group())
			if len(group) == 0 {
				continue
			}

			if a.Key == "" {
				m = append(m, group...)
			} else {
				m = m.Add(a.Key, group)
			}

		default:
			m = m.Add(a.Key, v.Any())
		}
	}

	return m
}
