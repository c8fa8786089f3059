package cmd

import (
	"context"
	"strconv"

	"github.com/ardnew/debuglog/format"
	"github.com/ardnew/debuglog/log"
)

// Levels lists the severity levels with their headers and whether each sink
// currently admits them.
type Levels struct{}

// Run executes the levels command.
func (Levels) Run(ctx context.Context, r *log.Router) error {
	for name := range log.Levels() {
		level := log.ParseLevel(name)

		r.Println(
			name,
			strconv.Quote(r.Header(level)),
			format.KV(
				"primary", r.Level().Admits(level),
				"file", r.HasFile() && r.FileLevel().Admits(level),
			),
		)
	}

	return nil
}
