package cmd

import (
	"context"

	"github.com/ardnew/debuglog/cli/cmd/repl"
	"github.com/ardnew/debuglog/log"
)

// Repl starts an interactive session that logs expression results.
type Repl struct {
	Level log.Level `default:"info" help:"Severity level of the results (${levels})." short:"l"`
}

// Run executes the repl command.
func (c *Repl) Run(ctx context.Context, r *log.Router) error {
	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, r, c.Level, cacheDir)
}
