package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/debuglog/cli/cmd"
	"github.com/ardnew/debuglog/log"
	"github.com/ardnew/debuglog/pkg"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// CLI is the top-level command-line interface for debuglog.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Source []string `help:"Input source file(s) or '-' for stdin" name:"source" short:"s" type:"existingfile"`

	Version kong.VersionFlag `help:"Print version and exit"`

	Emit   cmd.Emit   `cmd:"" default:"withargs" help:"Log a statement at a severity level"`
	Print  cmd.Print  `cmd:""                    help:"Print a statement regardless of level"`
	Fmt    cmd.Fmt    `cmd:""                    help:"Render YAML or JSON documents"`
	Eval   cmd.Eval   `cmd:""                    help:"Log the results of expressions"`
	Assert cmd.Assert `cmd:""                    help:"Halt when an expression is false"`
	Levels cmd.Levels `cmd:""                    help:"List severity levels"`
	Repl   cmd.Repl   `cmd:""                    help:"Interactive expression logger"`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the debuglog CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) (err error) {
	var cli CLI

	err = pkg.MkdirAll()
	if err != nil {
		return err
	}

	configFilePath := pkg.ConfigPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath + ".yaml",
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"version":            strings.TrimSpace(pkg.Version),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for router flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.Bind(log.Default()),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(loadTOML, configFilePath+".toml"),
		kong.Configuration(loadYAML, configFilePath+".yaml"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	defer func() { err = errors.Join(err, cmd.CloseSourceFiles(ctx)) }()

	// Finalize router configuration with all parsed values, including those
	// the early scan does not handle.
	stop, err := cli.Log.start(ctx)
	if err != nil {
		return err
	}

	defer stop()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx)
}
