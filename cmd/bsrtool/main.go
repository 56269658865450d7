// SPDX-License-Identifier: MIT

// Command bsrtool converts dense CSV matrices to block sparse snapshots and
// inspects, sorts or expands existing snapshots.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/katalvlaran/blocksparse/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for bsrtool.
type CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format (text, json)"`

	Convert ConvertCmd `cmd:"" help:"Convert a dense CSV matrix into a snapshot"`
	Inspect InspectCmd `cmd:"" help:"Print a summary of a snapshot"`
	Dense   DenseCmd   `cmd:"" help:"Print a snapshot as a dense CSV matrix"`
	Sort    SortCmd    `cmd:"" help:"Rewrite a snapshot with sorted block indices"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// Env carries what every command needs besides its own flags.
type Env struct {
	Logger *slog.Logger
	Out    io.Writer
}

// newEnv builds the command environment from the global flags. Logs go to
// stderr so that command output on stdout stays machine-readable.
func (c *CLI) newEnv(stdout, stderr io.Writer) (*Env, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return nil, err
	}

	return &Env{Logger: logging.New(stderr, level, format), Out: stdout}, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bsrtool"),
		kong.Description("Block sparse matrix snapshot tool"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	env, err := cli.newEnv(os.Stdout, os.Stderr)
	ctx.FatalIfErrorf(err)
	slog.SetDefault(env.Logger)
	err = ctx.Run(env)
	ctx.FatalIfErrorf(err)
}
