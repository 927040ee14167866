package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	g := &globals{}
	app := &cli.Command{
		Name:      "spacebin",
		Usage:     "Inspect space.bin chunk archives",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     g.flags(),
		// main reports errors itself; the default handler would call os.Exit.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			inspectCmd(g),
			checkCmd(g),
			tagsCmd(g),
			versionCmd(),
		},
	}
	for _, c := range app.Commands {
		c.Before = g.before
	}
	return app
}

func exitCode(err error) int {
	var ec cli.ExitCoder
	if errors.As(err, &ec) && ec.ExitCode() != 0 {
		return ec.ExitCode()
	}
	return 1
}

// fail formats a diagnostic as "<operation>: [<path>] <error>".
func fail(op, path string, err error) error {
	if path == "" {
		return cli.Exit(fmt.Sprintf("%s: %v", op, err), 1)
	}
	return cli.Exit(fmt.Sprintf("%s: [%s] %v", op, path, err), 1)
}
