package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/spacebin/internal/logger"
	"github.com/samcharles93/spacebin/internal/report"
	"github.com/samcharles93/spacebin/pkg/spacebin"
)

func checkCmd(g *globals) *cli.Command {
	var (
		lo     layoutOptions
		format string
	)

	return &cli.Command{
		Name:      "check",
		Usage:     "Validate every directory entry against the file",
		ArgsUsage: "<path>",
		Flags: append(lo.flags(),
			&cli.StringFlag{Name: "format", Aliases: []string{"o"}, Usage: "output format (text, json)", Value: "text", Destination: &format},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fail("check", "", errNoPath)
			}
			log := logger.FromContext(ctx).With("path", path)

			applyLayoutConfig(cmd, g.cfg, &lo)
			if g.cfg.Format != "" && !cmd.IsSet("format") {
				format = g.cfg.Format
			}

			a, det, err := lo.open(path)
			if err != nil {
				return fail("check", path, err)
			}
			defer func() { _ = a.Close() }()

			findings := spacebin.Check(a.Directory, len(a.Data))
			log.Debug("checked", "layout", a.Directory.Layout().String(), "findings", len(findings))

			w := cmd.Root().Writer
			switch strings.ToLower(format) {
			case "json":
				rep := report.New(path, a, g.cat, nil, report.Options{})
				if det != nil {
					rep.SetDetection(*det)
				}
				rep.AddFindings(findings...)
				if err := rep.WriteJSON(w); err != nil {
					return fail("check", path, err)
				}
			case "text", "":
				if det != nil {
					_, _ = fmt.Fprintf(w, "layout: %s (detected, score %d)\n", det.Layout, det.Score)
				}
				for _, f := range findings {
					_, _ = fmt.Fprintln(w, f.String())
				}
				if len(findings) == 0 {
					_, _ = fmt.Fprintln(w, "ok")
				}
			default:
				return fail("check", "", fmt.Errorf("unknown output format %q (want text or json)", format))
			}

			if spacebin.HasErrors(findings) {
				n := 0
				for _, f := range findings {
					if f.Severity == spacebin.SeverityError {
						n++
					}
				}
				return fail("check", path, fmt.Errorf("%d invalid section descriptor(s)", n))
			}
			return nil
		},
	}
}
