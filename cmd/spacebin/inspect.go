package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/spacebin/internal/logger"
	"github.com/samcharles93/spacebin/internal/report"
	"github.com/samcharles93/spacebin/pkg/spacebin"
)

var errNoPath = errors.New("missing archive path")

func inspectCmd(g *globals) *cli.Command {
	var (
		lo      layoutOptions
		sortBy  string
		format  string
		decode  []string
		showAll bool
		trim    bool
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the section directory of a space file",
		ArgsUsage: "<path>",
		Flags: append(lo.flags(),
			&cli.StringFlag{Name: "sort", Usage: "section order (disk, offset)", Value: "disk", Destination: &sortBy},
			&cli.StringFlag{Name: "format", Aliases: []string{"o"}, Usage: "output format (text, json)", Value: "text", Destination: &format},
			&cli.StringSliceFlag{Name: "decode", Aliases: []string{"d"}, Usage: "decode the section with this tag (repeatable)", Destination: &decode},
			&cli.BoolFlag{Name: "all", Usage: "decode every section that has a decoder", Destination: &showAll},
			&cli.BoolFlag{Name: "trim", Usage: "strip trailing NUL padding from decoded strings", Destination: &trim},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fail("inspect", "", errNoPath)
			}
			log := logger.FromContext(ctx).With("path", path)

			cfg := g.cfg
			applyLayoutConfig(cmd, cfg, &lo)
			if cfg.Format != "" && !cmd.IsSet("format") {
				format = cfg.Format
			}
			if cfg.Sort != "" && !cmd.IsSet("sort") {
				sortBy = cfg.Sort
			}
			if cfg.Trim != nil && !cmd.IsSet("trim") {
				trim = *cfg.Trim
			}

			order, err := report.ParseOrder(sortBy)
			if err != nil {
				return fail("inspect", "", err)
			}
			write, err := reportWriter(format)
			if err != nil {
				return fail("inspect", "", err)
			}
			tags, err := parseTags(decode)
			if err != nil {
				return fail("inspect", "", err)
			}

			a, det, err := lo.open(path)
			if err != nil {
				return fail("inspect", path, err)
			}
			defer func() { _ = a.Close() }()
			log.Debug("directory read", "layout", a.Directory.Layout().String(), "size", len(a.Data))

			reg := spacebin.Decoders()
			rep := report.New(path, a, g.cat, reg, report.Options{Order: order, Trim: trim})
			if det != nil {
				rep.SetDetection(*det)
				if det.Ambiguous {
					log.Warn("layout detection is ambiguous", "chosen", det.Layout.String(), "score", det.Score)
				}
			}

			var decoded []spacebin.Decoded
			switch {
			case showAll:
				decoded, err = reg.DecodeAll(ctx, a.Directory, a.Data)
			case len(tags) > 0:
				decoded, err = reg.DecodeTags(ctx, a.Directory, a.Data, tags...)
			}
			if err != nil {
				return fail("inspect", path, err)
			}
			for _, d := range decoded {
				log.Debug("section decoded", "tag", d.Descriptor.Tag.Display(), "index", d.Index)
			}
			rep.AddDecoded(decoded...)

			if err := write(rep, cmd.Root().Writer); err != nil {
				return fail("inspect", path, err)
			}
			return nil
		},
	}
}

func reportWriter(format string) (func(*report.Report, io.Writer) error, error) {
	switch strings.ToLower(format) {
	case "text", "":
		return (*report.Report).WriteText, nil
	case "json":
		return (*report.Report).WriteJSON, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}

func parseTags(names []string) ([]spacebin.Tag, error) {
	var tags []spacebin.Tag
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			tag, err := spacebin.ParseTag(part)
			if err != nil {
				return nil, err
			}
			tags = append(tags, tag)
		}
	}
	return tags, nil
}
