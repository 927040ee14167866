package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/spacebin/pkg/spacebin"
)

func tagsCmd(g *globals) *cli.Command {
	return &cli.Command{
		Name:  "tags",
		Usage: "List known section tags and which ones can be decoded",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg := spacebin.Decoders()
			tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "TAG\tDESCRIPTION\tDECODER")
			for tag, desc := range g.cat.All() {
				if desc == "" {
					desc = "-"
				}
				dec := ""
				if _, ok := reg.Lookup(tag); ok {
					dec = "yes"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", tag, desc, dec)
			}
			if err := tw.Flush(); err != nil {
				return fail("tags", "", err)
			}
			return nil
		},
	}
}
