package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/samcharles93/spacebin/internal/catalog"
	"github.com/samcharles93/spacebin/internal/logger"
)

// globals holds flags shared by every command plus the state the Before
// hook derives from them.
type globals struct {
	logLevel   string
	logFormat  string
	debug      bool
	configPath string

	cfg Config
	cat *catalog.Catalog
}

func (g *globals) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &g.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &g.logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &g.debug,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config file (default: <user config dir>/spacebin/config.yaml)",
			Destination: &g.configPath,
		},
	}
}

// before loads the config file, applies it under the flags and installs
// the logger into the context.
func (g *globals) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path, explicit := g.configPath, cmd.IsSet("config")
	if !explicit {
		path = configPath()
	}
	cfg, found, err := loadConfig(path, explicit)
	if err != nil {
		return ctx, fail("config", path, err)
	}
	g.cfg = cfg

	if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
		g.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !cmd.IsSet("log-format") {
		g.logFormat = cfg.LogFormat
	}

	level, err := logger.ParseLevel(g.logLevel)
	if err != nil {
		return ctx, fail("config", "", err)
	}
	if g.debug {
		level = slog.LevelDebug
	}
	format, err := logger.ParseFormat(g.logFormat)
	if err != nil {
		return ctx, fail("config", "", err)
	}

	w := cmd.Root().ErrWriter
	log, err := logger.Build(w, logger.Options{
		Level:  level,
		Format: format,
		Color:  isTerminal(w),
		Source: g.debug,
	})
	if err != nil {
		return ctx, fail("config", "", err)
	}

	g.cat, err = catalog.Default().With(cfg.Tags)
	if err != nil {
		return ctx, fail("config", path, err)
	}

	log.Debug("config", "path", path, "found", found, "extra_tags", len(cfg.Tags))
	return logger.WithContext(ctx, log), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
