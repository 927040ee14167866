package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/spacebin/pkg/spacebin"
)

// Config is the spacebin configuration file (~/.config/spacebin/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	// Layout defaults
	Stride     *int   `yaml:"stride"`
	OffsetBase string `yaml:"offset_base"`
	Detect     *bool  `yaml:"detect"`

	// Output
	Format string `yaml:"format"`
	Sort   string `yaml:"sort"`
	Trim   *bool  `yaml:"trim"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Tags adds or overrides catalog descriptions, keyed by four-character tag.
	Tags map[string]string `yaml:"tags"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "spacebin", "config.yaml")
}

// loadConfig reads path. A missing file is a zero Config unless the path was
// given explicitly.
func loadConfig(path string, explicit bool) (Config, bool, error) {
	if path == "" {
		return Config{}, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, false, nil
		}
		return Config{}, false, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}

// layoutOptions are the flags that choose how the directory is read.
type layoutOptions struct {
	stride int
	base   string
	detect bool
}

func (o *layoutOptions) flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "stride",
			Usage:       "directory record size in bytes (20 or 24)",
			Value:       spacebin.DefaultLayout.Stride,
			Destination: &o.stride,
		},
		&cli.StringFlag{
			Name:        "offset-base",
			Usage:       "what section offsets count from (absolute, directory)",
			Value:       spacebin.DefaultLayout.Base.String(),
			Destination: &o.base,
		},
		&cli.BoolFlag{
			Name:        "detect",
			Usage:       "pick stride and offset base by checking every candidate layout",
			Destination: &o.detect,
		},
	}
}

// applyLayoutConfig applies config file defaults when the corresponding
// flag was not explicitly set.
func applyLayoutConfig(c *cli.Command, cfg Config, o *layoutOptions) {
	if cfg.Stride != nil && !c.IsSet("stride") {
		o.stride = *cfg.Stride
	}
	if cfg.OffsetBase != "" && !c.IsSet("offset-base") {
		o.base = cfg.OffsetBase
	}
	if cfg.Detect != nil && !c.IsSet("detect") {
		o.detect = *cfg.Detect
	}
}

func (o *layoutOptions) layout() (spacebin.Layout, error) {
	base, err := spacebin.ParseOffsetBase(o.base)
	if err != nil {
		return spacebin.Layout{}, err
	}
	l := spacebin.Layout{Entries: spacebin.DirectoryEntries, Stride: o.stride, Base: base}
	if err := l.Validate(); err != nil {
		return spacebin.Layout{}, err
	}
	return l, nil
}

// open loads path with the configured layout, or the detected one.
func (o *layoutOptions) open(path string) (*spacebin.Archive, *spacebin.Detection, error) {
	if o.detect {
		a, det, err := spacebin.OpenDetected(path)
		if err != nil {
			return nil, nil, err
		}
		return a, &det, nil
	}
	l, err := o.layout()
	if err != nil {
		return nil, nil, err
	}
	a, err := spacebin.Open(path, l)
	return a, nil, err
}
