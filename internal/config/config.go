// Package config resolves huff command settings from arguments and the
// environment.
package config

import (
	"flag"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/seiflotfy/huff/internal/logger"
)

// Mode selects what the command does.
type Mode string

const (
	ModeCompress   Mode = "compress"
	ModeDecompress Mode = "decompress"
	ModeTable      Mode = "table"
)

// Suffix is appended to compressed file names.
const Suffix = ".huff"

// Environment variables consulted by Load.
const (
	EnvTreeCache  = "HUFF_TREE_CACHE"
	EnvLogLevel   = "HUFF_LOG_LEVEL"
	EnvMaxDecoded = "HUFF_MAX_DECODED"
)

const defaultTreeCache = 16

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("usage: huff compress|decompress|table [-o outfile] [-v] [-cache n] [-max n] file...")

// Config is the resolved command configuration.
type Config struct {
	Mode           Mode
	Output         string // explicit -o target, single input only
	Verbose        bool
	TreeCacheSize  int
	MaxDecodedSize int64
	LogLevel       slog.Level
	Inputs         []string
}

// Load parses args, os.Args style with the program name first. Invoked as
// "puff" the command decompresses without a subcommand. getenv supplies
// environment overrides; flags win over the environment.
func Load(args []string, getenv func(string) string) (*Config, error) {
	if len(args) == 0 {
		return nil, ErrUsage
	}
	cfg := &Config{TreeCacheSize: defaultTreeCache, LogLevel: slog.LevelInfo}
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}

	rest := args[1:]
	if filepath.Base(args[0]) == "puff" {
		cfg.Mode = ModeDecompress
	} else {
		if len(rest) == 0 {
			return nil, ErrUsage
		}
		switch m := Mode(rest[0]); m {
		case ModeCompress, ModeDecompress, ModeTable:
			cfg.Mode = m
		default:
			return nil, errors.Wrapf(ErrUsage, "unknown command %q", rest[0])
		}
		rest = rest[1:]
	}

	fs := flag.NewFlagSet(string(cfg.Mode), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Output, "o", "", "output file")
	fs.BoolVar(&cfg.Verbose, "v", false, "print statistics and the code table")
	fs.IntVar(&cfg.TreeCacheSize, "cache", cfg.TreeCacheSize, "trees kept across inputs (0 disables)")
	fs.Int64Var(&cfg.MaxDecodedSize, "max", cfg.MaxDecodedSize, "maximum decompressed size in bytes (0 = unlimited)")
	if err := fs.Parse(rest); err != nil {
		return nil, errors.Wrap(ErrUsage, err.Error())
	}
	cfg.Inputs = fs.Args()

	if cfg.Verbose && cfg.LogLevel > slog.LevelDebug {
		cfg.LogLevel = slog.LevelDebug
	}
	return cfg, cfg.validate()
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if getenv == nil {
		return nil
	}
	if v := getenv(EnvTreeCache); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvTreeCache)
		}
		c.TreeCacheSize = n
	}
	if v := getenv(EnvMaxDecoded); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvMaxDecoded)
		}
		c.MaxDecodedSize = n
	}
	if v := getenv(EnvLogLevel); v != "" {
		level, err := logger.ParseLevel(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvLogLevel)
		}
		c.LogLevel = level
	}
	return nil
}

func (c *Config) validate() error {
	switch {
	case len(c.Inputs) == 0:
		return errors.Wrap(ErrUsage, "no input files")
	case c.Output != "" && len(c.Inputs) > 1:
		return errors.Wrap(ErrUsage, "-o needs exactly one input")
	case c.Output != "" && c.Mode == ModeTable:
		return errors.Wrap(ErrUsage, "table does not write files")
	case c.TreeCacheSize < 0:
		return errors.Errorf("tree cache size %d is negative", c.TreeCacheSize)
	case c.MaxDecodedSize < 0:
		return errors.Errorf("maximum decoded size %d is negative", c.MaxDecodedSize)
	}
	if c.Mode == ModeDecompress && c.Output == "" {
		for _, in := range c.Inputs {
			if !strings.HasSuffix(in, Suffix) || len(in) == len(Suffix) {
				return errors.Errorf("file to decompress must be named something%s: %s", Suffix, in)
			}
		}
	}
	return nil
}

// OutputFor returns the file the command writes for input.
func (c *Config) OutputFor(input string) string {
	if c.Output != "" {
		return c.Output
	}
	if c.Mode == ModeDecompress {
		return strings.TrimSuffix(input, Suffix)
	}
	return input + Suffix
}
