// Command huff compresses and decompresses files with a Huffman code.
//
//	huff compress [-o outfile] [-v] [-cache n] file...
//	huff decompress [-o outfile] [-v] [-max n] file.huff...
//	huff table file
//
// Without -o, compress writes file.huff and decompress strips the suffix.
// Installed under the name puff, the command decompresses.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/seiflotfy/huff"
	"github.com/seiflotfy/huff/internal/config"
	"github.com/seiflotfy/huff/internal/logger"
)

func main() {
	os.Exit(run(os.Args, os.Getenv, os.Stdout, os.Stderr))
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, getenv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	log := logger.New(stderr, cfg.LogLevel)
	app := &app{cfg: cfg, log: log, stdout: stdout}
	if cfg.Mode == config.ModeCompress {
		app.enc = huff.NewEncoder(huff.WithTreeCache(cfg.TreeCacheSize))
	}

	for _, in := range cfg.Inputs {
		if err := app.process(in); err != nil {
			log.Errorf("%s: %v", in, err)
			return 1
		}
	}
	return 0
}

type app struct {
	cfg    *config.Config
	log    logger.Logger
	stdout io.Writer
	enc    *huff.Encoder
}

func (a *app) process(in string) error {
	switch a.cfg.Mode {
	case config.ModeTable:
		return a.table(in)
	case config.ModeDecompress:
		return a.convert(in, a.cfg.OutputFor(in), a.decompress)
	default:
		return a.convert(in, a.cfg.OutputFor(in), a.compress)
	}
}

// convert opens in, creates out and runs fn over them. A failed run removes
// the partial output.
func (a *app) convert(in, out string, fn func(w io.Writer, r io.ReadSeeker) (*huff.Stats, error)) (err error) {
	inputFile, err := os.Open(in)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer inputFile.Close()

	if err := checkDistinct(inputFile, out); err != nil {
		return err
	}
	outputFile, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "opening output")
	}
	defer func() {
		if cerr := outputFile.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "closing output")
		}
		if err != nil {
			os.Remove(out)
		}
	}()

	stats, err := fn(outputFile, inputFile)
	if err != nil {
		return err
	}
	a.log.Infof("%s -> %s: %d -> %d bytes", in, out, stats.InputBytes, stats.OutputBytes)
	a.log.Debugf("%s: tree %d bits (+%d pad), payload %d bits (+%d pad), ratio %.3f",
		in, stats.TreeBits, stats.TreePadding, stats.PayloadBits, stats.PayloadPadding, stats.Ratio())
	if a.cfg.Verbose {
		// the output is complete, a failed table print must not remove it
		if terr := writeTable(a.stdout, stats); terr != nil {
			a.log.Errorf("%s: printing code table: %v", in, terr)
		}
	}
	return nil
}

// checkDistinct fails when out names the already opened input, which
// os.Create would truncate before it is read.
func checkDistinct(input *os.File, out string) error {
	outInfo, err := os.Stat(out)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "checking output")
	}
	inInfo, err := input.Stat()
	if err != nil {
		return errors.Wrap(err, "checking input")
	}
	if os.SameFile(inInfo, outInfo) {
		return errors.Wrapf(config.ErrUsage, "output %s is the input file", out)
	}
	return nil
}

func (a *app) compress(w io.Writer, r io.ReadSeeker) (*huff.Stats, error) {
	return a.enc.Encode(w, r)
}

func (a *app) decompress(w io.Writer, r io.ReadSeeker) (*huff.Stats, error) {
	return huff.NewDecoder(huff.WithMaxDecodedSize(a.cfg.MaxDecodedSize)).Decode(w, r)
}

func (a *app) table(in string) error {
	f, err := os.Open(in)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer f.Close()

	stats, err := huff.NewEncoder().Encode(io.Discard, f)
	if err != nil {
		return err
	}
	return writeTable(a.stdout, stats)
}
