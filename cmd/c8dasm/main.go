// Package main implements a standalone disassembler for CHIP-8 ROM images.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/chip8"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/disasm"
	"github.com/retroenv/retrogolib/log"
)

type options struct {
	Input  string
	Output string
	Debug  bool
	Quiet  bool
}

func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flag.StringVar(&opts.Output, "o", "", "name of the output listing file, printed on console if no name given")
	flag.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flag.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flag.Parse()

	if opts.Input == "" && flag.NArg() > 0 {
		opts.Input = flag.Arg(0)
	}
	return opts
}

func main() {
	opts := parseFlags()
	logger := createLogger(opts.Debug, opts.Quiet)

	if opts.Input == "" {
		fmt.Printf("usage: %s [options] <file to disassemble>\n\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := disassembleFile(logger, opts); err != nil {
		logger.Fatal("Disassembling failed", log.Err(err))
	}
}

func disassembleFile(logger *log.Logger, opts options) error {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	logger.Debug("ROM loaded",
		log.String("file", opts.Input),
		log.Int("bytes", len(data)))

	// run the image through the loader so size errors match the emulator
	if err := chip8.New().Load(data); err != nil {
		return fmt.Errorf("validating ROM: %w", err)
	}

	listing := disasm.Listing(data, chip8.ProgramStart)

	if opts.Output == "" {
		fmt.Print(listing)
		return nil
	}
	if err := os.WriteFile(opts.Output, []byte(listing), 0o644); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	logger.Info("Listing written", log.String("file", opts.Output))
	return nil
}
