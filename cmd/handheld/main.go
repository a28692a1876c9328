// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/handheld/configs"
	"github.com/ezrec/handheld/cpu"
	"github.com/ezrec/handheld/crt"
	"github.com/ezrec/handheld/emulator"
	"github.com/ezrec/handheld/logs"
)

// Result of a single run.
type Result struct {
	Strength    int
	Screen      *crt.Screen
	Cycles      int
	Fingerprint string
}

// simulate assembles and runs a program, then measures the signal and
// renders the CRT concurrently from the same trace.
func simulate(logger *slog.Logger, cfg configs.Config, input io.Reader) (res Result, err error) {
	initial, err := cfg.Initial()
	if err != nil {
		return
	}
	sampler, err := cfg.Sampler()
	if err != nil {
		return
	}
	beam, err := cfg.Beam()
	if err != nil {
		return
	}

	asm := &cpu.Assembler{Logger: logger}
	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu := &emulator.Emulator{Logger: logger}
	trace, err := emu.Simulate(prog, initial)
	if err != nil {
		return
	}

	var g errgroup.Group
	g.Go(func() (err error) {
		res.Strength, err = sampler.Strength(trace)
		return
	})
	g.Go(func() (err error) {
		res.Screen, err = beam.Render(trace)
		if err == nil && cfg.Crt.Strict {
			err = res.Screen.Err()
		}
		return
	})
	err = g.Wait()
	if err != nil {
		return
	}

	res.Cycles = trace.Len()
	res.Fingerprint = trace.Fingerprint()

	return
}

// run is the body of the command, returning the process exit code.
func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	var config string
	var verbose bool
	var journal bool

	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&config, "config", "", ".cue configuration file")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.BoolVar(&journal, "journal", false, "Also log to the systemd journal")

	err := flags.Parse(args[1:])
	if err != nil {
		return 2
	}

	if verbose {
		logs.Level.Set(slog.LevelDebug)
	}
	logger := logs.New(logs.Options{Writer: stderr, Journal: journal})

	if flags.NArg() != 1 {
		logger.Error("handheld: expected one program file", "args", flags.Args())
		return 2
	}

	var paths []string
	if len(config) != 0 {
		paths = append(paths, config)
	}
	cfg, err := configs.NewLoader(paths...).Config()
	if err != nil {
		logger.Error("handheld: config", "file", config, "error", err)
		return 1
	}

	source := flags.Arg(0)
	input := stdin
	if source != "-" {
		inf, err := os.Open(source)
		if err != nil {
			logger.Error("handheld: open", "error", err)
			return 1
		}
		defer inf.Close()
		input = inf
	}

	res, err := simulate(logger, cfg, input)
	if err != nil {
		logger.Error("handheld: simulate", "file", source, "error", err)
		return 1
	}

	if err := res.Screen.Err(); err != nil {
		logger.Warn("handheld: crt", "error", err)
	}

	logger.Info("handheld: trace", "cycles", res.Cycles, "fingerprint", res.Fingerprint)

	fmt.Fprintf(stdout, "Signal strength: %d\n", res.Strength)
	fmt.Fprintln(stdout, "Display screen:")
	for _, line := range res.Screen.Lines() {
		fmt.Fprintln(stdout, line)
	}

	return 0
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
