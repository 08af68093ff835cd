// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command shadergen generates HLSL, GLSL and MSL from Go shader packages.
//
// Usage:
//
//	shadergen [options] [packages]
//
// Examples:
//
//	shadergen ./shaders                        # All backends into ./shaders
//	shadergen -backends hlsl,metal -out gen .  # Two backends into ./gen
//	shadergen -config shadergen.toml -watch    # Regenerate on change
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/gogpu/shadergen"
	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/gofront"
	"github.com/gogpu/shadergen/process"
)

const shadergenVersion = "0.1.0-dev"

type flags struct {
	config        string
	out           string
	backends      string
	processors    string
	processorArgs string
	print         bool
	watch         bool
	verbose       bool
	version       bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*flags, error) {
	f := &flags{}
	fs.StringVar(&f.config, "config", "", "config file (.toml, .yaml or .yml)")
	fs.StringVar(&f.out, "out", "", "output directory (default \"shaders\")")
	fs.StringVar(&f.backends, "backends", "", "comma separated backends: "+kindList())
	fs.StringVar(&f.processors, "processors", "", "comma separated processors to apply in order")
	fs.StringVar(&f.processorArgs, "processor-args", "", "arguments passed to every processor, e.g. 'banner=\"my header\"'")
	fs.BoolVar(&f.print, "print", false, "print generated sources to stdout")
	fs.BoolVar(&f.watch, "watch", false, "regenerate when Go files change")
	fs.BoolVar(&f.verbose, "v", false, "debug logging")
	fs.BoolVar(&f.version, "version", false, "print version")
	return f, fs.Parse(args)
}

func kindList() string {
	var names []string
	for _, k := range backend.AllKinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ",")
}

// resolveConfig loads the config file, if any, and applies the flags that
// were set on the command line.
func resolveConfig(fs *flag.FlagSet, f *flags) (*Config, error) {
	cfg := DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = LoadConfig(f.config); err != nil {
			return nil, err
		}
	}
	var err error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "out":
			cfg.Out = f.out
		case "backends":
			var kinds []backend.Kind
			kinds, err = backend.ParseKinds(f.backends)
			cfg.Backends = kinds
		case "processors":
			cfg.Processors = strings.Split(f.processors, ",")
		case "processor-args":
			cfg.ProcessorArgs = f.processorArgs
		case "v":
			if f.verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
	if err != nil {
		return nil, err
	}
	if args := fs.Args(); len(args) > 0 {
		cfg.Packages = args
	}
	return cfg, nil
}

func main() {
	fs := flag.NewFlagSet("shadergen", flag.ExitOnError)
	fs.Usage = func() { usage(fs) }
	f, _ := parseFlags(fs, os.Args[1:])

	if f.version {
		fmt.Printf("shadergen version %s\n", shadergenVersion)
		return
	}

	cfg, err := resolveConfig(fs, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	r := &runner{cfg: cfg, reg: process.NewRegistry(), logger: logger, print: f.print}
	if f.watch {
		if err := r.watch(); err != nil {
			logger.Error("watch stopped", "err", err)
			os.Exit(1)
		}
		return
	}
	if err := r.run(); err != nil {
		os.Exit(1)
	}
}

// runner performs one generation pass per call to run.
type runner struct {
	cfg    *Config
	reg    *process.Registry
	logger *slog.Logger
	print  bool
}

func (r *runner) run() error {
	prog, err := gofront.Load(gofront.Config{Dir: r.cfg.Dir, Tags: r.cfg.Tags, Logger: r.logger}, r.cfg.Packages...)
	if err != nil {
		var el gofront.Errors
		if errors.As(err, &el) {
			fmt.Fprint(os.Stderr, el.FormatAll())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return err
	}
	opts, err := r.cfg.Options(r.reg, r.logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	res, genErr := shadergen.Generate(prog, opts)
	if res == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", genErr)
		return genErr
	}

	written, err := writeResult(r.cfg.Out, res)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		return err
	}
	r.logger.Debug("wrote sources", "files", len(written), "dir", r.cfg.Out)
	if r.print {
		color := termenv.NewOutput(os.Stdout).Profile != termenv.Ascii
		if err := printResult(os.Stdout, res, color); err != nil {
			return err
		}
	}
	summary(os.Stderr, res, genErr)
	return genErr
}

func usage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: shadergen [options] [packages]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  shadergen ./shaders                       All backends into ./shaders\n")
	fmt.Fprintf(os.Stderr, "  shadergen -backends hlsl,metal -out gen . Two backends into ./gen\n")
	fmt.Fprintf(os.Stderr, "  shadergen -config shadergen.toml -watch   Regenerate on change\n")
}
