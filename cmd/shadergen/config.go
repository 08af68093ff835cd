// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/shadergen"
	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/glsl"
	"github.com/gogpu/shadergen/hlsl"
	"github.com/gogpu/shadergen/msl"
	"github.com/gogpu/shadergen/process"
	"github.com/gogpu/shadergen/semantic"
)

// Config is the command configuration. A config file fills it first;
// flags given on the command line override single fields.
type Config struct {
	// Packages are the Go package patterns to load.
	Packages []string `toml:"packages" yaml:"packages"`

	// Dir is the directory packages are resolved in.
	Dir string `toml:"dir" yaml:"dir"`

	Tags []string `toml:"tags" yaml:"tags"`

	// Out is the output directory.
	Out string `toml:"out" yaml:"out"`

	Backends []backend.Kind `toml:"backends" yaml:"backends"`

	// Processors are registry names, applied in order.
	Processors    []string `toml:"processors" yaml:"processors"`
	ProcessorArgs string   `toml:"processor_args" yaml:"processor_args"`

	// LogLevel is a slog level name: debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level"`

	Concurrency int `toml:"concurrency" yaml:"concurrency"`

	Globals GlobalsConfig `toml:"globals" yaml:"globals"`

	HLSL *hlsl.Options `toml:"hlsl" yaml:"hlsl"`
	GLSL *glsl.Options `toml:"glsl" yaml:"glsl"`
	MSL  *msl.Options  `toml:"msl" yaml:"msl"`
}

// GlobalsConfig is the slot of the loose uniform block.
type GlobalsConfig struct {
	Group   uint32 `toml:"group" yaml:"group"`
	Binding uint32 `toml:"binding" yaml:"binding"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Packages: []string{"."},
		Out:      "shaders",
		Backends: backend.AllKinds(),
		LogLevel: "info",
		Globals: GlobalsConfig{
			Group:   backend.DefaultGlobalsBinding.Group,
			Binding: backend.DefaultGlobalsBinding.Binding,
		},
	}
}

// LoadConfig reads a TOML or YAML file, chosen by extension, on top of
// DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// Options converts the configuration into generation options, resolving
// processors in reg.
func (c *Config) Options(reg *process.Registry, logger *slog.Logger) (*shadergen.Options, error) {
	if len(c.Backends) == 0 {
		return nil, fmt.Errorf("no backends configured")
	}
	procs, err := reg.Resolve(c.Processors)
	if err != nil {
		return nil, err
	}
	if _, err := process.ParseArgs(c.ProcessorArgs); err != nil {
		return nil, err
	}
	return &shadergen.Options{
		Backends:       c.Backends,
		Processors:     procs,
		ProcessorArgs:  c.ProcessorArgs,
		HLSL:           c.HLSL,
		GLSL:           c.GLSL,
		MSL:            c.MSL,
		GlobalsBinding: semantic.ResourceBinding{Group: c.Globals.Group, Binding: c.Globals.Binding},
		Logger:         logger,
		Concurrency:    c.Concurrency,
	}, nil
}
