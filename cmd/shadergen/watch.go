// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long the watcher waits for a burst of writes to end.
const settle = 200 * time.Millisecond

// watchDirs returns the directories holding the configured packages.
// Patterns ending in "/..." include every subdirectory except hidden ones,
// testdata and the output directory.
func watchDirs(cfg *Config) ([]string, error) {
	base := cfg.Dir
	if base == "" {
		base = "."
	}
	out, _ := filepath.Abs(filepath.Join(base, cfg.Out))
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		if abs, err := filepath.Abs(d); err == nil && !seen[abs] && abs != out {
			seen[abs] = true
			dirs = append(dirs, abs)
		}
	}
	for _, p := range cfg.Packages {
		if !strings.HasPrefix(p, ".") && !filepath.IsAbs(p) {
			// Import paths are resolved by the go command; watch the base.
			add(base)
			continue
		}
		dir := p
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(base, dir)
		}
		rest, recursive := strings.CutSuffix(dir, string(filepath.Separator)+"...")
		if !recursive {
			rest, recursive = strings.CutSuffix(dir, "/...")
		}
		if !recursive {
			add(dir)
			continue
		}
		err := filepath.WalkDir(rest, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return err
			}
			name := d.Name()
			if path != rest && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata") {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

// watch runs once, then again after every settled change to a Go file,
// until interrupted.
func (r *runner) watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dirs, err := watchDirs(r.cfg)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			return err
		}
	}
	r.logger.Info("watching", "dirs", len(dirs))
	_ = r.run()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".go" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				r.logger.Debug("change", "file", event.Name, "op", event.Op.String())
				timer.Reset(settle)
			}
		case <-timer.C:
			_ = r.run()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("watcher error", "err", err)
		case <-interrupt:
			return nil
		}
	}
}
