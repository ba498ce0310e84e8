/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mview6/internal/backend"
	"mview6/internal/config"
	"mview6/internal/crash"
	applog "mview6/internal/log"
	"mview6/internal/navcache"
	"mview6/internal/renderworker"
	"mview6/internal/thumbcache"
	"mview6/internal/version"
	"mview6/internal/windowcoord"
)

func usage() {
	fmt.Println("mview6 — image and archive viewer")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  mview6 [path]               Open path (file or directory); defaults to the current directory")
	fmt.Println("  mview6 version|-v|--version Show version")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	defer crash.Recover()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println(version.String())
			return
		case "-h", "--help", "help":
			usage()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}
	if len(cfg.Logging.Level) > 0 || len(cfg.Logging.Format) > 0 || len(cfg.Logging.File) > 0 {
		applog.Init(applog.Options{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.Source,
			File:      cfg.Logging.File,
		})
		l = applog.WithComponent("cli")
	}

	nav, err := navcache.Load()
	if err != nil {
		l.Warn("navigation cache load failed, starting empty", slog.Any("err", err))
		nav = navcache.New()
	}

	initial := openInitial(l, args)

	worker := renderworker.New()
	go worker.Run()
	defer worker.Close()

	thumbDir, err := config.Dir()
	if err != nil {
		l.Warn("config dir unavailable, thumbnail cache disabled", slog.Any("err", err))
	} else {
		cache, err := thumbcache.Open(filepath.Join(thumbDir, "thumbs.sqlite"))
		if err != nil {
			l.Warn("thumbnail cache open failed", slog.Any("err", err))
		} else {
			defer cache.Close()
		}
	}

	coord := windowcoord.New(initial, nav)
	if len(args) > 1 {
		if info, err := os.Stat(args[1]); err == nil && !info.IsDir() {
			name := filepath.Base(args[1])
			for i, r := range coord.Rows() {
				if r.Name == name {
					coord.SetCursor(i)
					break
				}
			}
		}
	}
	l.Info("opened", slog.String("path", coord.Backend().Path()), slog.Int("rows", len(coord.Rows())))

	if err := coord.SaveNavigation(); err != nil {
		l.Warn("navigation cache save failed", slog.Any("err", err))
	}
}

// openInitial resolves the backend mview6 starts browsing: the directory
// argument if one was given, the directory containing a file argument (with
// the cursor left for the caller to position on that file's name), or the
// current working directory if none was given.
func openInitial(l *slog.Logger, args []string) backend.Backend {
	if len(args) < 2 {
		return backend.CurrentDir()
	}
	path := args[1]
	abs, err := filepath.Abs(path)
	if err != nil {
		l.Warn("could not resolve path, opening current directory", slog.String("path", path), slog.Any("err", err))
		return backend.CurrentDir()
	}
	info, err := os.Stat(abs)
	if err != nil {
		l.Warn("path does not exist, opening current directory", slog.String("path", abs), slog.Any("err", err))
		return backend.CurrentDir()
	}
	if info.IsDir() {
		return backend.New(abs)
	}
	return backend.New(filepath.Dir(abs))
}
