/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"testing"
)

func withTempConfigDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	old := os.Getenv("XDG_CONFIG_HOME")
	_ = os.Setenv("XDG_CONFIG_HOME", dir)
	t.Cleanup(func() { _ = os.Setenv("XDG_CONFIG_HOME", old) })
}

func TestLoadSeedsDefaultsOnFirstRun(t *testing.T) {
	withTempConfigDir(t)

	if _, err := Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected mview6.json to be written on first run: %v", err)
	}
}

func TestSaveAndLoadRoundTripsBookmarksAndContrast(t *testing.T) {
	withTempConfigDir(t)

	cfg := Defaults()
	cfg.AddBookmark("Comics", "/tmp/comics")
	cfg.SetContrast(12)
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.ContrastOrZero() != 12 {
		t.Fatalf("ContrastOrZero() = %d, want 12", got.ContrastOrZero())
	}
	found := false
	for _, b := range got.Bookmarks {
		if b.Name == "Comics" && b.Folder == "/tmp/comics" {
			found = true
		}
	}
	if !found {
		t.Fatalf("bookmark not round-tripped: %#v", got.Bookmarks)
	}
}

func TestAddBookmarkReplacesSameFolder(t *testing.T) {
	cfg := AppConfig{}
	cfg.AddBookmark("Old", "/a")
	cfg.AddBookmark("New", "/a")
	if len(cfg.Bookmarks) != 1 {
		t.Fatalf("expected a single bookmark, got %d", len(cfg.Bookmarks))
	}
	if cfg.Bookmarks[0].Name != "New" {
		t.Fatalf("expected bookmark renamed to New, got %q", cfg.Bookmarks[0].Name)
	}
}

func TestRemoveBookmark(t *testing.T) {
	cfg := AppConfig{}
	cfg.AddBookmark("A", "/a")
	cfg.AddBookmark("B", "/b")
	cfg.RemoveBookmark("/a")
	if len(cfg.Bookmarks) != 1 || cfg.Bookmarks[0].Folder != "/b" {
		t.Fatalf("expected only /b left, got %#v", cfg.Bookmarks)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	withTempConfigDir(t)

	oldLevel := os.Getenv(EnvLogLevel)
	oldFmt := os.Getenv(EnvLogFormat)
	oldSrc := os.Getenv(EnvLogSource)
	oldFile := os.Getenv(EnvLogFile)
	_ = os.Setenv(EnvLogLevel, "error")
	_ = os.Setenv(EnvLogFormat, "json")
	_ = os.Setenv(EnvLogSource, "1")
	_ = os.Setenv(EnvLogFile, "/tmp/mview6.log")
	t.Cleanup(func() {
		_ = os.Setenv(EnvLogLevel, oldLevel)
		_ = os.Setenv(EnvLogFormat, oldFmt)
		_ = os.Setenv(EnvLogSource, oldSrc)
		_ = os.Setenv(EnvLogFile, oldFile)
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/mview6.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}
