/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config persists the small amount of user-editable state mview6
// keeps between runs in mview6.json: the bookmark list, the global contrast
// adjustment and the logging settings. The file lives under the user's
// config directory as plain JSON, per the platform conventions
// os.UserConfigDir already knows about. The on-exit navigation cache is a
// separate file in the same directory, handled by internal/navcache.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Bookmark is a single named shortcut into a folder.
type Bookmark struct {
	Name   string `json:"name"`
	Folder string `json:"folder"`
}

// AppConfig is the persisted contents of mview6.json.
type AppConfig struct {
	Bookmarks []Bookmark `json:"bookmarks"`
	Contrast  *int32     `json:"contrast,omitempty"`
	Logging   Logging    `json:"logging,omitempty"`
}

// Logging mirrors the environment-variable knobs in internal/log, so a user
// can pin a log level/format/file without having to export shell variables.
type Logging struct {
	Level  string `json:"level,omitempty"`
	Format string `json:"format,omitempty"`
	Source bool   `json:"source,omitempty"`
	File   string `json:"file,omitempty"`
}

// Env var names that override the persisted logging config. These mirror
// MVIEW_LOG_* from internal/log so both layers share one naming scheme.
const (
	EnvLogLevel  = "MVIEW_LOG_LEVEL"
	EnvLogFormat = "MVIEW_LOG_FORMAT"
	EnvLogSource = "MVIEW_LOG_SOURCE"
	EnvLogFile   = "MVIEW_LOG_FILE"
)

const configDirName = "mview6"
const configFileName = "mview6.json"

// Defaults returns the bookmark set mview6 populates a fresh config with on
// first run: Home, Pictures, Documents, Downloads, skipping any that don't
// resolve or don't exist on this machine.
func Defaults() AppConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		return AppConfig{}
	}
	candidates := []Bookmark{
		{Name: "Home", Folder: home},
		{Name: "Pictures", Folder: filepath.Join(home, "Pictures")},
		{Name: "Documents", Folder: filepath.Join(home, "Documents")},
		{Name: "Downloads", Folder: filepath.Join(home, "Downloads")},
	}
	cfg := AppConfig{}
	for _, b := range candidates {
		if info, err := os.Stat(b.Folder); err == nil && info.IsDir() {
			cfg.Bookmarks = append(cfg.Bookmarks, b)
		}
	}
	return cfg
}

// Dir returns <config>/mview6, creating it if necessary.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, configDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Path returns the path to mview6.json.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads mview6.json, seeding it with Defaults() and writing it out if it
// does not exist yet (first run). Environment overrides for the logging
// section are applied on top of whatever was on disk.
func Load() (AppConfig, error) {
	path, err := Path()
	if err != nil {
		return AppConfig{}, err
	}

	cfg, readErr := read(path)
	if readErr != nil {
		if !os.IsNotExist(readErr) {
			return Defaults(), readErr
		}
		cfg = Defaults()
		if err := Save(cfg); err != nil {
			return cfg, err
		}
	}

	applyLoggingEnvOverrides(&cfg.Logging)
	return cfg, nil
}

func read(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Save writes cfg to mview6.json as indented JSON.
func Save(cfg AppConfig) error {
	path, err := Path()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ContrastOrZero returns the configured contrast adjustment, or 0 if unset.
func (c AppConfig) ContrastOrZero() int32 {
	if c.Contrast == nil {
		return 0
	}
	return *c.Contrast
}

// SetContrast records a new contrast value on cfg.
func (c *AppConfig) SetContrast(v int32) {
	cv := v
	c.Contrast = &cv
}

// AddBookmark appends a bookmark, replacing any existing entry with the same
// folder so re-bookmarking a path renames it instead of duplicating it.
func (c *AppConfig) AddBookmark(name, folder string) {
	for i := range c.Bookmarks {
		if c.Bookmarks[i].Folder == folder {
			c.Bookmarks[i].Name = name
			return
		}
	}
	c.Bookmarks = append(c.Bookmarks, Bookmark{Name: name, Folder: folder})
}

// RemoveBookmark deletes the bookmark pointing at folder, if any.
func (c *AppConfig) RemoveBookmark(folder string) {
	out := c.Bookmarks[:0]
	for _, b := range c.Bookmarks {
		if b.Folder != folder {
			out = append(out, b)
		}
	}
	c.Bookmarks = out
}

func applyLoggingEnvOverrides(l *Logging) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		l.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		l.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		l.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		l.File = v
	}
}
