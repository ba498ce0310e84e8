/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package thumbcache is the on-disk, byte-capped LRU cache backing the
// thumbnail sheet engine's RAR/MAR tiles (decoding those is expensive: RAR
// has no random access, MAR needs the XOR/contrast pass). The original kept
// one small file per thumbnail under `<archive_dir>/.mview/<sha256>.mthumb`;
// this centralizes the same cache key scheme into one SQLite database so
// eviction can be enforced against a single byte budget instead of per
// directory. Grounded on
// aledrocomic-gocomicwriter/internal/storage/index.go (InitOrOpenIndex) and
// previews.go (GetPreview/PutPreview/EvictPreviewsToFit).
package thumbcache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"mview6/internal/log"
)

// EnvMaxBytes overrides the cache's byte budget; unset defaults to 256MB.
const EnvMaxBytes = "MVIEW6_THUMB_CACHE_MAX_BYTES"

const defaultMaxBytes = 256 * 1024 * 1024

// Cache is a single-file SQLite-backed thumbnail store, keyed by an
// opaque, caller-supplied string (see Key).
type Cache struct {
	db       *sql.DB
	maxBytes int64
}

// Open creates (if needed) and opens the cache database at path, the way
// InitOrOpenIndex does for the project index: WAL mode, a single
// connection (SQLite serializes writers anyway), busy timeout via the DSN.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("thumbcache: create dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("thumbcache: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("thumbcache: enable WAL: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS thumbs (
		key         TEXT PRIMARY KEY,
		data        BLOB NOT NULL,
		size        INTEGER NOT NULL,
		last_access TEXT NOT NULL
	);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("thumbcache: create table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_thumbs_access ON thumbs(last_access);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("thumbcache: create index: %w", err)
	}
	return &Cache{db: db, maxBytes: MaxBytesFromEnv()}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

// Key derives the cache key the original computed as
// sha256hex(archive_path + selection).
func Key(archivePath, selection string) string {
	sum := sha256.Sum256([]byte(archivePath + selection))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached bytes for key, touching last_access on a hit.
func (c *Cache) Get(key string) ([]byte, bool) {
	var data []byte
	err := c.db.QueryRow(`SELECT data FROM thumbs WHERE key = ?`, key).Scan(&data)
	if err != nil {
		return nil, false
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := c.db.Exec(`UPDATE thumbs SET last_access = ? WHERE key = ?`, now, key); err != nil {
		log.WithComponent("thumbcache").Warn("touch failed", "key", key, "err", err)
	}
	return data, true
}

// Put upserts data under key and evicts the least-recently-used entries
// until the cache is back under its byte budget.
func (c *Cache) Put(key string, data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := c.db.Exec(`INSERT INTO thumbs(key, data, size, last_access) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, size = excluded.size, last_access = excluded.last_access`,
		key, data, len(data), now)
	if err != nil {
		return fmt.Errorf("thumbcache: put: %w", err)
	}
	if c.maxBytes > 0 {
		if err := c.evictToFit(c.maxBytes); err != nil {
			log.WithComponent("thumbcache").Warn("eviction failed", "err", err)
		}
	}
	return nil
}

// evictToFit deletes oldest-by-last_access rows until the total cached size
// is at or below capBytes.
func (c *Cache) evictToFit(capBytes int64) error {
	var total int64
	if err := c.db.QueryRow(`SELECT COALESCE(SUM(size), 0) FROM thumbs`).Scan(&total); err != nil {
		return err
	}
	if total <= capBytes {
		return nil
	}

	rows, err := c.db.Query(`SELECT key, size FROM thumbs ORDER BY last_access ASC`)
	if err != nil {
		return err
	}
	var victims []string
	cur := total
	for rows.Next() {
		var key string
		var size int64
		if err := rows.Scan(&key, &size); err != nil {
			rows.Close()
			return err
		}
		victims = append(victims, key)
		cur -= size
		if cur <= capBytes {
			break
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, key := range victims {
		if _, err := c.db.Exec(`DELETE FROM thumbs WHERE key = ?`, key); err != nil {
			return err
		}
	}
	return nil
}

// MaxBytesFromEnv reads EnvMaxBytes, defaulting to 256MB if unset or invalid.
func MaxBytesFromEnv() int64 {
	v := os.Getenv(EnvMaxBytes)
	if v == "" {
		return defaultMaxBytes
	}
	var n int64
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil || n <= 0 {
		return defaultMaxBytes
	}
	return n
}
