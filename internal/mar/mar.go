/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package mar reads MView6's own MAR2 archive format and the MP? image
// container it wraps around individual entries.
package mar

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"mview6/internal/classify"
)

// contrastAdjust is a process-wide byte offset added to every container
// mode before XOR-decoding, letting the UI brighten or darken MP payloads
// without touching the files on disk.
var contrastAdjust atomic.Int32

// SetContrast sets the global contrast adjustment applied to MP container
// payloads.
func SetContrast(v int32) { contrastAdjust.Store(v) }

// Contrast returns the current global contrast adjustment.
func Contrast() int32 { return contrastAdjust.Load() }

const (
	headerMagic = "MAR2"
	dirMagic    = "DIR2"
)

// Entry is one listed item inside a MAR archive directory.
type Entry struct {
	Offset    uint64
	Filename  string
	ImageSize uint32
	Date      time.Time
}

// List reads path's directory and returns its entries, filtering out any
// whose filename classifies as classify.Unsupported.
func List(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	startOfDirectory, mode, err := readHeader(f)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(int64(startOfDirectory), io.SeekStart); err != nil {
		return nil, fmt.Errorf("mar: seek to directory: %w", err)
	}

	magic, err := readXored(f, 4, mode)
	if err != nil {
		return nil, fmt.Errorf("mar: read directory magic: %w", err)
	}
	if string(magic) != dirMagic {
		return nil, fmt.Errorf("mar: missing %q directory magic", dirMagic)
	}

	numEntries, err := readUint32(f)
	if err != nil {
		return nil, fmt.Errorf("mar: read entry count: %w", err)
	}

	entries := make([]Entry, 0, numEntries)
	for i := uint32(0); i < numEntries; i++ {
		entry, err := readEntry(f, mode)
		if err != nil {
			return nil, fmt.Errorf("mar: read entry %d: %w", i, err)
		}
		if classify.TypeFromExtension(extWithoutDot(entry.Filename)) == classify.Unsupported {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// readHeader validates the 12-byte MAR2 header and returns the directory
// offset and the per-archive XOR mode (the header's fourth byte).
func readHeader(r io.Reader) (startOfDirectory uint64, mode byte, err error) {
	var buf [12]byte
	if _, err = io.ReadFull(r, buf[:]); err != nil {
		return 0, 0, fmt.Errorf("mar: read header: %w", err)
	}
	if string(buf[0:4]) != headerMagic {
		return 0, 0, fmt.Errorf("mar: not a MAR archive")
	}
	return binary.LittleEndian.Uint64(buf[4:12]), buf[3], nil
}

func readEntry(r io.Reader, mode byte) (Entry, error) {
	if _, err := readUint32(r); err != nil { // record length, unused
		return Entry{}, err
	}
	offset, err := readUint64(r)
	if err != nil {
		return Entry{}, err
	}
	imageSize, err := readUint32(r)
	if err != nil {
		return Entry{}, err
	}
	dateUnix, err := readUint64(r)
	if err != nil {
		return Entry{}, err
	}
	filenameLength, err := readUint32(r)
	if err != nil {
		return Entry{}, err
	}
	filenameBytes, err := readXored(r, int(filenameLength), mode)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Offset:    offset,
		Filename:  string(filenameBytes),
		ImageSize: imageSize,
		Date:      time.Unix(int64(dateUnix), 0),
	}, nil
}

func extWithoutDot(name string) string {
	for i := len(name) - 1; i >= 0 && name[i] != '/'; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return ""
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// readXored reads exactly n bytes and XOR-decodes them with mode plus the
// current global contrast adjustment.
func readXored(r io.Reader, n int, mode byte) ([]byte, error) {
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	xorInPlace(data, mode)
	return data, nil
}

func readAllXored(r io.Reader, mode byte) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	xorInPlace(data, mode)
	return data, nil
}

func xorInPlace(data []byte, mode byte) {
	m := mode + byte(Contrast())
	for i := range data {
		data[i] ^= m
	}
}

// Extract opens path, seeks to offset and decodes the MP? container found
// there, returning the embedded image bytes (and comment, if any).
func Extract(path string, offset uint64) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := f.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("mar: seek to entry: %w", err)
	}
	return ReadContainer(f, false)
}

// ExtractThumbnail is like Extract but decodes only the embedded thumbnail,
// failing if the container type carries none.
func ExtractThumbnail(path string, offset uint64) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := f.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("mar: seek to entry: %w", err)
	}
	return ReadContainer(f, true)
}
