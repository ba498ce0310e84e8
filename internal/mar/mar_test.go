/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package mar

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func xorBytes(data []byte, mode byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ mode
	}
	return out
}

// buildFixture writes a minimal MAR archive with a single entry named name
// wrapping a "T"-type MP container (no thumbnail, explicit image_length)
// around payload, returning its path.
func buildFixture(t *testing.T, name string, payload []byte) string {
	t.Helper()

	const headerMode = '2' // fourth byte of "MAR2"
	const containerMode = 7

	var container bytes.Buffer
	container.WriteString("MP")
	container.WriteByte('T')
	container.WriteByte(containerMode)
	binary.Write(&container, binary.LittleEndian, uint32(0)) // comment_length
	binary.Write(&container, binary.LittleEndian, uint32(0)) // thumb_length
	binary.Write(&container, binary.LittleEndian, uint32(len(payload)))
	container.Write(xorBytes(payload, containerMode))
	containerOffset := uint64(12)

	var buf bytes.Buffer
	buf.WriteString(headerMagic)
	// placeholder for start_of_directory, patched below
	binary.Write(&buf, binary.LittleEndian, uint64(0))
	buf.Write(container.Bytes())

	startOfDirectory := uint64(buf.Len())

	buf.Write(xorBytes([]byte(dirMagic), headerMode))
	binary.Write(&buf, binary.LittleEndian, uint32(1))

	binary.Write(&buf, binary.LittleEndian, uint32(0))              // length, unused
	binary.Write(&buf, binary.LittleEndian, containerOffset)        // offset
	binary.Write(&buf, binary.LittleEndian, uint32(container.Len())) // image_size
	binary.Write(&buf, binary.LittleEndian, uint64(1700000000))      // date_unix
	binary.Write(&buf, binary.LittleEndian, uint32(len(name)))       // filename_length
	buf.Write(xorBytes([]byte(name), headerMode))

	data := buf.Bytes()
	binary.LittleEndian.PutUint64(data[4:12], startOfDirectory)

	path := filepath.Join(t.TempDir(), "fixture.mar")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestListReturnsEntry(t *testing.T) {
	path := buildFixture(t, "picture.png", []byte("fake-image-bytes"))

	entries, err := List(path)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Filename != "picture.png" {
		t.Fatalf("Filename = %q, want picture.png", entries[0].Filename)
	}
}

func TestListFiltersUnsupportedExtensions(t *testing.T) {
	path := buildFixture(t, "notes.txt", []byte("irrelevant"))

	entries, err := List(path)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected unsupported entry to be filtered, got %d entries", len(entries))
	}
}

func TestExtractRecoversPayload(t *testing.T) {
	payload := []byte("fake-image-bytes")
	path := buildFixture(t, "picture.png", payload)

	entries, err := List(path)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	container, err := Extract(path, entries[0].Offset)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if !bytes.Equal(container.Data, payload) {
		t.Fatalf("Data = %q, want %q", container.Data, payload)
	}
}

func TestExtractHonorsContrastAdjustment(t *testing.T) {
	payload := []byte("another-payload")
	path := buildFixture(t, "picture.png", payload)

	entries, err := List(path)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	SetContrast(5)
	defer SetContrast(0)

	container, err := Extract(path, entries[0].Offset)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if bytes.Equal(container.Data, payload) {
		t.Fatalf("expected contrast-shifted decode to differ from original payload")
	}
}

func TestExtractThumbnailRecoversThumbBytes(t *testing.T) {
	const containerMode = 9
	thumb := []byte("tiny-thumb")
	image := []byte("full-size-image-bytes")

	var container bytes.Buffer
	container.WriteString("MP")
	container.WriteByte('T')
	container.WriteByte(containerMode)
	binary.Write(&container, binary.LittleEndian, uint32(0)) // comment_length
	binary.Write(&container, binary.LittleEndian, uint32(len(thumb)))
	binary.Write(&container, binary.LittleEndian, uint32(len(image)))
	container.Write(xorBytes(thumb, containerMode))
	container.Write(xorBytes(image, containerMode))

	path := filepath.Join(t.TempDir(), "thumb.bin")
	if err := os.WriteFile(path, container.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := ExtractThumbnail(path, 0)
	if err != nil {
		t.Fatalf("ExtractThumbnail() error: %v", err)
	}
	if !bytes.Equal(got.Data, thumb) {
		t.Fatalf("Data = %q, want %q", got.Data, thumb)
	}
}

func TestExtractRejectsOversizedImage(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("MP")
	buf.WriteByte('T')
	buf.WriteByte(1) // mode
	binary.Write(&buf, binary.LittleEndian, uint32(0))          // comment_length
	binary.Write(&buf, binary.LittleEndian, uint32(0))          // thumb_length
	binary.Write(&buf, binary.LittleEndian, uint32(20_000_000)) // image_length, over the bound

	path := filepath.Join(t.TempDir(), "oversized.bin")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := Extract(path, 0); err == nil {
		t.Fatalf("expected an error for an oversized image_length")
	}
}
