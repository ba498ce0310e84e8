/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"os"
	"strings"
	"testing"
)

func TestWriteReportCreatesFileInTemp(t *testing.T) {
	path, err := writeReport("boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	defer os.Remove(path)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "MView6 Crash Report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") {
		t.Fatalf("panic content missing: %s", s)
	}
}

func TestThumbnailRecoverInvokesCallback(t *testing.T) {
	var gotID uint64
	var gotPanic any

	func() {
		defer Thumbnail(7, func(id uint64, r any) {
			gotID = id
			gotPanic = r
		})
		panic("decode failure")
	}()

	if gotID != 7 {
		t.Fatalf("expected task id 7, got %d", gotID)
	}
	if gotPanic != "decode failure" {
		t.Fatalf("expected panic value forwarded, got %v", gotPanic)
	}
}

func TestThumbnailRecoverNoPanicIsNoop(t *testing.T) {
	called := false
	func() {
		defer Thumbnail(1, func(uint64, any) { called = true })
	}()
	if called {
		t.Fatalf("callback should not run when there was no panic")
	}
}
