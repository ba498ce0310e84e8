/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash centralizes panic recovery for the CLI/coordinator boundary
// and for background goroutines (render worker, thumbnail decode) that must
// never take the whole process down with them.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "mview6/internal/log"
	"mview6/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Recover captures a panic at the top-level CLI/coordinator boundary, logs it
// with a stack trace, writes a crash report to the OS temp dir, and exits
// with a non-zero code.
//
// Usage: defer crash.Recover()
func Recover() {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		reportPath, err := writeReport(r, stack)
		if err != nil {
			l.Error("failed to write crash report", slog.Any("err", err))
		}

		fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath)
		fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH)
		exitFn(2)
	}
}

// Thumbnail recovers a panic inside a single thumbnail decode goroutine and
// reports it through onPanic rather than letting it escape the worker pool.
// Per spec: "Thumbnail decode panic: caught; produces a panic text thumb;
// other thumbnails continue."
func Thumbnail(taskID uint64, onPanic func(taskID uint64, r any)) {
	if r := recover(); r != nil {
		applog.WithComponent("thumbsheet").Error("thumbnail decode panic",
			slog.Uint64("task", taskID), slog.Any("panic", r))
		if onPanic != nil {
			onPanic(taskID, r)
		}
	}
}

func writeReport(panicVal any, stack []byte) (string, error) {
	dir := os.TempDir()
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("mview6-crash-%s.log", stamp))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", cerr), slog.String("path", path))
		}
	}()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "MView6 Crash Report\n")
	fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "Version: %s\n", version.String())
	fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	return path, f.Sync()
}
