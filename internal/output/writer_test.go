// Copyright 2025 Flant JSC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)

	if writer == nil {
		t.Fatal("NewWriter returned nil")
	}
	if writer.output != &buf {
		t.Error("Writer output doesn't match provided buffer")
	}
	if writer.file != nil {
		t.Error("stream writer should not own a file")
	}

	if _, err := writer.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := writer.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if buf.String() != "hello\n" {
		t.Errorf("output = %q", buf.String())
	}
	if writer.Count() != 6 {
		t.Errorf("Count() = %d, want 6", writer.Count())
	}
}

func TestFileWriter_Commit(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "issues.csv")

	writer, err := NewFileWriter(target)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}

	if _, err := writer.Write([]byte("number,title\n1,one\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatal("target must not exist before Commit")
	}

	if err := writer.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read target: %v", err)
	}
	if string(data) != "number,title\n1,one\n" {
		t.Errorf("content = %q", data)
	}

	entries, _ := os.ReadDir(filepath.Dir(target))
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}

func TestFileWriter_Abort(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "issues.csv")

	writer, err := NewFileWriter(target)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	_, _ = writer.Write([]byte("partial"))

	if err := writer.Abort(); err != nil {
		t.Fatalf("Abort failed: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected empty directory after Abort, found %d entries", len(entries))
	}

	if _, err := writer.Write([]byte("more")); !errors.Is(err, ErrFinished) {
		t.Errorf("Write after Abort error = %v, want ErrFinished", err)
	}
	if err := writer.Commit(); !errors.Is(err, ErrFinished) {
		t.Errorf("Commit after Abort error = %v, want ErrFinished", err)
	}
}

func TestFileWriter_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "issues.csv")
	if err := os.WriteFile(target, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	failed, err := NewFileWriter(target)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = failed.Write([]byte("broken"))
	_ = failed.Abort()

	data, _ := os.ReadFile(target)
	if string(data) != "old" {
		t.Errorf("aborted run changed the existing file: %q", data)
	}

	writer, err := NewFileWriter(target)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = writer.Write([]byte("new"))
	if err := writer.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := writer.Abort(); err != nil {
		t.Errorf("Abort after Commit should be a no-op, got %v", err)
	}

	data, _ = os.ReadFile(target)
	if string(data) != "new" {
		t.Errorf("content = %q, want new", data)
	}
}

func TestWriter_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)

	const goroutines = 10
	const linesEach = 100

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < linesEach; j++ {
				_, _ = writer.Write([]byte("line\n"))
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != goroutines*linesEach {
		t.Errorf("expected %d lines, got %d", goroutines*linesEach, len(lines))
	}
	if writer.Count() != int64(goroutines*linesEach*5) {
		t.Errorf("Count() = %d", writer.Count())
	}
}
