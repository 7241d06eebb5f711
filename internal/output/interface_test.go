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
	"io"
	"os"
	"path/filepath"
	"testing"
)

// Compile-time check that Writer implements OutputWriter
var _ OutputWriter = (*Writer)(nil)

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")

	w, err := Create(target, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err = WriteAll(w, func(dst io.Writer) error {
		_, err := io.WriteString(dst, "done")
		return err
	})
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil || string(data) != "done" {
		t.Errorf("content = %q, err = %v", data, err)
	}
}

func TestWriteAll_FillError(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")
	fillErr := errors.New("page 2 failed")

	w, err := Create(target, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err = WriteAll(w, func(dst io.Writer) error {
		_, _ = io.WriteString(dst, "half")
		return fillErr
	})
	if !errors.Is(err, fillErr) {
		t.Fatalf("WriteAll() error = %v, want %v", err, fillErr)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("failed fill left %d files behind", len(entries))
	}
}

func TestCreate_Stdout(t *testing.T) {
	var buf bytes.Buffer
	w, err := Create("-", &buf)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := WriteAll(w, func(dst io.Writer) error {
		_, err := io.WriteString(dst, "to stdout")
		return err
	}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if buf.String() != "to stdout" {
		t.Errorf("stdout = %q", buf.String())
	}
}
