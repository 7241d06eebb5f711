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

// Package scratch manages the per-run directory that request and response
// bodies are spooled through. Each file belongs to one request and is removed
// when that request finishes; the directory itself is removed by Cleanup,
// which callers defer so it also runs after an interrupt cancels the run.
package scratch

import (
	"fmt"
	"os"
	"sync"
)

// Dir is a run-scoped scratch directory.
type Dir struct {
	mu      sync.Mutex
	path    string
	removed bool
}

// New creates a scratch directory under parent. An empty parent uses the
// system temp directory.
func New(parent string) (*Dir, error) {
	if parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create scratch parent: %w", err)
		}
	}
	path, err := os.MkdirTemp(parent, "issues-export-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory location.
func (d *Dir) Path() string {
	return d.path
}

// CreateFile opens a new uniquely named file in the directory. The caller
// owns the file and should pass it to Release when done.
func (d *Dir) CreateFile(pattern string) (*os.File, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.removed {
		return nil, fmt.Errorf("scratch directory %s already cleaned up", d.path)
	}
	f, err := os.CreateTemp(d.path, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	return f, nil
}

// Release closes and deletes a file obtained from CreateFile. Errors are
// ignored; Cleanup removes anything left behind.
func Release(f *os.File) {
	if f == nil {
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
}

// Cleanup removes the directory and everything in it. It is safe to call
// more than once.
func (d *Dir) Cleanup() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.removed {
		return nil
	}
	d.removed = true
	if err := os.RemoveAll(d.path); err != nil {
		return fmt.Errorf("failed to remove scratch directory: %w", err)
	}
	return nil
}
