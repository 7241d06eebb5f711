package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// ErrFinished is returned when writing to a Writer that was already
// committed or aborted.
var ErrFinished = errors.New("output already finished")

// Writer streams output either to an io.Writer or to a file that only
// appears at its final path once Commit succeeds.
type Writer struct {
	mu       sync.Mutex
	output   io.Writer
	file     *os.File
	target   string
	count    int64
	finished bool
}

// NewWriter creates a Writer around w. Commit and Abort do not close w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{output: w}
}

// NewFileWriter creates a Writer for filename. Data goes to a temporary file
// in the same directory and is renamed over filename on Commit, so readers
// never observe a partial file. The caller must call Commit or Abort.
func NewFileWriter(filename string) (*Writer, error) {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &Writer{
		output: file,
		file:   file,
		target: filename,
	}, nil
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return 0, ErrFinished
	}
	n, err := w.output.Write(p)
	w.count += int64(n)
	return n, err
}

// Count returns the number of bytes written.
func (w *Writer) Count() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Commit syncs the temporary file and moves it to its final path.
func (w *Writer) Commit() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return ErrFinished
	}
	w.finished = true

	if w.file == nil {
		return nil
	}

	tmp := w.file.Name()
	if err := w.file.Sync(); err != nil {
		_ = w.file.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to sync output file: %w", err)
	}
	if err := w.file.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := os.Rename(tmp, w.target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move output file into place: %w", err)
	}
	return nil
}

// Abort discards everything written. It is a no-op after Commit, so it can
// be deferred unconditionally.
func (w *Writer) Abort() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return nil
	}
	w.finished = true

	if w.file == nil {
		return nil
	}
	_ = w.file.Close()
	if err := os.Remove(w.file.Name()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove partial output: %w", err)
	}
	return nil
}
