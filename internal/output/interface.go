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
	"fmt"
	"io"
)

// OutputWriter is a destination that is either published in full or not at
// all. Stdout and atomic files both satisfy it.
type OutputWriter interface {
	io.Writer

	// Commit publishes everything written so far.
	Commit() error

	// Abort discards the output. Calling it after Commit has no effect.
	Abort() error
}

// WriteAll runs fill against w and commits the result. If fill fails the
// output is aborted and the fill error returned.
func WriteAll(w OutputWriter, fill func(io.Writer) error) error {
	if err := fill(w); err != nil {
		if abortErr := w.Abort(); abortErr != nil {
			return fmt.Errorf("%w (cleanup: %v)", err, abortErr)
		}
		return err
	}
	return w.Commit()
}

// Create returns a stdout-backed writer when path is "-", otherwise an
// atomic file writer for path.
func Create(path string, stdout io.Writer) (OutputWriter, error) {
	if path == "-" {
		return NewWriter(stdout), nil
	}
	return NewFileWriter(path)
}
