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

// Package output writes result files atomically.
//
// A Writer created with NewFileWriter collects data in a temporary file next
// to its target and renames it into place on Commit. Abort, or a run that
// never commits, leaves the target path untouched, so a failed export never
// leaves a truncated CSV or dump behind.
//
// Example usage:
//
//	w, err := output.NewFileWriter("issues.csv")
//	if err != nil {
//	    return err
//	}
//	err = output.WriteAll(w, func(dst io.Writer) error {
//	    return report.WriteCSV(dst, rows, false)
//	})
package output
