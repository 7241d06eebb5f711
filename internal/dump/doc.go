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

// Package dump persists the raw issues of an export run.
//
// A dump is a single JSON document holding every issue as decoded from the
// API, a schema version and a SHA256 checksum over the content. Writes are
// atomic (write-to-temp-and-rename through the output package), so the
// summarize and convert steps either see a complete dump or none at all.
// Load rejects files whose version or checksum does not match with
// ErrDumpCorrupted.
//
// Example usage:
//
//	f := dump.New("deckhouse/deckhouse", issues)
//	if err := dump.Save(f, "issues.json"); err != nil {
//	    return err
//	}
//	loaded, err := dump.Load("issues.json")
package dump
