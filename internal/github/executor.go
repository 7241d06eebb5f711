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

package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/deckhouse/project-manager-helper/internal/scratch"
)

// Result is the uniform outcome of one request. Err is non-empty only when
// no HTTP response was obtained. The status code is reported, not validated.
type Result struct {
	Err     string
	Status  int
	Headers map[string]string
	// Body is the decoded JSON payload, or the raw text when the payload is
	// not valid JSON.
	Body any
	// Raw is the payload exactly as received.
	Raw []byte
}

// Executor performs single GraphQL POST requests.
type Executor struct {
	httpClient *http.Client
	endpoint   string
	scratch    *scratch.Dir
}

// NewExecutor returns an executor posting to endpoint. When dir is non-nil
// request and response bodies are spooled through files in it.
func NewExecutor(httpClient *http.Client, endpoint string, dir *scratch.Dir) *Executor {
	return &Executor{
		httpClient: httpClient,
		endpoint:   endpoint,
		scratch:    dir,
	}
}

// Execute issues exactly one POST with body and captures the outcome.
func (e *Executor) Execute(ctx context.Context, body []byte) *Result {
	reqBody, release, err := e.spoolRequest(body)
	if err != nil {
		return &Result{Err: err.Error()}
	}
	defer release()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, reqBody)
	if err != nil {
		return &Result{Err: err.Error()}
	}
	req.ContentLength = int64(len(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return &Result{Err: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := e.readResponse(resp.Body)
	if err != nil {
		return &Result{
			Err:     fmt.Sprintf("reading response body: %v", err),
			Status:  resp.StatusCode,
			Headers: flattenHeaders(resp.Header),
		}
	}

	return &Result{
		Status:  resp.StatusCode,
		Headers: flattenHeaders(resp.Header),
		Body:    parseBody(raw),
		Raw:     raw,
	}
}

// spoolRequest returns a reader over the request body, written to a
// scratch file when a scratch directory is configured.
func (e *Executor) spoolRequest(body []byte) (io.Reader, func(), error) {
	if e.scratch == nil {
		return bytes.NewReader(body), func() {}, nil
	}

	f, err := e.scratch.CreateFile("request-*.json")
	if err != nil {
		return nil, nil, err
	}
	if _, err := f.Write(body); err != nil {
		scratch.Release(f)
		return nil, nil, fmt.Errorf("failed to spool request: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		scratch.Release(f)
		return nil, nil, fmt.Errorf("failed to rewind request: %w", err)
	}
	// Hide the file's Close from the HTTP client so release stays the only owner.
	return io.NopCloser(f), func() { scratch.Release(f) }, nil
}

// readResponse reads the whole body, going through a scratch file when one
// is configured.
func (e *Executor) readResponse(body io.Reader) ([]byte, error) {
	if e.scratch == nil {
		return io.ReadAll(body)
	}

	f, err := e.scratch.CreateFile("response-*.json")
	if err != nil {
		return nil, err
	}
	defer scratch.Release(f)

	if _, err := io.Copy(f, body); err != nil {
		return nil, err
	}
	return os.ReadFile(f.Name())
}

// parseBody decodes JSON payloads and falls back to the raw text.
func parseBody(raw []byte) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// flattenHeaders joins repeated header values with ", ".
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ", ")
	}
	return out
}
