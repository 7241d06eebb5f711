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
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/oauth2"
)

// TransportOptions configures the HTTP client shared by every request.
type TransportOptions struct {
	Token string
	// Accept is sent on every request; reaction fields need a preview media type.
	Accept    string
	UserAgent string
	// Timeout bounds a single HTTP call including reading the body.
	Timeout time.Duration
	// MaxResponseBytes caps a response body. Zero disables the cap.
	MaxResponseBytes int64
}

// NewHTTPClient builds the authenticated client. The bearer token comes from
// oauth2; the remaining headers and the size limit sit on top of a pooled
// cleanhttp transport.
func NewHTTPClient(opts TransportOptions) *http.Client {
	return &http.Client{
		Timeout: opts.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
			Base: &headerTransport{
				accept:    opts.Accept,
				userAgent: opts.UserAgent,
				limit:     opts.MaxResponseBytes,
				base:      cleanhttp.DefaultPooledTransport(),
			},
		},
	}
}

// headerTransport adds the Accept and User-Agent headers and a response size limit.
type headerTransport struct {
	accept    string
	userAgent string
	limit     int64
	base      http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	if t.accept != "" {
		req.Header.Set("Accept", t.accept)
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.Body != nil && t.limit > 0 {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      t.limit,
		}
	}

	return resp, nil
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}
