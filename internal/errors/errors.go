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

// Package errors defines sentinel errors for consistent error handling across the application.
// Every sentinel is fatal to a run; the CLI reports it and exits with status 1.
package errors

import "errors"

// Sentinel errors for consistent error handling and reporting
var (
	// ErrMissingToken indicates the credential environment variable is unset or empty.
	// Reported before any network call is made.
	ErrMissingToken = errors.New("github token not set")

	// ErrInvalidConfig indicates a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTransport indicates the request never produced an HTTP response
	// (DNS, connect, TLS or timeout failure).
	ErrTransport = errors.New("transport failure")

	// ErrAPI indicates the API answered with an application-level error list.
	ErrAPI = errors.New("github api error")

	// ErrMalformedResponse indicates the response body could not be read as
	// the expected JSON envelope.
	ErrMalformedResponse = errors.New("malformed api response")

	// ErrPageLimit indicates the optional page cap was reached while the API
	// still reported more pages.
	ErrPageLimit = errors.New("page limit reached")

	// ErrDumpCorrupted indicates a dump file failed version or checksum validation.
	ErrDumpCorrupted = errors.New("dump file corrupted")
)

// Kind returns a short label for the sentinel wrapped by err, used as a log attribute.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingToken), errors.Is(err, ErrInvalidConfig):
		return "config"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrAPI), errors.Is(err, ErrMalformedResponse):
		return "api"
	case errors.Is(err, ErrPageLimit):
		return "pagination"
	case errors.Is(err, ErrDumpCorrupted):
		return "dump"
	default:
		return "general"
	}
}
