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

package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// GraphQLRequest is one request received by the mock server.
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
	Header    http.Header            `json:"-"`
}

// Response is a scripted reply. Body is JSON-encoded unless Raw is set.
type Response struct {
	Status int
	Body   interface{}
	Raw    string
}

// GraphQLServer serves scripted issue page responses in order and answers
// repository info queries with TotalIssues.
type GraphQLServer struct {
	*httptest.Server

	TotalIssues int

	mu        sync.Mutex
	responses []Response
	requests  []GraphQLRequest
}

// NewGraphQLServer starts a server that replies to issue page queries with
// responses, one per request. Requests beyond the script get a 500.
func NewGraphQLServer(t *testing.T, responses ...Response) *GraphQLServer {
	t.Helper()
	s := &GraphQLServer{responses: responses}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// NewPagedServer scripts one 200 response per page body.
func NewPagedServer(t *testing.T, pages ...map[string]interface{}) *GraphQLServer {
	t.Helper()
	responses := make([]Response, 0, len(pages))
	for _, p := range pages {
		responses = append(responses, Response{Status: http.StatusOK, Body: p})
	}
	return NewGraphQLServer(t, responses...)
}

// URL returns the GraphQL endpoint of the server.
func (s *GraphQLServer) URL() string {
	return s.Server.URL + "/graphql"
}

func (s *GraphQLServer) handle(w http.ResponseWriter, r *http.Request) {
	var req GraphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	req.Header = r.Header.Clone()

	// The typed client sends variables; the count query is the only one that does.
	if req.Variables != nil && strings.Contains(req.Query, "totalCount") {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": map[string]interface{}{
				"repository": map[string]interface{}{
					"issues": map[string]interface{}{"totalCount": s.TotalIssues},
				},
			},
		})
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	idx := len(s.requests) - 1
	var resp *Response
	if idx < len(s.responses) {
		resp = &s.responses[idx]
	}
	s.mu.Unlock()

	if resp == nil {
		http.Error(w, "no scripted response", http.StatusInternalServerError)
		return
	}
	if resp.Raw != "" {
		w.WriteHeader(resp.Status)
		_, _ = w.Write([]byte(resp.Raw))
		return
	}
	writeJSON(w, resp.Status, resp.Body)
}

// Requests returns the issue page requests received so far.
func (s *GraphQLServer) Requests() []GraphQLRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GraphQLRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// NewErrorServer creates a mock server that always returns the specified status
func NewErrorServer(t *testing.T, statusCode int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
