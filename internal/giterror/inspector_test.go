package giterror

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGitHubErrorInspector(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name          string
		err           error
		wantAuth      bool
		wantNotFound  bool
		wantRateLimit bool
		wantNetwork   bool
	}{
		{
			name:     "bad credentials message",
			err:      errors.New("status 401: Bad credentials"),
			wantAuth: true,
		},
		{
			name:     "wrapped auth error",
			err:      fmt.Errorf("page 1: %w", errors.New("401 Unauthorized")),
			wantAuth: true,
		},
		{
			name:         "unresolvable repository",
			err:          errors.New("Could not resolve to a Repository with the name 'octo/missing'."),
			wantNotFound: true,
		},
		{
			name:          "secondary rate limit",
			err:           errors.New("You have exceeded a secondary rate limit"),
			wantRateLimit: true,
		},
		{
			name:          "rate limit with forbidden status",
			err:           errors.New("403 Forbidden: API rate limit exceeded"),
			wantAuth:      true,
			wantRateLimit: true,
		},
		{
			name:        "connection refused",
			err:         errors.New("dial tcp 127.0.0.1:1: connect: connection refused"),
			wantNetwork: true,
		},
		{
			name:        "client timeout",
			err:         errors.New("Client.Timeout exceeded while awaiting headers"),
			wantNetwork: true,
		},
		{
			name: "unclassified",
			err:  errors.New("something went wrong"),
		},
		{
			name: "nil error",
			err:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsAuthError(tt.err); got != tt.wantAuth {
				t.Errorf("IsAuthError() = %v, want %v", got, tt.wantAuth)
			}
			if got := inspector.IsNotFoundError(tt.err); got != tt.wantNotFound {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.wantNotFound)
			}
			if got := inspector.IsRateLimitError(tt.err); got != tt.wantRateLimit {
				t.Errorf("IsRateLimitError() = %v, want %v", got, tt.wantRateLimit)
			}
			if got := inspector.IsNetworkError(tt.err); got != tt.wantNetwork {
				t.Errorf("IsNetworkError() = %v, want %v", got, tt.wantNetwork)
			}
		})
	}
}

func TestHint(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		err      error
		contains string
	}{
		{errors.New("403: API rate limit exceeded"), "rate limit"},
		{errors.New("Bad credentials"), "token"},
		{errors.New("Could not resolve to a Repository"), "repository name"},
		{errors.New("dial tcp: no such host"), "network"},
		{errors.New("Field 'bogus' doesn't exist on type 'Issue'"), ""},
	}

	for _, tt := range tests {
		got := Hint(inspector, tt.err)
		if tt.contains == "" {
			if got != "" {
				t.Errorf("Hint(%v) = %q, want empty", tt.err, got)
			}
			continue
		}
		if !strings.Contains(got, tt.contains) {
			t.Errorf("Hint(%v) = %q, want containing %q", tt.err, got, tt.contains)
		}
	}
}
