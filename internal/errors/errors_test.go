package errors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/noor/internal/httpclient"
	"github.com/julianstephens/noor/internal/keyring"
	"github.com/julianstephens/noor/internal/prayer"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("habit not found"), expected: "Error: habit not found"},
		{
			name:     "wrapped error",
			err:      errors.New("failed to fetch prayer times: connection refused"),
			expected: "Error: failed to fetch prayer times: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestWarnf(t *testing.T) {
	if got := Warnf("could not load %s", "verse"); got != "Warning: could not load verse" {
		t.Errorf("Warnf() = %q", got)
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", fmt.Errorf("GET x: %w", context.DeadlineExceeded), "timed out"},
		{"rate limited", fmt.Errorf("fetch: %w", &httpclient.StatusError{URL: "x", StatusCode: http.StatusTooManyRequests}), "rate limiting"},
		{"server error", &httpclient.StatusError{URL: "x", StatusCode: http.StatusBadGateway}, "try again later"},
		{"not found", &httpclient.StatusError{URL: "x", StatusCode: http.StatusNotFound}, ""},
		{"keyring", fmt.Errorf("%w: dbus", keyring.ErrKeyringUnavailable), keyring.EnvConnectionString},
		{"permission", prayer.ErrPermissionDenied, "--permission granted"},
		{"plain", errors.New("boom"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Hint() = %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Hint() = %q, want it to mention %q", got, tt.want)
			}
		})
	}

	if got := Format(context.DeadlineExceeded); !strings.HasPrefix(got, "Error: context deadline exceeded\nHint: ") {
		t.Errorf("Format() = %q", got)
	}
}

// TestFatal runs Fatal in a helper process and checks its exit status
func TestFatal(t *testing.T) {
	if os.Getenv("NOOR_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "NOOR_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("NOOR_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "NOOR_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
