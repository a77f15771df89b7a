// Package errors turns command failures into the messages printed on stderr.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/julianstephens/noor/internal/httpclient"
	"github.com/julianstephens/noor/internal/keyring"
	"github.com/julianstephens/noor/internal/logger"
	"github.com/julianstephens/noor/internal/prayer"
)

// Format returns "Error: <err>", followed by a hint line when the failure has a known remedy.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if h := Hint(err); h != "" {
		msg += "\nHint: " + h
	}
	return msg
}

// Warnf formats a non-fatal message for problems the user can retry, such as a failed fetch
func Warnf(format string, args ...interface{}) string {
	return fmt.Sprintf("Warning: "+format, args...)
}

// Hint suggests what to do about err, or returns "".
func Hint(err error) string {
	var status *httpclient.StatusError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "the request timed out; check your connection or raise api.timeout in the config file"
	case errors.As(err, &status) && status.StatusCode == http.StatusTooManyRequests:
		return "the API is rate limiting requests; wait a minute and try again"
	case errors.As(err, &status) && status.StatusCode >= 500:
		return "the API is having trouble; try again later"
	case errors.Is(err, keyring.ErrKeyringUnavailable):
		return "no OS keyring is available; export " + keyring.EnvConnectionString + " instead"
	case errors.Is(err, prayer.ErrPermissionDenied):
		return "run 'noor settings set --permission granted' to allow reminders"
	}
	return ""
}

// Fatal logs err, prints it and exits with status 1. A nil err is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
