package upstream

import (
	"errors"
	"fmt"
)

// BodyPrefixLimit caps how many characters of an upstream error body are kept.
const BodyPrefixLimit = 200

// ErrInvalidJSON is wrapped by a Failure when a 2xx body cannot be decoded.
var ErrInvalidJSON = errors.New("upstream returned invalid JSON")

// Failure describes a failed upstream call. StatusCode is zero when no HTTP
// response was obtained (connection refused, timeout, DNS, open breaker) or
// when a 2xx body was not valid JSON.
type Failure struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (f *Failure) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("upstream %s returned %d", f.URL, f.StatusCode)
	}
	return fmt.Sprintf("upstream %s: %v", f.URL, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// HasStatus reports whether the upstream answered with a non-2xx status.
func (f *Failure) HasStatus() bool { return f.StatusCode != 0 }

// Message is the human readable reason for status-less failures.
func (f *Failure) Message() string {
	if f.Err == nil {
		return f.Error()
	}
	return f.Err.Error()
}

// prefix returns at most n characters of s.
func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
