package upstream

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds. Every error returned by Client matches exactly one
// of them through errors.Is.
var (
	ErrNetwork           = errors.New("no response from upstream")
	ErrServer            = errors.New("upstream server error")
	ErrMalformedResponse = errors.New("malformed upstream response")
	ErrParse             = errors.New("unparsable upstream response")
	ErrNotFound          = errors.New("not found")
)

// Error describes a failed upstream call.
type Error struct {
	Op     string // fetch_all or lookup
	Kind   error  // one of the sentinel kinds
	Status int    // HTTP status, 0 when no response was received
	Body   string // response body or upstream error message
	Err    error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("upstream ")
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Body != "" {
		b.WriteString(": ")
		b.WriteString(e.Body)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is matches the error kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Message renders err as the text shown to users.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ue *Error
	if !errors.As(err, &ue) {
		return err.Error()
	}
	switch ue.Kind {
	case ErrNetwork:
		return "No response from server. Check network connectivity."
	case ErrServer:
		return fmt.Sprintf("Server error: %d - %s", ue.Status, ue.Body)
	case ErrParse:
		if ue.Err != nil {
			return "Failed to parse API response: " + ue.Err.Error()
		}
		return "Failed to parse API response"
	case ErrMalformedResponse:
		return "Unexpected API response structure"
	case ErrNotFound:
		if ue.Body != "" {
			return ue.Body
		}
		return "Coin not found"
	default:
		return err.Error()
	}
}

// Outcome returns a short label for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrServer):
		return "server"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
