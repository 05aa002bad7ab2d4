package sdk

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies every failure the SDK can surface. Callers branch on
// the kind to decide between "flag the password field", "flag the code
// field", and "generic retry prompt".
type ErrorKind int

const (
	// KindUnknown is the zero value; it never appears on an *Error built
	// by this package.
	KindUnknown ErrorKind = iota
	// KindInvalidCredentials means the backend rejected the email/password pair.
	KindInvalidCredentials
	// KindMalformedResponse means the backend replied 2xx but the body was
	// missing an expected field. The error lists the fields actually present.
	KindMalformedResponse
	// KindNoPendingSession means an operation requiring an outstanding
	// passcode verification was invoked without one. No network call is made.
	KindNoPendingSession
	// KindVerificationFailed means the backend rejected the passcode
	// (commonly invalid or expired).
	KindVerificationFailed
	// KindNetworkFailure is a transport-level failure before or during the
	// round trip.
	KindNetworkFailure
	// KindNetworkTimeout is a transport failure caused by the request
	// deadline elapsing.
	KindNetworkTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindMalformedResponse:
		return "malformed_response"
	case KindNoPendingSession:
		return "no_pending_session"
	case KindVerificationFailed:
		return "verification_failed"
	case KindNetworkFailure:
		return "network_failure"
	case KindNetworkTimeout:
		return "network_timeout"
	default:
		return "unknown"
	}
}

// Error is the typed error returned by all auth operations. It always
// carries a human-readable message; HTTPStatus and Fields are populated
// when they help distinguish "bad password" from "server misbehaving".
type Error struct {
	Kind       ErrorKind
	Message    string
	HTTPStatus int      // 0 when no response was received
	Fields     []string // top-level response fields seen (malformed responses)
	cause      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.HTTPStatus != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.HTTPStatus)
	}
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, " (response fields: %s)", strings.Join(e.Fields, ", "))
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf extracts the ErrorKind from err, or KindUnknown when err was not
// produced by this package.
func KindOf(err error) ErrorKind {
	var sdkErr *Error
	if errors.As(err, &sdkErr) {
		return sdkErr.Kind
	}
	return KindUnknown
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func wrapError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}
