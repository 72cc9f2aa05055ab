package models

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies adapter failures so tool handlers can report a stable
// error category to MCP clients regardless of which upstream produced it.
type Kind string

const (
	// KindInvalidInput marks request validation failures detected before any upstream call
	KindInvalidInput Kind = "invalid_input"
	// KindUpstreamNetwork marks transport-level failures (DNS, connect, TLS, broken pipe)
	KindUpstreamNetwork Kind = "upstream_network"
	// KindUpstreamStatus marks non-2xx responses from an upstream
	KindUpstreamStatus Kind = "upstream_status"
	// KindUpstreamParse marks responses that arrived but could not be decoded
	KindUpstreamParse Kind = "upstream_parse"
	// KindUpstreamTimeout marks deadline expiry while waiting on an upstream
	KindUpstreamTimeout Kind = "upstream_timeout"
	// KindConversionFailure marks HTML/PDF to Markdown conversion failures
	KindConversionFailure Kind = "conversion_failure"
	// KindNotFound marks lookups for documents that do not exist upstream
	KindNotFound Kind = "not_found"
	// KindInternal marks everything else
	KindInternal Kind = "internal_error"
)

// Error is the canonical error returned by source adapters. Source names
// the upstream system ("yargitay", "bedesten"), Op the operation that
// failed ("search", "document").
type Error struct {
	Kind   Kind
	Source string
	Op     string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s/%s: %s", e.Source, e.Op, e.Kind)
	}
	return fmt.Sprintf("%s/%s: %s: %v", e.Source, e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an adapter error with an explicit kind.
func NewError(kind Kind, source, op string, err error) *Error {
	return &Error{Kind: kind, Source: source, Op: op, Err: err}
}

// Errorf builds an adapter error from a format string.
func Errorf(kind Kind, source, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Source: source, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the Kind from err. Errors that did not originate from
// an adapter report KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// kinder is implemented by errors that know their own classification,
// such as the HTTP client's status errors.
type kinder interface {
	ErrorKind() Kind
}

// Classify wraps err with the kind inferred from its cause: context
// deadlines and net timeouts become KindUpstreamTimeout, status errors
// keep their own kind, anything else from the wire is KindUpstreamNetwork.
// Errors that already carry a Kind pass through unchanged.
func Classify(source, op string, err error) *Error {
	var adapterErr *Error
	if errors.As(err, &adapterErr) {
		return adapterErr
	}

	kind := KindUpstreamNetwork
	var k kinder
	var netErr net.Error
	switch {
	case errors.As(err, &k):
		kind = k.ErrorKind()
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindUpstreamTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindUpstreamTimeout
	}

	return &Error{Kind: kind, Source: source, Op: op, Err: err}
}
