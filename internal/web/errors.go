package web

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind is the closed set of failure categories an external call can produce.
// Callers branch on the kind instead of suppressing errors wholesale.
type Kind string

const (
	KindNetwork   Kind = "network"
	KindTimeout   Kind = "timeout"
	KindNotFound  Kind = "not_found" // 4xx/5xx status
	KindMalformed Kind = "malformed" // body could not be parsed
)

type Error struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrapErr(url string, err error) *Error {
	kind := KindNetwork
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		kind = KindTimeout
	} else if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &Error{Kind: kind, URL: url, Err: err}
}

func statusErr(url string, code int) *Error {
	return &Error{Kind: KindNotFound, URL: url, Err: fmt.Errorf("status %d", code)}
}

func malformedErr(url string, err error) *Error {
	return &Error{Kind: KindMalformed, URL: url, Err: err}
}
