// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// A Cause is a finer-grained description of why a Network or Aborted
// failure happened, as reported by function Detail. Causes never
// change how an execution settles; they exist for logging.
type Cause int

const (
	// Unknown indicates any error not covered by another cause.
	Unknown Cause = iota
	// Cancelled indicates the execution context was cancelled.
	Cancelled
	// Timeout indicates a deadline passed. Function Detail returns
	// Timeout if the error or any of its wrapped causes has a Timeout()
	// function that reports true.
	Timeout
	// DNS indicates the host name could not be resolved.
	DNS
	// ConnRefused indicates the remote host refused the connection
	// (syscall.ECONNREFUSED).
	ConnRefused
	// ConnReset indicates the remote host reset a previously active
	// connection (syscall.ECONNRESET).
	ConnReset
)

var causeNames = []string{
	"unknown",
	"cancelled",
	"timeout",
	"dns",
	"connection refused",
	"connection reset",
}

// String returns the name of the cause.
func (c Cause) String() string {
	if c < 0 || int(c) >= len(causeNames) {
		return causeNames[Unknown]
	}
	return causeNames[c]
}

// Detail returns the cause of a raw transport error. A nil error
// produces Unknown.
//
// In assessing the cause, Detail looks at wrapped errors contained
// within err, not just err itself.
func Detail(err error) Cause {
	if err == nil {
		return Unknown
	}

	if errors.Is(err, context.Canceled) {
		return Cancelled
	}

	var hasTimeout hasTimeout
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &hasTimeout) && hasTimeout.Timeout()) {
		return Timeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return DNS
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Unknown
}

type hasTimeout interface {
	Timeout() bool
}
