// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"context"
	"errors"
)

// A Tag identifies the category of a failed request execution. Tag
// implements error, and is the only error type ever returned from an
// ajax promise.
//
// The zero value is not a valid tag; it is what Of reports for errors
// which are not tags.
type Tag int

const (
	// Network indicates the transport could not complete the exchange:
	// the remote host was unreachable, the connection was refused,
	// reset or interrupted, the request deadline passed, or the
	// transport reported a zero status code.
	Network Tag = iota + 1
	// Request indicates the response status code was in [400, 500).
	Request
	// Server indicates the response status code was 500 or above.
	Server
	// Aborted indicates the execution was explicitly cancelled, either
	// through Promise.Abort or by cancelling the plan context.
	Aborted
	// InvalidJSON indicates a successful response body could not be
	// parsed as JSON. Only GetJSON produces it.
	InvalidJSON
	// InvalidPostData indicates a POST payload was neither a raw string
	// nor a field mapping. No request is sent when it occurs.
	InvalidPostData
	// tagSentinel provides the number of tags plus one.
	tagSentinel
)

var tagText = [...]string{
	Network:         "network error",
	Request:         "request error",
	Server:          "server error",
	Aborted:         "aborted",
	InvalidJSON:     "invalid json",
	InvalidPostData: "invalid post data",
}

// Tags returns every valid tag in declaration order.
func Tags() []Tag {
	return []Tag{Network, Request, Server, Aborted, InvalidJSON, InvalidPostData}
}

// Valid reports whether t is one of the declared tags.
func (t Tag) Valid() bool {
	return t > 0 && t < tagSentinel
}

// Error returns the tag's text, for example "network error".
func (t Tag) Error() string {
	if !t.Valid() {
		return "unknown failure"
	}
	return tagText[t]
}

// String returns the same text as Error.
func (t Tag) String() string {
	return t.Error()
}

// Of returns the tag contained in err, looking through wrapped errors.
// The second return value is false, and the tag is zero, if err is nil
// or contains no tag.
func Of(err error) (Tag, bool) {
	var t Tag
	if errors.As(err, &t) && t.Valid() {
		return t, true
	}
	return 0, false
}

// FromStatus classifies a completed HTTP response by status code. It
// returns false if the status code denotes success, which is any code
// in [1, 400).
//
// Status zero is classified as Network. Browsers report it for CORS
// blocks and DNS failures, and custom HTTP doers may report it too;
// no finer distinction is drawn.
func FromStatus(code int) (Tag, bool) {
	switch {
	case code >= 400 && code < 500:
		return Request, true
	case code >= 500:
		return Server, true
	case code <= 0:
		return Network, true
	default:
		return 0, false
	}
}

// FromErr classifies a non-nil error returned by the transport, or by
// reading the response body. The context is the one governing the
// execution: if it was cancelled, the failure is Aborted. Every other
// error, including deadline expiry, is Network.
//
// If err already is a tag it is returned as is.
func FromErr(ctx context.Context, err error) Tag {
	if t, ok := Of(err); ok {
		return t
	}
	if errors.Is(err, context.Canceled) {
		return Aborted
	}
	if ctx != nil && errors.Is(ctx.Err(), context.Canceled) {
		return Aborted
	}
	return Network
}
