// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/ajax/failure"
)

// An Execution represents the state of a single Plan execution.
//
// When a plan is executed, an Execution is created for it. The
// Execution is updated as the execution progresses (for example when
// the HTTP response becomes available) and is finally frozen when the
// execution settles.
//
// Event handlers may set values on an Execution using its SetValue
// method and read them back using the Value method. They should treat
// the exported fields as read-only, with the exception of making
// reasonable changes to the http.Request before it is sent.
type Execution struct {
	// Plan specifies the request plan being executed. It is nil only
	// when no plan could be built, for example from an unparseable URL,
	// in which case Err holds the reason.
	Plan *Plan
	// Start is the start time of the execution. It is assigned a
	// non-zero value when the execution starts, and this value remains
	// constant thereafter.
	Start time.Time
	// End is the time the execution settled. It contains the zero value
	// until then.
	End time.Time
	// Request specifies the HTTP request sent, or about to be sent.
	Request *http.Request
	// Response specifies the HTTP response received. It is nil if the
	// transport failed before a response arrived. Its body has always
	// been consumed and closed by the time the execution settles.
	Response *http.Response
	// Err is the raw cause of a Network or Aborted failure, as reported
	// by the transport or while reading the response body. It is nil
	// when the failure was decided by status code, or when there was no
	// failure.
	//
	// Err is informational only: the promise for the execution never
	// returns it, returning the failure tag instead.
	Err error
	// Body is the complete response body. It is nil if no response was
	// received or reading the body failed.
	Body []byte
	// Failure is the tag the execution settled with, or zero if the
	// execution has not settled or settled successfully.
	Failure failure.Tag
	// Uploaded is the number of request body bytes sent so far.
	Uploaded int64
	// Downloaded is the number of response body bytes read so far.
	Downloaded int64
	// Progress is the most recent progress event reported.
	Progress Progress
	// data holds values stored by event handlers.
	data context.Context
}

// StatusCode returns the status code of the HTTP response. If there is
// no HTTP response, 0 is returned.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Now().Sub(e.Start)
	}
	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has settled. Once it returns
// true there will be no further changes to the execution.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Failed indicates whether the execution settled with a failure.
func (e *Execution) Failed() bool {
	return e.Failure.Valid()
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it:
//
// • it may not be nil;
//
// • it must be comparable;
//
// • it should not be of type string or any other built-in type to avoid
// collisions between different event handlers putting data into the
// same execution.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}
	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}
	return ctx.Value(key)
}
