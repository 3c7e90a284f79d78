// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality, such as logging.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// plan execution starts.
	//
	// When Client fires BeforeExecutionStart, the execution is
	// non-nil but the only field that has been set is the plan.
	BeforeExecutionStart Event = iota
	// BeforeSend identifies the event that occurs before the HTTP
	// request is handed to the HTTPDoer.
	//
	// When Client fires BeforeSend, the execution's request field is
	// set to the HTTP request that WILL BE sent after all BeforeSend
	// handlers have finished. Handlers may modify the request, but
	// should leave its body alone.
	BeforeSend
	// BeforeReadBody identifies the event that occurs after the HTTP
	// request has resulted in an HTTP response (as opposed to an error)
	// but before the response body is read.
	//
	// BeforeReadBody fires regardless of the response status code.
	BeforeReadBody
	// Progress identifies the event that occurs each time part of the
	// request body is sent or part of the response body is read.
	//
	// When Client fires Progress, the execution's progress field holds
	// the event being reported. Progress never fires after AfterSettle.
	Progress
	// AfterSettle identifies the event that occurs when the execution
	// settles, regardless of whether it succeeded.
	//
	// When Client fires AfterSettle, the execution's end time is set,
	// its failure field holds the failure tag (zero on success), and
	// its error field holds the raw cause of a transport failure. No
	// field changes after AfterSettle.
	AfterSettle
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeSend",
	"BeforeReadBody",
	"Progress",
	"AfterSettle",
}

// Events returns a slice containing all events which can occur in a
// plan execution by Client, in the order in which they are declared.
// Progress events may interleave with BeforeSend and BeforeReadBody.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeSend,
		BeforeReadBody,
		Progress,
		AfterSettle,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
