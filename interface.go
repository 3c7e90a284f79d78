// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"time"

	"github.com/gogama/ajax/failure"
	"github.com/gogama/ajax/form"
	"github.com/gogama/ajax/request"
	"github.com/tidwall/gjson"
)

// Requester is the interface that wraps the basic Do method.
//
// Do starts executing a request plan and returns a promise for the
// response body text. Client implements the Requester interface, and
// any other Requester implementation must behave substantially the same
// as Client.Do.
//
// Any Requester can be converted into an Executor via the Inflate
// function.
type Requester interface {
	Do(p *request.Plan) *Promise[string]
}

// Getter is the interface that wraps the basic Get method.
//
// Any Requester can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(url string, onProgress request.ProgressFunc) *Promise[string]
}

// JSONGetter is the interface that wraps the basic GetJSON method.
//
// Any Requester can be used to emulate a JSONGetter via the GetJSON
// function.
type JSONGetter interface {
	GetJSON(url string, onProgress request.ProgressFunc) *Promise[gjson.Result]
}

// Poster is the interface that wraps the basic Post and PostValue
// methods.
//
// Any Requester can be used to emulate a Poster via the Post and
// PostValue functions.
type Poster interface {
	Post(url string, data form.Payload, onProgress request.ProgressFunc) *Promise[string]
	PostValue(url string, data interface{}, onProgress request.ProgressFunc) *Promise[string]
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any idle connections left over from previous requests. It does
// not interrupt any connections currently in use.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the interface that groups the basic Do, Get, GetJSON,
// Post, PostValue, and CloseIdleConnections methods.
//
// Any Requester can be converted into an Executor via the Inflate
// function.
type Executor interface {
	Requester
	Getter
	JSONGetter
	Poster
	IdleCloser
}

// Get uses the specified Requester to issue a GET to the specified URL.
//
// If url cannot be parsed, no request is sent and the promise fails
// with failure.Network; the parse error is kept as the execution's Err.
func Get(r Requester, url string, onProgress request.ProgressFunc) *Promise[string] {
	return do(r, "GET", url, nil, onProgress)
}

// GetJSON uses the specified Requester to issue a GET to the specified
// URL and parses the response body as JSON.
//
// Failures of the GET are passed through unchanged. If the GET succeeds
// but its body is not valid JSON, the promise fails with
// failure.InvalidJSON.
func GetJSON(r Requester, url string, onProgress request.ProgressFunc) *Promise[gjson.Result] {
	return Then(Get(r, url, onProgress), parseJSON)
}

// Post uses the specified Requester to issue a POST to the specified
// URL, with data encoded as an application/x-www-form-urlencoded body.
//
// If data is nil, no request is sent and the promise fails with
// failure.InvalidPostData.
func Post(r Requester, url string, data form.Payload, onProgress request.ProgressFunc) *Promise[string] {
	if data == nil {
		return Reject[string](failure.InvalidPostData)
	}
	return do(r, "POST", url, data, onProgress)
}

// PostValue is like Post but first converts data with form.From. If the
// conversion fails, no request is sent and the promise fails with
// failure.InvalidPostData.
func PostValue(r Requester, url string, data interface{}, onProgress request.ProgressFunc) *Promise[string] {
	p, err := form.From(data)
	if err != nil {
		return Reject[string](failure.InvalidPostData)
	}
	return Post(r, url, p, onProgress)
}

func do(r Requester, method, url string, data form.Payload, onProgress request.ProgressFunc) *Promise[string] {
	p, err := request.NewPlan(method, url, data)
	if err != nil {
		return rejectPlan(err)
	}
	p.Progress = onProgress
	return r.Do(p)
}

func rejectPlan(err error) *Promise[string] {
	now := time.Now()
	pr := newPromise[string](nil)
	pr.settle("", failure.Network, &request.Execution{
		Start:   now,
		End:     now,
		Err:     err,
		Failure: failure.Network,
	})
	return pr
}

func parseJSON(body string) (gjson.Result, error) {
	if !gjson.Valid(body) {
		return gjson.Result{}, failure.InvalidJSON
	}
	return gjson.Parse(body), nil
}

// Inflate converts any non-nil Requester into an Executor. This may be
// helpful for interop across library boundaries, i.e. if code that only
// has access to a Requester needs to call a function that requires an
// Executor.
func Inflate(r Requester) Executor {
	if r == nil {
		panic("ajax: nil requester")
	}

	if e, ok := r.(Executor); ok {
		return e
	}

	return inflated{r}
}

type inflated struct {
	requester Requester
}

func (i inflated) Do(p *request.Plan) *Promise[string] {
	return i.requester.Do(p)
}

func (i inflated) Get(url string, onProgress request.ProgressFunc) *Promise[string] {
	return Get(i.requester, url, onProgress)
}

func (i inflated) GetJSON(url string, onProgress request.ProgressFunc) *Promise[gjson.Result] {
	return GetJSON(i.requester, url, onProgress)
}

func (i inflated) Post(url string, data form.Payload, onProgress request.ProgressFunc) *Promise[string] {
	return Post(i.requester, url, data, onProgress)
}

func (i inflated) PostValue(url string, data interface{}, onProgress request.ProgressFunc) *Promise[string] {
	return PostValue(i.requester, url, data, onProgress)
}

func (i inflated) CloseIdleConnections() {
	if ic, ok := i.requester.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
