// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gogama/ajax/failure"
	"github.com/gogama/ajax/form"
	"github.com/gogama/ajax/request"
	"github.com/tidwall/gjson"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

var emptyHandlers = HandlerGroup{}

// A Client issues HTTP requests asynchronously and reports each outcome
// through a Promise. Its zero value is a valid configuration.
//
// The zero value client uses http.DefaultClient (from net/http) as the
// HTTPDoer and an empty handler group (no event handlers/plug-ins).
//
// Client is safe for concurrent use by multiple goroutines. Every
// execution owns its own goroutine, request and promise; nothing is
// shared between executions except the HTTPDoer and the handlers.
//
// On top of the features provided by the HTTPDoer, Client adds:
//
// • a single, closed failure taxonomy (package failure) in place of
// raw transport errors and status codes;
//
// • upload and download progress reporting;
//
// • abort through the returned promise; and
//
// • user-provided handler functions at designated plug-in points.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard net/http
	// package is used.
	HTTPDoer HTTPDoer
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during execution of a request plan.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
}

// Do starts executing a request plan and returns a promise for the
// response body text. Do never blocks and never returns nil.
//
// The promise settles exactly once:
//
// • with failure.Aborted if the promise is aborted or the plan context
// is cancelled before the execution completes;
//
// • with failure.Network if the HTTPDoer returns an error, reading the
// response body fails, the plan context deadline passes, or the status
// code is 0;
//
// • with failure.Request if the status code is in [400, 500);
//
// • with failure.Server if the status code is 500 or more; and
//
// • with the response body as text otherwise.
//
// Whichever outcome is observed first wins. Progress events are
// delivered to the plan's progress callback, and to Progress handlers,
// only before the promise settles.
func (c *Client) Do(p *request.Plan) *Promise[string] {
	ctx, cancel := context.WithCancel(p.Context())
	x := &execution{
		e:        &request.Execution{Plan: p},
		handlers: c.handlers(),
		progress: p.Progress,
	}
	x.promise = newPromise[string](cancel)
	stop := context.AfterFunc(ctx, func() {
		err := ctx.Err()
		x.settle(failure.FromErr(ctx, err), err, "")
	})
	go x.run(ctx, c.doer(), func() {
		stop()
		cancel()
	})
	return x.promise
}

// Get issues a GET to the specified URL. The progress callback may be
// nil.
func (c *Client) Get(url string, onProgress request.ProgressFunc) *Promise[string] {
	return Get(c, url, onProgress)
}

// GetJSON issues a GET to the specified URL and parses the response
// body as JSON. A body which is not valid JSON fails the promise with
// failure.InvalidJSON.
func (c *Client) GetJSON(url string, onProgress request.ProgressFunc) *Promise[gjson.Result] {
	return GetJSON(c, url, onProgress)
}

// Post issues a POST to the specified URL, with data encoded as the
// form body. A nil data fails the promise with failure.InvalidPostData
// without sending a request.
func (c *Client) Post(url string, data form.Payload, onProgress request.ProgressFunc) *Promise[string] {
	return Post(c, url, data, onProgress)
}

// PostValue is like Post but accepts any value form.From understands.
// Other shapes fail the promise with failure.InvalidPostData without
// sending a request.
func (c *Client) PostValue(url string, data interface{}, onProgress request.ProgressFunc) *Promise[string] {
	return PostValue(c, url, data, onProgress)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	doer := c.doer()
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

func (c *Client) handlers() *HandlerGroup {
	if c.Handlers == nil {
		return &emptyHandlers
	}

	return c.Handlers
}

// An execution is the private state of one Client.Do call. Every write
// to the request.Execution happens with mu held and only while settled
// is false, so once the promise settles the execution is frozen.
type execution struct {
	mu       sync.Mutex
	settled  bool
	e        *request.Execution
	handlers *HandlerGroup
	progress request.ProgressFunc
	promise  *Promise[string]
}

func (x *execution) run(ctx context.Context, doer HTTPDoer, done func()) {
	defer done()

	var req *http.Request
	if !x.update(func(e *request.Execution) {
		x.handlers.run(BeforeExecutionStart, e)
		e.Start = time.Now()
		e.Request = e.Plan.ToRequest(ctx)
		if e.Request.Body != nil && e.Request.Body != http.NoBody {
			e.Request.Body = &progressReader{
				r:     e.Request.Body,
				total: e.Request.ContentLength,
				dir:   request.Upload,
				x:     x,
			}
		}
		x.handlers.run(BeforeSend, e)
		req = e.Request
	}) {
		return
	}

	resp, err := doer.Do(req)
	if err != nil {
		x.settle(failure.FromErr(ctx, err), err, "")
		return
	}
	if resp.Body == nil {
		resp.Body = http.NoBody
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if !x.update(func(e *request.Execution) {
		e.Response = resp
		x.handlers.run(BeforeReadBody, e)
	}) {
		return
	}

	var buf bytes.Buffer
	_, err = buf.ReadFrom(&progressReader{
		r:     resp.Body,
		total: resp.ContentLength,
		dir:   request.Download,
		x:     x,
	})
	if err != nil {
		x.settle(failure.FromErr(ctx, err), err, "")
		return
	}

	body := buf.Bytes()
	x.update(func(e *request.Execution) {
		e.Body = body
	})
	if tag, fail := failure.FromStatus(resp.StatusCode); fail {
		x.settle(tag, nil, "")
		return
	}
	x.settle(0, nil, string(body))
}

// update runs f with the lock held, unless the execution has already
// settled. It reports whether f ran.
func (x *execution) update(f func(*request.Execution)) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.settled {
		return false
	}
	f(x.e)
	return true
}

func (x *execution) report(dir request.Direction, loaded, total int64) {
	x.update(func(e *request.Execution) {
		pr := request.Progress{
			Direction:        dir,
			Loaded:           loaded,
			Total:            total,
			LengthComputable: total >= 0,
		}
		if !pr.LengthComputable {
			pr.Total = 0
		}
		if dir == request.Upload {
			e.Uploaded = loaded
		} else {
			e.Downloaded = loaded
		}
		e.Progress = pr
		if x.progress != nil {
			x.progress(pr)
		}
		x.handlers.run(Progress, e)
	})
}

// settle freezes the execution and resolves the promise. A zero tag
// means success, in which case body is the promise value.
func (x *execution) settle(tag failure.Tag, cause error, body string) {
	if !x.update(func(e *request.Execution) {
		x.settled = true
		e.End = time.Now()
		if !e.Started() {
			e.Start = e.End
		}
		e.Failure = tag
		e.Err = cause
		x.handlers.run(AfterSettle, e)
	}) {
		return
	}

	if tag.Valid() {
		x.promise.settle("", tag, x.e)
	} else {
		x.promise.settle(body, nil, x.e)
	}
}

// A progressReader reports progress to its execution after every read
// which transfers at least one byte.
type progressReader struct {
	r      io.Reader
	total  int64
	dir    request.Direction
	x      *execution
	loaded int64
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.loaded += int64(n)
		pr.x.report(pr.dir, pr.loaded, pr.total)
	}
	return n, err
}

func (pr *progressReader) Close() error {
	if c, ok := pr.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
