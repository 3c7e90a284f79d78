// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	urlpkg "net/url"
	"strings"

	"github.com/gogama/ajax/form"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

const (
	nilCtxMsg   = "ajax/request: nil context"
	emptyURLMsg = "ajax/request: empty URL"
)

// A Plan describes one HTTP request to be executed by a client.
//
// Like http.Request, a Plan has a context which controls the execution
// and can be used to abort it at any time.
type Plan struct {
	// Method is either GET or POST. An empty string means GET.
	Method string
	// URL specifies the URL to access. It is sent as given; no query
	// string is added to it.
	URL *urlpkg.URL
	// Header contains the request header fields to be sent. When Body
	// is non-nil, the Content-Type header is always set to
	// form.ContentType.
	Header http.Header
	// Body is the URL-encoded form body. A nil Body means the request
	// is sent without a body. A non-nil but empty Body is sent as an
	// empty form body, with the form content type.
	Body []byte
	// Progress, if non-nil, receives upload and download progress
	// events during the execution.
	Progress ProgressFunc
	// Host optionally overrides the Host header to send. If empty, the
	// value of URL.Host will be sent.
	Host string
	// ctx allows the Plan execution to be aborted. It should only be
	// modified by copying the whole Plan using WithContext.
	ctx context.Context
}

// NewPlan wraps NewPlanWithContext using the background context.
func NewPlan(method, url string, body form.Payload) (*Plan, error) {
	return NewPlanWithContext(context.Background(), method, url, body)
}

// NewPlanWithContext returns a new Plan given a method, URL, and
// optional form body.
//
// The method is matched case-insensitively and must be GET or POST. A
// nil body means no body is sent.
func NewPlanWithContext(ctx context.Context, method, url string, body form.Payload) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	m, err := normalizeMethod(method)
	if err != nil {
		return nil, err
	}
	if url == "" {
		return nil, errors.New(emptyURLMsg)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	var b []byte
	if body != nil {
		b = []byte(body.Encode())
	}
	return &Plan{
		ctx:    ctx,
		Method: m,
		URL:    u,
		Header: make(http.Header),
		Body:   b,
		Host:   u.Host,
	}, nil
}

// Context returns the request plan's context. To change the context,
// use WithContext.
//
// The returned context is always non-nil; it defaults to the
// background context.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of p with its context changed to
// ctx, which must be non-nil.
//
// The context controls the entire lifetime of the execution, including
// obtaining a connection, sending the request, and reading the response
// headers and body.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	p2 := new(Plan)
	*p2 = *p
	p2.ctx = ctx
	return p2
}

// WithProgress returns a shallow copy of p with its progress callback
// set to f, which may be nil.
func (p *Plan) WithProgress(f ProgressFunc) *Plan {
	p2 := new(Plan)
	*p2 = *p
	p2.Progress = f
	return p2
}

// HasBody reports whether the plan sends a request body.
func (p *Plan) HasBody() bool {
	return p.Body != nil
}

// ToRequest creates an HTTP request corresponding to the given request
// plan. The context of the new request is set to ctx, which may not be
// nil.
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	r := template.WithContext(ctx)
	r.Method = p.Method
	r.URL = p.URL
	r.Header = p.Header.Clone()
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	if p.HasBody() {
		r.Header.Set("Content-Type", form.ContentType)
		r.Body = ioutil.NopCloser(bytes.NewReader(p.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return ioutil.NopCloser(bytes.NewReader(p.Body)), nil
		}
		r.ContentLength = int64(len(p.Body))
		if len(p.Body) == 0 {
			r.Body = http.NoBody
			r.GetBody = func() (io.ReadCloser, error) { return http.NoBody, nil }
		}
	}
	r.Host = p.Host
	return r
}

func normalizeMethod(method string) (string, error) {
	switch strings.ToUpper(method) {
	case "", http.MethodGet:
		return http.MethodGet, nil
	case http.MethodPost:
		return http.MethodPost, nil
	default:
		return "", fmt.Errorf("ajax/request: unsupported method %q", method)
	}
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
