// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"net/http"

	"github.com/go-resty/resty/v2"
)

// A RestyDoer adapts a resty.Client to the HTTPDoer interface.
//
// Responses are returned unparsed, so the caller reads and closes the
// body exactly as it would with an http.Client.
type RestyDoer struct {
	client *resty.Client
}

// NewResty creates a new RestyDoer configured by opts.
func NewResty(opts Options) *RestyDoer {
	c := resty.New()
	c.SetTimeout(opts.Timeout)
	c.SetLogger(opts.logger().Sugar())
	if opts.TLSConfig != nil {
		c.SetTLSClientConfig(opts.TLSConfig.Clone())
	}
	return &RestyDoer{client: c}
}

// Client exposes the underlying resty.Client for further configuration.
func (d *RestyDoer) Client() *resty.Client {
	return d.client
}

// Do sends req through resty. The request's context, method, URL,
// header, host override and body are carried over.
func (d *RestyDoer) Do(req *http.Request) (*http.Response, error) {
	r := d.client.R().
		SetContext(req.Context()).
		SetDoNotParseResponse(true)
	for k, vs := range req.Header {
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	if req.Host != "" && req.Host != req.URL.Host {
		r.Header.Set("Host", req.Host)
	}
	if req.Body != nil && req.Body != http.NoBody {
		r.SetBody(req.Body)
	}
	resp, err := r.Execute(req.Method, req.URL.String())
	if err != nil {
		return nil, err
	}
	return resp.RawResponse, nil
}

// CloseIdleConnections closes idle connections held by the underlying
// http.Client.
func (d *RestyDoer) CloseIdleConnections() {
	d.client.GetClient().CloseIdleConnections()
}
