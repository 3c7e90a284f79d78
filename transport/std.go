// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/http2"
)

// NewStd returns a standard library HTTP client configured by opts.
//
// The client's transport is built fresh rather than cloned from
// http.DefaultTransport, so HTTP/2 can be configured onto it with
// http2.ConfigureTransport.
func NewStd(opts Options) (*http.Client, error) {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if opts.TLSConfig != nil {
		t.TLSClientConfig = opts.TLSConfig.Clone()
	}
	if opts.HTTP2 {
		if err := http2.ConfigureTransport(t); err != nil {
			return nil, fmt.Errorf("ajax/transport: configure http2: %w", err)
		}
	}

	opts.logger().Debug("standard transport ready",
		zap.Duration("timeout", opts.Timeout),
		zap.Bool("http2", opts.HTTP2))

	return &http.Client{
		Transport: t,
		Timeout:   opts.Timeout,
	}, nil
}
