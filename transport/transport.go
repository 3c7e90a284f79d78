// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/gogama/ajax"
	"go.uber.org/zap"
)

const (
	// Std names the standard library transport.
	Std = "std"
	// Resty names the resty transport.
	Resty = "resty"
)

// Options configures a constructed HTTPDoer. The zero value is valid.
type Options struct {
	// Timeout bounds each request, including reading the response
	// body. Zero means no timeout.
	Timeout time.Duration
	// HTTP2 enables HTTP/2 over TLS. It is only honored by the
	// standard library transport; resty negotiates on its own.
	HTTP2 bool
	// TLSConfig optionally overrides the TLS client configuration.
	TLSConfig *tls.Config
	// Logger receives the transport's own diagnostics, if it has any.
	// If nil, they are discarded.
	Logger *zap.Logger
}

// Names returns the names accepted by New.
func Names() []string {
	return []string{Std, Resty}
}

// New constructs the HTTPDoer named by name, which must be one of the
// values returned by Names.
func New(name string, opts Options) (ajax.HTTPDoer, error) {
	switch name {
	case Std, "":
		c, err := NewStd(opts)
		if err != nil {
			return nil, err
		}
		return c, nil
	case Resty:
		return NewResty(opts), nil
	default:
		return nil, fmt.Errorf("ajax/transport: unknown transport %q", name)
	}
}

func (opts *Options) logger() *zap.Logger {
	if opts.Logger == nil {
		return zap.NewNop()
	}
	return opts.Logger
}
