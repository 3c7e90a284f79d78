// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import "fmt"

// A Direction tells which body a Progress event is about.
type Direction int

const (
	// Upload progress is reported while the request body is sent.
	Upload Direction = iota
	// Download progress is reported while the response body is read.
	Download
)

// String returns "upload" or "download".
func (d Direction) String() string {
	if d == Upload {
		return "upload"
	}
	return "download"
}

// A Progress event reports partial transfer of a request or response
// body.
type Progress struct {
	// Direction tells whether the request body is being uploaded or the
	// response body downloaded.
	Direction Direction
	// Loaded is the number of body bytes transferred so far.
	Loaded int64
	// Total is the expected body size in bytes. It is only meaningful
	// when LengthComputable is true.
	Total int64
	// LengthComputable is true when the total body size is known: always
	// for uploads, and for downloads whose response carried a content
	// length.
	LengthComputable bool
}

// Fraction returns Loaded/Total in [0, 1], or -1 if the length is not
// computable.
func (p Progress) Fraction() float64 {
	if !p.LengthComputable || p.Total <= 0 {
		return -1
	}
	f := float64(p.Loaded) / float64(p.Total)
	if f > 1 {
		f = 1
	}
	return f
}

// String returns a short description such as "download 10/20".
func (p Progress) String() string {
	if !p.LengthComputable {
		return fmt.Sprintf("%s %d", p.Direction, p.Loaded)
	}
	return fmt.Sprintf("%s %d/%d", p.Direction, p.Loaded, p.Total)
}

// A ProgressFunc receives progress events for one plan execution. It is
// never called after the execution settles, and never concurrently with
// itself.
type ProgressFunc func(Progress)
