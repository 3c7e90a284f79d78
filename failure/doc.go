// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package failure defines the closed set of failure tags a request
// execution can settle with, and classifies raw transport errors and
// HTTP status codes into those tags.
//
// Every failure surfaced by package ajax is a Tag. Callers switch on
// the tag value rather than comparing error strings:
//
//	body, err := client.Get(u, nil).Wait()
//	switch tag, _ := failure.Of(err); tag {
//	case failure.Network:
//		...
//	case failure.Request, failure.Server:
//		...
//	}
package failure
