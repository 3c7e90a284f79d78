// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transport constructs HTTPDoer implementations for use as the
HTTPDoer of an ajax.Client.

NewStd returns a standard library HTTP client, optionally with HTTP/2
enabled through golang.org/x/net/http2. NewResty returns a doer backed
by a resty client. New picks one of the two by name:

	doer, err := transport.New("resty", transport.Options{Timeout: 10 * time.Second})
	...
	client := &ajax.Client{HTTPDoer: doer}
*/
package transport
