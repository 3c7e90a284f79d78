// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package form builds application/x-www-form-urlencoded request bodies.

A POST body is described by a Payload, which is one of exactly two
shapes: a Raw string sent verbatim, or an ordered list of Fields each
encoded with EncodeComponent.

	p := form.Fields{
		{Key: "name", Value: "Ada"},
		{Key: "admin", Value: true},
		{Key: "tags", Value: []string{"x", "y"}},
	}
	p.Encode() // name=Ada&admin=yes&tags%5B%5D=x&tags%5B%5D=y

Use From to convert a dynamically shaped value into a Payload. Shapes
other than a string or a mapping are rejected with
failure.InvalidPostData.
*/
package form
