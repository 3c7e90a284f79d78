// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package form

import (
	"net/url"
	"sort"
	"strings"

	"github.com/gogama/ajax/failure"
)

// ContentType is the content type of every encoded Payload.
const ContentType = "application/x-www-form-urlencoded"

// A Payload is a POST body which can be encoded into form data. The
// only implementations are Raw and Fields.
type Payload interface {
	// Encode returns the URL-encoded form body.
	Encode() string
	payload()
}

// Raw is a Payload which is already encoded. Its Encode method returns
// it unchanged.
type Raw string

// Encode returns r verbatim.
func (r Raw) Encode() string {
	return string(r)
}

func (r Raw) payload() {}

// A Field is a single key and its value. See EncodeComponent for the
// value kinds understood.
type Field struct {
	Key   string
	Value interface{}
}

// Fields is an ordered Payload. Fields are encoded in slice order.
type Fields []Field

// Encode encodes each field with EncodeComponent and joins the results
// with '&'. An empty Fields encodes to the empty string.
func (fs Fields) Encode() string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = EncodeComponent(f.Key, f.Value)
	}
	return strings.Join(parts, "&")
}

func (fs Fields) payload() {}

// Add appends a field and returns the extended slice.
func (fs Fields) Add(key string, value interface{}) Fields {
	return append(fs, Field{Key: key, Value: value})
}

// From converts v into a Payload.
//
// The accepted shapes are:
//
// • a Payload (Raw or Fields), returned as is;
//
// • a string, returned as Raw;
//
// • a map[string]interface{}, map[string]string or url.Values,
// converted to Fields in sorted key order (a url.Values entry becomes a
// sequence value, so a key with several values is encoded as key[]).
//
// Any other shape, including nil, produces failure.InvalidPostData.
func From(v interface{}) (Payload, error) {
	switch x := v.(type) {
	case Raw:
		return x, nil
	case Fields:
		if x == nil {
			return Fields{}, nil
		}
		return x, nil
	case string:
		return Raw(x), nil
	case map[string]interface{}:
		fs := make(Fields, 0, len(x))
		for _, k := range sortedKeys(x) {
			fs = append(fs, Field{Key: k, Value: x[k]})
		}
		return fs, nil
	case map[string]string:
		fs := make(Fields, 0, len(x))
		for _, k := range sortedKeys(x) {
			fs = append(fs, Field{Key: k, Value: x[k]})
		}
		return fs, nil
	case url.Values:
		fs := make(Fields, 0, len(x))
		for _, k := range sortedKeys(x) {
			if vs := x[k]; len(vs) == 1 {
				fs = append(fs, Field{Key: k, Value: vs[0]})
			} else {
				fs = append(fs, Field{Key: k, Value: vs})
			}
		}
		return fs, nil
	default:
		return nil, failure.InvalidPostData
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
