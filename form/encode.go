// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package form

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// EncodeComponent encodes one key and its value as form data.
//
// The value is matched against the following kinds, in order:
//
// • true encodes as "yes" and false as "no";
//
// • nil encodes as the empty string;
//
// • an empty sequence (slice or array) encodes as the empty string;
//
// • a non-empty sequence suffixes the key with "[]" and produces one
// key[]=element pair per element, joined with '&';
//
// • anything else is a scalar, converted to a string by ScalarString.
//
// Both the key and every value are escaped with EscapeComponent.
func EncodeComponent(key string, value interface{}) string {
	switch v := value.(type) {
	case bool:
		if v {
			return pair(key, "yes")
		}
		return pair(key, "no")
	case nil:
		return pair(key, "")
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Bool {
		if rv.Bool() {
			return pair(key, "yes")
		}
		return pair(key, "no")
	}

	elems, ok := sequence(value)
	if !ok {
		return pair(key, ScalarString(value))
	}
	if len(elems) == 0 {
		return pair(key, "")
	}

	key += "[]"
	parts := make([]string, len(elems))
	for i, elem := range elems {
		parts[i] = pair(key, ScalarString(elem))
	}
	return strings.Join(parts, "&")
}

// ScalarString converts a scalar value to its form string. Strings are
// used verbatim, booleans are "true" or "false", integers are decimal,
// floats use the shortest representation that round-trips, nil is the
// empty string, and a fmt.Stringer uses its String method. Other values
// are formatted with fmt.Sprint.
//
// Floats switch to exponent form ("1e+21", "1.5e-7") when their
// magnitude is at least 1e21 or below 1e-6, and non-finite floats are
// "NaN", "Infinity" and "-Infinity", matching what a browser sends.
func ScalarString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)
	case fmt.Stringer:
		return v.String()
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return string(rv.Bytes())
	}
	return fmt.Sprint(value)
}

// sequence returns the elements of value if it is one of the sequence
// kinds understood by EncodeComponent. A []byte is a scalar.
func sequence(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case []interface{}:
		return v, true
	case []string:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case []int:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case []int64:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case []float64:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case []bool:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
	case reflect.Array:
	default:
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}
	s := strconv.FormatFloat(f, 'e', -1, bitSize)
	// Exponent digits are never zero-padded: 1e-07 becomes 1e-7.
	i := strings.IndexByte(s, 'e')
	exp := strings.TrimLeft(s[i+2:], "0")
	return s[:i+2] + exp
}

func pair(key, value string) string {
	return EscapeComponent(key) + "=" + EscapeComponent(value)
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent percent-encodes s as a URI component. Letters,
// digits and the characters -_.!~*'() are left as is; every other byte
// is percent-encoded, with space becoming %20 rather than '+'.
func EscapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
