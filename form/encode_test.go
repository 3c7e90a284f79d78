// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package form

import (
	"math"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flag bool

type rawBytes []byte

func TestEncodeComponent(t *testing.T) {
	testCases := []struct {
		name     string
		key      string
		value    interface{}
		expected string
	}{
		{"true", "a", true, "a=yes"},
		{"false", "b", false, "b=no"},
		{"nil", "c", nil, "c="},
		{"empty interface slice", "d", []interface{}{}, "d="},
		{"empty string slice", "d", []string{}, "d="},
		{"nil string slice", "d", []string(nil), "d="},
		{"int slice", "e", []int{1, 2}, "e%5B%5D=1&e%5B%5D=2"},
		{"int32 slice", "e", []int32{1, 2}, "e%5B%5D=1&e%5B%5D=2"},
		{"int array", "e", [2]int{1, 2}, "e%5B%5D=1&e%5B%5D=2"},
		{"empty array", "e", [0]string{}, "e="},
		{"empty uint slice", "e", []uint{}, "e="},
		{"float32 slice", "e", []float32{1.5}, "e%5B%5D=1.5"},
		{"named bool slice", "e", []flag{true, false}, "e%5B%5D=true&e%5B%5D=false"},
		{"mixed slice", "e", []interface{}{"x y", 3, true, nil}, "e%5B%5D=x%20y&e%5B%5D=3&e%5B%5D=true&e%5B%5D="},
		{"string", "name", "Ada Lovelace", "name=Ada%20Lovelace"},
		{"empty string", "name", "", "name="},
		{"int", "n", 42, "n=42"},
		{"negative int64", "n", int64(-7), "n=-7"},
		{"uint8", "n", uint8(255), "n=255"},
		{"float", "f", 1.5, "f=1.5"},
		{"whole float", "f", 2.0, "f=2"},
		{"large float", "f", 1e21, "f=1e%2B21"},
		{"small float", "f", 1e-7, "f=1e-7"},
		{"small float32", "f", float32(1.5e-7), "f=1.5e-7"},
		{"negative zero", "f", math.Copysign(0, -1), "f=0"},
		{"NaN", "f", math.NaN(), "f=NaN"},
		{"infinity", "f", math.Inf(-1), "f=-Infinity"},
		{"named true", "f", flag(true), "f=yes"},
		{"named false", "f", flag(false), "f=no"},
		{"bytes are scalar", "b", []byte("hi"), "b=hi"},
		{"named bytes are scalar", "b", rawBytes("hi"), "b=hi"},
		{"stringer", "d", 1500 * time.Millisecond, "d=1.5s"},
		{"struct", "s", struct{ A int }{1}, "s=%7B1%7D"},
		{"reserved characters", "k&=?", "a+b/c:d;e,f", "k%26%3D%3F=a%2Bb%2Fc%3Ad%3Be%2Cf"},
		{"unreserved characters", "-_.!~*'()", "-_.!~*'()", "-_.!~*'()=-_.!~*'()"},
		{"unicode", "ключ", "é", "%D0%BA%D0%BB%D1%8E%D1%87=%C3%A9"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, EncodeComponent(testCase.key, testCase.value))
		})
	}
}

func TestEncodeComponent_Decodes(t *testing.T) {
	s := EncodeComponent("tags", []string{"a&b", "c=d", "e f"})
	values, err := url.ParseQuery(s)
	require.NoError(t, err)
	assert.Equal(t, url.Values{"tags[]": {"a&b", "c=d", "e f"}}, values)
}

func TestEscapeComponent(t *testing.T) {
	assert.Equal(t, "", EscapeComponent(""))
	assert.Equal(t, "abcXYZ019", EscapeComponent("abcXYZ019"))
	assert.Equal(t, "%20%2B%25", EscapeComponent(" +%"))
	assert.Equal(t, "%5B%5D", EscapeComponent("[]"))
	assert.Equal(t, "%23%24%40", EscapeComponent("#$@"))
}

func TestScalarString(t *testing.T) {
	assert.Equal(t, "", ScalarString(nil))
	assert.Equal(t, "true", ScalarString(true))
	assert.Equal(t, "false", ScalarString(false))
	assert.Equal(t, "0.1", ScalarString(float32(0.1)))
	assert.Equal(t, "1e+21", ScalarString(1e21))
	assert.Equal(t, "0.000001", ScalarString(1e-6))
	assert.Equal(t, "-2.5e-8", ScalarString(-2.5e-8))
	assert.Equal(t, "100000000000000000000", ScalarString(1e20))
	assert.Equal(t, "18446744073709551615", ScalarString(uint64(1<<64-1)))
	assert.Equal(t, "-128", ScalarString(int8(-128)))
}
