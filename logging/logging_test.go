// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"io/ioutil"
	"net/http"
	"strings"
	"syscall"
	"testing"

	"github.com/gogama/ajax"
	"github.com/gogama/ajax/failure"
	"github.com/gogama/ajax/request"
	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newClient(level zapcore.Level, doer doerFunc) (*ajax.Client, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	g := &ajax.HandlerGroup{}
	Install(g, zap.New(core))
	return &ajax.Client{HTTPDoer: doer, Handlers: g}, logs
}

func TestInstall(t *testing.T) {
	t.Run("nil logger", func(t *testing.T) {
		g := &ajax.HandlerGroup{}
		Install(g, nil)
		cl := &ajax.Client{
			HTTPDoer: doerFunc(func(*http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: 200, Body: ioutil.NopCloser(strings.NewReader("ok"))}, nil
			}),
			Handlers: g,
		}
		p := cl.Get("http://example.com", nil)
		_, err := p.Wait()
		require.NoError(t, err)
		assert.Empty(t, RequestID(p.Execution()))
	})
	t.Run("success", func(t *testing.T) {
		cl, logs := newClient(zapcore.DebugLevel, func(*http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode:    200,
				ContentLength: 5,
				Body:          ioutil.NopCloser(strings.NewReader("hello")),
			}, nil
		})

		p := cl.Get("http://example.com/a", nil)
		_, err := p.Wait()

		require.NoError(t, err)
		id := RequestID(p.Execution())
		_, err = uuid.Parse(id)
		assert.NoError(t, err)
		entries := logs.AllUntimed()
		require.Len(t, entries, 4)
		assert.Equal(t, "sending request", entries[0].Message)
		assert.Equal(t, "response received", entries[1].Message)
		assert.Equal(t, "progress", entries[2].Message)
		assert.Equal(t, "request succeeded", entries[3].Message)
		for _, entry := range entries {
			assert.Equal(t, id, entry.ContextMap()["request_id"])
		}
		assert.Equal(t, "http://example.com/a", entries[0].ContextMap()["url"])
		assert.Equal(t, "download", entries[2].ContextMap()["direction"])
		assert.Equal(t, int64(5), entries[2].ContextMap()["loaded"])
		assert.Equal(t, int64(200), entries[3].ContextMap()["status"])
	})
	t.Run("info level skips progress", func(t *testing.T) {
		cl, logs := newClient(zapcore.InfoLevel, func(*http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: 200, Body: ioutil.NopCloser(strings.NewReader("hello"))}, nil
		})

		_, err := cl.Get("http://example.com", nil).Wait()

		require.NoError(t, err)
		assert.Equal(t, 0, logs.FilterMessage("progress").Len())
		assert.Equal(t, 1, logs.FilterMessage("sending request").Len())
		assert.Equal(t, 1, logs.FilterMessage("request succeeded").Len())
	})
	t.Run("status failure", func(t *testing.T) {
		cl, logs := newClient(zapcore.InfoLevel, func(*http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: 503, Body: ioutil.NopCloser(strings.NewReader(""))}, nil
		})

		_, err := cl.Get("http://example.com", nil).Wait()

		assert.Equal(t, failure.Server, err)
		failed := logs.FilterMessage("request failed").AllUntimed()
		require.Len(t, failed, 1)
		assert.Equal(t, zapcore.WarnLevel, failed[0].Level)
		assert.Equal(t, "server error", failed[0].ContextMap()["failure"])
		assert.NotContains(t, failed[0].ContextMap(), "cause")
	})
	t.Run("transport failure", func(t *testing.T) {
		cl, logs := newClient(zapcore.InfoLevel, func(*http.Request) (*http.Response, error) {
			return nil, syscall.ECONNREFUSED
		})

		_, err := cl.Get("http://example.com", nil).Wait()

		assert.Equal(t, failure.Network, err)
		failed := logs.FilterMessage("request failed").AllUntimed()
		require.Len(t, failed, 1)
		assert.Equal(t, "network error", failed[0].ContextMap()["failure"])
		assert.Equal(t, failure.ConnRefused.String(), failed[0].ContextMap()["cause"])
		assert.Contains(t, failed[0].ContextMap(), "error")
	})
	t.Run("distinct ids", func(t *testing.T) {
		cl, _ := newClient(zapcore.InfoLevel, func(*http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: 200, Body: ioutil.NopCloser(strings.NewReader(""))}, nil
		})

		p1 := cl.Get("http://example.com/1", nil)
		p2 := cl.Get("http://example.com/2", nil)
		_, _ = p1.Wait()
		_, _ = p2.Wait()

		assert.NotEqual(t, RequestID(p1.Execution()), RequestID(p2.Execution()))
	})
}

func TestRequestID(t *testing.T) {
	e := &request.Execution{}
	assert.Equal(t, "", RequestID(e))
	e.SetValue(requestIDKey{}, "abc")
	assert.Equal(t, "abc", RequestID(e))
}
