// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging installs structured logging into an ajax.Client as
// event handlers.
//
//	handlers := &ajax.HandlerGroup{}
//	logging.Install(handlers, logger)
//	client := &ajax.Client{Handlers: handlers}
//
// Every execution is given a request ID, logged with each entry and
// retrievable with RequestID.
package logging

import (
	"github.com/gogama/ajax"
	"github.com/gogama/ajax/failure"
	"github.com/gogama/ajax/request"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestIDKey struct{}

// RequestID returns the request ID assigned to e by the handlers
// installed with Install, or the empty string if there is none.
func RequestID(e *request.Execution) string {
	id, _ := e.Value(requestIDKey{}).(string)
	return id
}

// Install pushes logging handlers onto the back of g. Progress is
// logged at debug level, sending at info level, and settlement at info
// level on success and warn level on failure.
//
// If l is nil, Install does nothing.
func Install(g *ajax.HandlerGroup, l *zap.Logger) {
	if l == nil {
		return
	}

	h := &handler{l: l}
	for _, evt := range ajax.Events() {
		g.PushBack(evt, h)
	}
}

type handler struct {
	l *zap.Logger
}

func (h *handler) Handle(evt ajax.Event, e *request.Execution) {
	switch evt {
	case ajax.BeforeExecutionStart:
		e.SetValue(requestIDKey{}, uuid.New().String())
	case ajax.BeforeSend:
		h.l.Info("sending request", h.fields(e,
			zap.String("method", e.Request.Method),
			zap.Stringer("url", e.Request.URL),
			zap.Int64("content_length", e.Request.ContentLength))...)
	case ajax.BeforeReadBody:
		h.l.Debug("response received", h.fields(e,
			zap.Int("status", e.StatusCode()),
			zap.Int64("content_length", e.Response.ContentLength))...)
	case ajax.Progress:
		if ce := h.l.Check(zap.DebugLevel, "progress"); ce != nil {
			ce.Write(h.fields(e,
				zap.Stringer("direction", e.Progress.Direction),
				zap.Int64("loaded", e.Progress.Loaded),
				zap.Int64("total", e.Progress.Total),
				zap.Bool("length_computable", e.Progress.LengthComputable))...)
		}
	case ajax.AfterSettle:
		h.settled(e)
	}
}

func (h *handler) settled(e *request.Execution) {
	fields := h.fields(e,
		zap.Int("status", e.StatusCode()),
		zap.Duration("duration", e.Duration()),
		zap.Int("body_bytes", len(e.Body)))
	if !e.Failed() {
		h.l.Info("request succeeded", fields...)
		return
	}

	fields = append(fields, zap.Stringer("failure", e.Failure))
	if e.Err != nil {
		fields = append(fields,
			zap.Stringer("cause", failure.Detail(e.Err)),
			zap.Error(e.Err))
	}
	h.l.Warn("request failed", fields...)
}

func (h *handler) fields(e *request.Execution, extra ...zap.Field) []zap.Field {
	return append([]zap.Field{zap.String("request_id", RequestID(e))}, extra...)
}
