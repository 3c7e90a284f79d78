// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gogama/ajax/request"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// progressPrinter writes one line per progress event. It is called
// from the execution goroutine, and the upload side may report from
// the transport's writer goroutine, so writes are serialized.
type progressPrinter struct {
	mu   sync.Mutex
	w    io.Writer
	cyan *color.Color
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{w: w, cyan: color.New(color.FgCyan)}
}

func (pp *progressPrinter) print(pr request.Progress) {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	if pr.LengthComputable {
		_, _ = pp.cyan.Fprintf(pp.w, "%s %s / %s (%.0f%%)\n", pr.Direction,
			humanize.Bytes(uint64(pr.Loaded)), humanize.Bytes(uint64(pr.Total)),
			100*pr.Fraction())
		return
	}
	_, _ = pp.cyan.Fprintf(pp.w, "%s %s\n", pr.Direction, humanize.Bytes(uint64(pr.Loaded)))
}

func printError(w io.Writer, err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(w, "%s %v\n", red("ajax:"), err)
}

// newLogger builds a JSON logger writing to w. The level "off" (or an
// empty level) returns nil, meaning no logging.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	var lvl zapcore.Level
	switch level {
	case "", "off", "none":
		return nil, nil
	case "debug":
		lvl = zapcore.DebugLevel
	case "info":
		lvl = zapcore.InfoLevel
	case "warn", "warning":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		lvl,
	)

	return zap.New(core), nil
}
