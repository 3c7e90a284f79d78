// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cli implements the ajax command.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gogama/ajax"
	"github.com/gogama/ajax/internal/config"
	"github.com/gogama/ajax/logging"
	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/transport"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

type options struct {
	configFile string
	transport  string
	timeout    time.Duration
	http2      bool
	logLevel   string
	progress   bool
	noColor    bool
}

// A session is the state shared by the subcommands of one invocation.
type session struct {
	ctx      context.Context
	opts     options
	client   *ajax.Client
	logger   *zap.Logger
	progress request.ProgressFunc
}

// Execute runs the ajax command with args, writing response bodies to
// stdout and everything else to stderr, and returns the exit code.
// Cancelling ctx aborts the request in flight.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	s := &session{ctx: ctx}
	root := newRootCmd(s)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if s.logger != nil {
		_ = s.logger.Sync()
	}
	if err != nil {
		printError(stderr, err)
	}
	return ExitCode(err)
}

func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:   "ajax",
		Short: "Issue HTTP GET and form POST requests",
		Long: `ajax sends a single GET or form-encoded POST request and prints
the response body. Failures are reported as one of a small set of
categories, each with its own exit code.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.setup(cmd)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	f := root.PersistentFlags()
	f.StringVar(&s.opts.configFile, "config", "", "Path to config file (env: AJAX_* variables override it)")
	f.StringVar(&s.opts.transport, "transport", transport.Std, "HTTP transport: std or resty (env: AJAX_TRANSPORT)")
	f.DurationVar(&s.opts.timeout, "timeout", 0, "Request timeout, 0 for none (env: AJAX_TIMEOUT_MS)")
	f.BoolVar(&s.opts.http2, "http2", true, "Enable HTTP/2 on the std transport (env: AJAX_HTTP2)")
	f.StringVar(&s.opts.logLevel, "log-level", "off", "Log level: off, debug, info, warn, error (env: AJAX_LOG_LEVEL)")
	f.BoolVar(&s.opts.progress, "progress", false, "Print transfer progress to stderr (env: AJAX_PROGRESS)")
	f.BoolVar(&s.opts.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(newGetCmd(s))
	root.AddCommand(newJSONCmd(s))
	root.AddCommand(newPostCmd(s))
	return root
}

// setup merges flags over the loaded configuration and builds the
// client. Flags given explicitly win over configuration.
func (s *session) setup(cmd *cobra.Command) error {
	if s.opts.noColor {
		color.NoColor = true
	}

	cfg, err := config.Load(s.opts.configFile)
	if err != nil {
		return configError{err}
	}
	f := cmd.Flags()
	if !f.Changed("transport") {
		s.opts.transport = cfg.Transport
	}
	if !f.Changed("timeout") {
		s.opts.timeout = cfg.Timeout
	}
	if !f.Changed("http2") {
		s.opts.http2 = cfg.HTTP2
	}
	if !f.Changed("log-level") {
		s.opts.logLevel = cfg.LogLevel
	}
	if !f.Changed("progress") {
		s.opts.progress = cfg.Progress
	}

	s.logger, err = newLogger(s.opts.logLevel, cmd.ErrOrStderr())
	if err != nil {
		return usageError{err}
	}

	doer, err := transport.New(s.opts.transport, transport.Options{
		Timeout: s.opts.timeout,
		HTTP2:   s.opts.http2,
		Logger:  s.logger,
	})
	if err != nil {
		return usageError{err}
	}

	handlers := &ajax.HandlerGroup{}
	logging.Install(handlers, s.logger)
	s.client = &ajax.Client{HTTPDoer: doer, Handlers: handlers}

	if s.opts.progress {
		s.progress = newProgressPrinter(cmd.ErrOrStderr()).print
	}
	return nil
}

// await waits for p, aborting it if the session context ends first.
func await[T any](s *session, p *ajax.Promise[T]) (T, error) {
	stop := context.AfterFunc(s.ctx, p.Abort)
	defer stop()
	return p.Wait()
}

func exactlyOneURL(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return usageError{err}
	}
	return nil
}
