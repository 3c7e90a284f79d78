// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"

	"github.com/gogama/ajax/failure"
)

// Exit codes for the ajax command.
const (
	// ExitSuccess indicates the request succeeded.
	ExitSuccess = 0

	// ExitFailure indicates a failure not covered by another code, for
	// example a JSON path which matched nothing.
	ExitFailure = 1

	// ExitConfigError indicates the configuration could not be loaded.
	ExitConfigError = 3

	// ExitNetworkError indicates failure.Network.
	ExitNetworkError = 4

	// ExitRequestError indicates failure.Request.
	ExitRequestError = 5

	// ExitServerError indicates failure.Server.
	ExitServerError = 6

	// ExitAborted indicates failure.Aborted.
	ExitAborted = 7

	// ExitInvalidJSON indicates failure.InvalidJSON.
	ExitInvalidJSON = 8

	// ExitInvalidPostData indicates failure.InvalidPostData.
	ExitInvalidPostData = 9

	// ExitUsageError indicates invalid CLI usage.
	ExitUsageError = 64
)

var tagExitCodes = map[failure.Tag]int{
	failure.Network:         ExitNetworkError,
	failure.Request:         ExitRequestError,
	failure.Server:          ExitServerError,
	failure.Aborted:         ExitAborted,
	failure.InvalidJSON:     ExitInvalidJSON,
	failure.InvalidPostData: ExitInvalidPostData,
}

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if tag, ok := failure.Of(err); ok {
		return tagExitCodes[tag]
	}
	var ue usageError
	if errors.As(err, &ue) {
		return ExitUsageError
	}
	var ce configError
	if errors.As(err, &ce) {
		return ExitConfigError
	}
	return ExitFailure
}
