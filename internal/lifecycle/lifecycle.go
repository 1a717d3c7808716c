// Package lifecycle wraps execution of the user's command with timing and
// completion notification dispatch.
//
// The package is intentionally minimal: no event bus, no goroutines. Run
// executes the command, renders the completion message and hands it to the
// dispatcher exactly once.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/cli-notifier/li/internal/logger"
	"github.com/cli-notifier/li/internal/notify"
	"github.com/cli-notifier/li/internal/runner"
)

// Dispatcher sends one message to every configured channel.
// It is satisfied by *notify.Manager.
type Dispatcher interface {
	SendAll(ctx context.Context, message string) error
}

// Executor runs the wrapped command to completion.
type Executor func(ctx context.Context, command []string) (runner.Result, error)

// RunnerExecutor adapts runner.Run with fixed options to an Executor.
func RunnerExecutor(opts runner.Options) Executor {
	return func(ctx context.Context, command []string) (runner.Result, error) {
		return runner.Run(ctx, command, opts)
	}
}

// Run executes command and dispatches the completion message.
//
// If exec fails (the command could not be started), the error is returned
// and nothing is dispatched. A non-zero exit is a normal completion. Dispatch
// failures and dispatcher panics are logged and never turned into an error.
func Run(ctx context.Context, dispatcher Dispatcher, command []string, exec Executor) (runner.Result, error) {
	result, err := exec(ctx, command)
	if err != nil {
		return result, err
	}
	logger.Debug("command finished",
		"status", result.Status, "success", result.Success(), "duration", result.Duration)

	dispatch(ctx, dispatcher, notify.FormatMessage(command, result.Status))
	return result, nil
}

// dispatch safely calls SendAll with panic recovery.
func dispatch(ctx context.Context, dispatcher Dispatcher, message string) {
	if dispatcher == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("failed to send notifications", "error", fmt.Sprint(r))
		}
	}()

	if err := dispatcher.SendAll(ctx, message); err != nil {
		logger.Error("failed to send notifications", "error", err)
	}
}
