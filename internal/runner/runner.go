// Package runner executes the wrapped command and reports how it finished.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	apperrors "github.com/cli-notifier/li/internal/errors"
	"github.com/cli-notifier/li/internal/logger"
)

// Result describes a finished command.
type Result struct {
	// ExitCode is the process exit code, or -1 when it was killed by a signal.
	ExitCode int
	// Signaled is true when the process was terminated by a signal.
	Signaled bool
	// Status is the rendered status used in the notification message,
	// e.g. "exit status: 0" or "signal: 9 (SIGKILL)".
	Status string
	// Duration is the wall time between start and exit.
	Duration time.Duration
}

// Success reports whether the command exited normally with code 0.
func (r Result) Success() bool {
	return !r.Signaled && r.ExitCode == 0
}

// Options controls the child's standard streams. Nil streams inherit li's.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// RelaySignals forwards SIGINT and SIGTERM received by li to the child
	// instead of letting them terminate li before it can notify.
	RelaySignals bool
}

// Run starts command and waits for it to exit. A non-zero exit is not an
// error; errors mean the command could not be started or waited on.
func Run(ctx context.Context, command []string, opts Options) (Result, error) {
	if len(command) == 0 {
		return Result{}, apperrors.MissingCommand()
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Stdin = orDefault(opts.Stdin, os.Stdin)
	cmd.Stdout = orDefaultWriter(opts.Stdout, os.Stdout)
	cmd.Stderr = orDefaultWriter(opts.Stderr, os.Stderr)

	logger.Debug("starting command", "command", command)

	// The relay is installed before Start so there is no window in which
	// a Ctrl-C kills li and loses the notification.
	var relay *signalRelay
	if opts.RelaySignals {
		relay = newSignalRelay()
		defer relay.stop()
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Result{}, apperrors.CommandSpawnFailed(command[0], err)
	}
	if relay != nil {
		relay.forward(cmd.Process)
	}

	waitErr := cmd.Wait()
	duration := time.Since(start)

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return Result{}, apperrors.WrapWithMessage(waitErr, apperrors.Runtime,
			fmt.Sprintf("waiting for %s", command[0]))
	}

	res := describe(cmd.ProcessState)
	res.Duration = duration
	return res, nil
}

// signalRelay keeps li alive through SIGINT and SIGTERM while the child runs.
// A terminal's Ctrl-C already reaches the child through the foreground
// process group, so SIGINT is only absorbed; forwarding it would make the
// child see it twice. SIGTERM is addressed to li's pid and is forwarded.
type signalRelay struct {
	sigs chan os.Signal
	done chan struct{}
}

func newSignalRelay() *signalRelay {
	r := &signalRelay{
		sigs: make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	signal.Notify(r.sigs, os.Interrupt, syscall.SIGTERM)
	return r
}

func (r *signalRelay) forward(p *os.Process) {
	go func() {
		for {
			select {
			case sig := <-r.sigs:
				if sig == os.Interrupt {
					logger.Debug("interrupt received, waiting for command to exit")
					continue
				}
				logger.Debug("forwarding signal", "signal", sig)
				if err := p.Signal(sig); err != nil {
					logger.Warn("could not forward signal", "signal", sig, "error", err)
				}
			case <-r.done:
				return
			}
		}
	}()
}

func (r *signalRelay) stop() {
	signal.Stop(r.sigs)
	close(r.done)
}

// describe renders a ProcessState the way the notification reports it.
func describe(ps *os.ProcessState) Result {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		sig := ws.Signal()
		return Result{
			ExitCode: -1,
			Signaled: true,
			Status:   fmt.Sprintf("signal: %d (%s)", int(sig), SignalName(sig)),
		}
	}
	code := ps.ExitCode()
	return Result{
		ExitCode: code,
		Status:   fmt.Sprintf("exit status: %d", code),
	}
}

func orDefault(r io.Reader, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orDefaultWriter(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
