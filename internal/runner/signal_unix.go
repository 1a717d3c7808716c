//go:build unix

package runner

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// SignalName returns the conventional SIG* name, falling back to Go's description.
func SignalName(sig syscall.Signal) string {
	if name := unix.SignalName(sig); name != "" {
		return name
	}
	return sig.String()
}
