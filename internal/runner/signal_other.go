//go:build !unix

package runner

import "syscall"

// SignalName returns Go's description of sig.
func SignalName(sig syscall.Signal) string {
	return sig.String()
}
