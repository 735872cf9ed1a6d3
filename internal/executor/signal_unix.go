// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package executor

import (
	"os"
	"syscall"
)

// terminateProcess asks the child to shut down gracefully. Terraform traps
// SIGTERM and releases its state lock before exiting.
func terminateProcess(p *os.Process) error {
	return p.Signal(syscall.SIGTERM)
}
