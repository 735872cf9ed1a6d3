// SPDX-License-Identifier: MPL-2.0

//go:build windows

package executor

import "os"

// terminateProcess stops the child. Windows has no SIGTERM equivalent that
// can be delivered to another process, so the child is killed outright.
func terminateProcess(p *os.Process) error {
	return p.Kill()
}
