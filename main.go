// SPDX-License-Identifier: MPL-2.0

package main

import cmd "tfocus/cmd/tfocus"

func main() {
	cmd.Execute()
}
