// SPDX-License-Identifier: MPL-2.0

package main

import "toolbelt-cli/cmd/toolbelt"

func main() {
	cmd.Execute()
}
