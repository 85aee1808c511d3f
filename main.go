// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/stackrun/stackrun/cmd/stackrun"

func main() {
	cmd.Execute()
}
