// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/pubpages/pubpages/cmd/pubpages"

func main() {
	cmd.Execute()
}
