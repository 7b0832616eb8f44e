package main

import (
	"fmt"
	"os"

	"github.com/upv-tools/upv-cli/cmd"
	"github.com/upv-tools/upv-cli/common"
)

func main() {
	defer common.CloseLogger()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(common.ExitCodeFor(err))
	}
}
