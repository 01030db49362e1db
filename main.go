// sctl is the CLI for scriptctl, a per-project script definition manager.
package main

import (
	"fmt"
	"os"

	"scriptctl/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
