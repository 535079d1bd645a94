// postctl is a command-line client for the postboard API
package main

import (
	"os"

	"github.com/postboard/postboard/cmd/postctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
