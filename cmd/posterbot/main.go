// Command posterbot runs the Messenger webhook responder.
package main

import (
	"fmt"
	"os"

	"posterbot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
