// Command server runs the storefront with no CLI wrapper, for containers
// whose entrypoint is a single binary.
package main

import (
	"fmt"
	"os"

	"github.com/shashiranjanraj/swaad/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
