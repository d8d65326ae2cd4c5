// Command flexpreview renders a Flex bubble, stored as sections JSON or built
// from a preset, in the terminal or as an HTML fragment.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
