// Command rastool runs the batch raster tools.
package main

import (
	"fmt"
	"os"

	"github.com/wgdzlh/rastool/cli"
)

func main() {
	if err := cli.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
