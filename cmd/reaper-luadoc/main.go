// Command reaper-luadoc turns the REAPER ReaScript API reference into LuaDoc
// type definitions for editor autocompletion.
package main

import (
	"fmt"
	"os"

	"github.com/example/reaper-luadoc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
