// Command gateway runs the st0x REST gateway, or administers its key
// store, depending on the subcommand given.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "keys":
		err = runKeys(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  gateway serve --config <path>
  gateway keys create    --config <path> --label <label> --owner <owner> [--admin]
  gateway keys deactivate --config <path> --key-id <id>
  gateway keys promote   --config <path> --key-id <id>
  gateway keys list      --config <path>`)
}
