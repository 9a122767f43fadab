package main

import (
	"fmt"
	"os"

	"github.com/rony4d/go-isobuf/cmd/isobuf/launcher"
)

func main() {

	// Hand the full argument list to the launcher; it selects the command.
	err := launcher.Launch(os.Args)

	if err != nil {

		// Report the issue on stderr so stdout stays machine-readable
		fmt.Fprintln(os.Stderr, "Error:", err)

		// Exit with a non-zero status code to indicate failure
		os.Exit(1)
	}

}
