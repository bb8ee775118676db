// termbridge runs a command under a managed pseudo-terminal session.
package main

import (
	"os"

	"github.com/termbridge/termbridge/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
