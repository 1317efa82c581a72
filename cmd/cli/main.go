// dpkgtimeline - Package History From dpkg Logs
//
// dpkgtimeline reads dpkg.log and its rotated siblings, oldest first, and
// prints the install, remove, purge and status lines they contain.
package main

import (
	"os"

	"github.com/ccollicutt/dpkgtimeline/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
