// Command glue-report prints record approval counts for a local database.
package main

import (
	"os"

	"github.com/xelth-com/gluereport/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
