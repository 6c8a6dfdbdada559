package main

import (
	"os"

	"github.com/reoring/docview/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
