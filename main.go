package main

import (
	"os"

	"github.com/maastricht-university/clusterd/cli"
)

func main() {
	os.Exit(cli.Execute())
}
