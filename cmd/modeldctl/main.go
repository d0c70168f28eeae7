package main

import (
	"os"

	"modeldctl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
