package main

import (
	"os"

	"orcad/internal/cli"
)

func main() {
	os.Exit(cli.MainWithArgs(os.Args[1:]))
}
