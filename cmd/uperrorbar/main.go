package main

import (
	"os"

	"github.com/plotgg/uperrorbar/internal/cli"
)

var (
	version = "dev"
	commit  = ""
)

func main() {
	cli.SetVersion(version, commit)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
