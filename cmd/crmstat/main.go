package main

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/crmdash/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, "crmstat:", cli.FormatError(err))
		os.Exit(1)
	}
}
