package main

import (
	"os"

	"github.com/tlk-hr/aptitude-screener/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
