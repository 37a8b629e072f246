package main

import (
	"os"

	"github.com/msto63/mlogo/cmd/mlogo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
