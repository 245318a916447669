package main

import (
	"os"

	"github.com/stefmolin/login-attempt-simulator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
