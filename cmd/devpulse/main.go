// main is the entry point for the devpulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/devpulse/devpulse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}
