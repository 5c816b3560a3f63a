package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/MEKXH/passgauge/cmd/passgauge/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, commands.ErrPolicyNotMet) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
