// Command validatus checks text values against named validation rules.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Gobd/validatus/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
