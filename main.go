package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sheetpub/sheetpub/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		code := cmd.ExitUsage
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.Code
		}
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "Error:", msg)
		}
		os.Exit(code)
	}
}
