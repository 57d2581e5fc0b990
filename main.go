package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/oakwood-commons/mx/cmd"
	"github.com/oakwood-commons/mx/pkg/logger"
)

func main() {
	exitCode := 0
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, cmd.ErrNoSelection) {
			// Quitting without picking anything is not an error; scripts can
			// still tell it apart from a submitted selection.
			exitCode = 130
		} else {
			fmt.Fprintln(os.Stderr, err)
			exitCode = 1
		}
	}

	logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
