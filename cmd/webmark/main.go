package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		var coded *exitCodeError
		if errors.As(err, &coded) {
			if coded.err != nil && !errors.Is(coded.err, context.Canceled) {
				fmt.Fprintln(os.Stderr, coded.err)
			}
			os.Exit(coded.code)
		}
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
