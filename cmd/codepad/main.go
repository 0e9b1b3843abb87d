package main

import (
	"fmt"
	"os"

	"github.com/jask/codepad/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
