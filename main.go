package main

import (
	"fmt"
	"os"

	"github.com/coolclis/coolclis/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", "coolclis:", err)
		os.Exit(1)
	}
}
