package main

import (
	"fmt"
	"os"

	"github.com/tombowditch/pasty-go/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "pasty:", cli.Describe(err))
		os.Exit(1)
	}
}
