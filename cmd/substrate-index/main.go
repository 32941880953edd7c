package main

import (
	"fmt"
	"os"

	"github.com/idn-labs/substrate-index/cmd/substrate-index/cli"
)

func main() {
	root := cli.RootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
