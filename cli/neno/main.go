package main

import (
	"os"

	nenocmder "github.com/papercomputeco/neno/cmd/neno"
)

func main() {
	cmd := nenocmder.NewNenoCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
