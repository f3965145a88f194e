package main

import (
	"fmt"
	"os"
)

func main() {
	provider := &appProvider{Out: os.Stdout, Err: os.Stderr}
	err := newRootCmd(provider).Execute()
	if cerr := provider.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "dprefs: %v\n", err)
		os.Exit(1)
	}
}
