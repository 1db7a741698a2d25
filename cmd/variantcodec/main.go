// Command variantcodec is a CLI for reading, converting, and summarizing
// VCF/BCF variant call files.
package main

import (
	"fmt"
	"os"
)

// Version information (set at build time).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
