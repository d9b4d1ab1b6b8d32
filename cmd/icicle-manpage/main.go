package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/icicle/cmd/icicle"
	"github.com/arthur-debert/icicle/internal/version"
)

func main() {
	rootCmd := icicle.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "ICICLE",
		Section: "1",
		Source:  "icicle " + version.Version,
		Manual:  "icicle manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
