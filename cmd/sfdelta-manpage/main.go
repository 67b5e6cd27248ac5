package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/sfdelta/cmd/sfdelta"
	"github.com/arthur-debert/sfdelta/internal/version"
)

func main() {
	rootCmd := sfdelta.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SFDELTA",
		Section: "1",
		Source:  "sfdelta " + version.Version,
		Manual:  "sfdelta manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
