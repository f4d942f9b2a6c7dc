// Package main provides the benchlens binary: it loads a category
// catalog and a merged model-record artifact, computes comparable 0-100
// category scores, and either writes them as JSON or serves them over
// HTTP for the chart frontend.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
