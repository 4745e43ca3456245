//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts every transcript under transcripts/
// into output/.
func Convert() error {
	mg.Deps(Init, Build)
	return sh.RunV("bin/quizconv", "convert", "--input-dir", "transcripts", "--output-dir", "output")
}
