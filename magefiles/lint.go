//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binLint = "golangci-lint"

// Vet runs go vet over every package.
func Vet() error {
	return sh.RunV(binGo, "vet", "./...")
}

// Lint runs go vet, then golangci-lint. --fix lets golangci-lint rewrite
// the files it can.
//
//	mage lint --fix
func Lint() error {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	fix := fs.Bool("fix", false, "apply automatic fixes")
	parseTargetFlags(fs)

	mg.Deps(Vet)
	args := []string{"run"}
	if *fix {
		args = append(args, "--fix")
	}
	args = append(args, "./...")
	return sh.RunV(binLint, args...)
}
