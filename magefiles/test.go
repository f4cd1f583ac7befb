//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets (all, unit, cover).
type Test mg.Namespace

const coverProfile = "coverage.out"

// All runs every test with the race detector.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Unit runs tests verbosely. --pkg limits the packages and --run filters
// test names.
//
//	mage test:unit --pkg ./internal/provider/... --run TestInsert
func (Test) Unit() error {
	fs := flag.NewFlagSet("test:unit", flag.ContinueOnError)
	pkg := fs.String("pkg", "./...", "package pattern")
	run := fs.String("run", "", "test name filter")
	parseTargetFlags(fs)

	args := []string{"test", "-v"}
	if *run != "" {
		args = append(args, "-run", *run)
	}
	args = append(args, *pkg)
	return sh.RunV(binGo, args...)
}

// Cover writes a coverage profile and prints the per-function summary.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	out, err := sh.Output(binGo, "tool", "cover", "-func="+coverProfile)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
