//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

// targetArgs are the arguments written after the target name, for example
// ["--run", "TestMatch"] in "mage test:unit --run TestMatch". Mage itself
// only passes positional parameters, so they are cut from os.Args before
// mage parses it and each target reads its own flags from here.
var targetArgs []string

func init() {
	os.Args, targetArgs = splitTargetArgs(os.Args)
}

// splitTargetArgs returns args up to and including the first target name,
// and whatever follows it. Leading arguments starting with "-" are mage's
// own flags.
func splitTargetArgs(args []string) (mageArgs, rest []string) {
	for i := 1; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		if a != "" && !strings.HasPrefix(a, "-") {
			return args[:i+1], args[i+1:]
		}
	}
	return args, nil
}

// parseTargetFlags parses targetArgs into fs and exits on failure; --help
// exits with status 0.
func parseTargetFlags(fs *flag.FlagSet) {
	switch err := fs.Parse(targetArgs); {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: %v\n", fs.Name(), err)
		os.Exit(1)
	}
}
