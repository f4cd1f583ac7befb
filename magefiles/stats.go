//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// skipDirs are never counted.
var skipDirs = map[string]bool{
	".git":      true,
	"vendor":    true,
	"magefiles": true,
	"_examples": true,
	binaryDir:   true,
}

// locCount holds line counts for one package directory.
type locCount struct {
	Dir  string `json:"dir"`
	Prod int    `json:"prod"`
	Test int    `json:"test"`
}

// Stats prints Go line counts per package directory, then the totals, as
// one JSON object per line.
func Stats() error {
	byDir := map[string]*locCount{}

	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		n := bytes.Count(data, []byte("\n"))

		dir := filepath.Dir(path)
		c, ok := byDir[dir]
		if !ok {
			c = &locCount{Dir: dir}
			byDir[dir] = c
		}
		if strings.HasSuffix(path, "_test.go") {
			c.Test += n
		} else {
			c.Prod += n
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking sources: %w", err)
	}

	dirs := make([]string, 0, len(byDir))
	for d := range byDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	total := locCount{Dir: "total"}
	enc := json.NewEncoder(os.Stdout)
	for _, d := range dirs {
		c := byDir[d]
		total.Prod += c.Prod
		total.Test += c.Test
		if err := enc.Encode(c); err != nil {
			return err
		}
	}
	return enc.Encode(total)
}
