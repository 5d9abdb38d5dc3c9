// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aclements/ways/internal/config"
)

var cmdBuildFlags = flag.NewFlagSet(os.Args[0]+" build", flag.ExitOnError)

var build struct {
	config string
	sets   stringList
	out    outputs
}

func init() {
	f := cmdBuildFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s build -config file [flags]\n", os.Args[0])
		f.PrintDefaults()
	}
	f.StringVar(&build.config, "config", "", "read the chart configuration from `file`")
	f.Var(&build.sets, "set", "set panel control `name=value` before building; may be repeated")
	build.out.addFlags(f, "")
	registerSubcommand("build", "-config file [flags] - write a decorated chart", cmdBuild, f)
}

func cmdBuild() {
	if build.config == "" || cmdBuildFlags.NArg() != 0 {
		cmdBuildFlags.Usage()
		os.Exit(2)
	}
	if err := runBuild(build.config, &build.out, build.sets); err != nil {
		log.Fatal(err)
	}
}

// runBuild writes the chart configured in the file at path. If sets is
// not empty, the chart is built by a parameter panel after applying
// each name=value setting in order, so the configured color encoding
// is replaced by the panel's.
func runBuild(path string, out *outputs, sets []string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if len(sets) == 0 {
		src, err := cfg.Chart()
		if err != nil {
			return err
		}
		return out.write(src, cfg.MetaHist.Options())
	}

	p, err := newPanel(cfg, nil, nil)
	if err != nil {
		return err
	}
	for _, set := range sets {
		name, value, ok := strings.Cut(set, "=")
		if !ok {
			return fmt.Errorf("-set %q: want name=value", set)
		}
		if err := p.Apply(name, value); err != nil {
			return err
		}
	}
	src, err := p.Chart()
	if err != nil {
		return err
	}
	return out.write(src, cfg.MetaHist.Options())
}
