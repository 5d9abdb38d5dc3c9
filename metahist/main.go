// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Metahist decorates color-encoded charts with a meta-histogram.
//
// Usage:
//
//	metahist [-v] <subcommand> [flags]
//
// Charts are described by a YAML configuration file; see package
// github.com/aclements/ways/internal/config for its format. The
// subcommands are:
//
//	build  writes the decorated chart as Vega-Lite JSON and an SVG
//	       preview of its density and colors-used panels.
//	panel  reads parameter panel commands from stdin and rewrites the
//	       outputs after each change.
//	watch  applies a YAML file of panel parameters every time it
//	       changes.
//	prep   joins poll averages with state geometry into a CSV table.
//
// Subcommands exit with status 1 on error.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/aclements/ways"
	"github.com/aclements/ways/golden"
	"github.com/aclements/ways/render"
	"github.com/aclements/ways/vl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type subcommand struct {
	name, desc string
	cmd        func()
	flags      *flag.FlagSet
}

var subcommands = map[string]*subcommand{}

func registerSubcommand(name, desc string, cmd func(), flags *flag.FlagSet) {
	subcommands[name] = &subcommand{name, desc, cmd, flags}
}

var verbose = flag.Bool("v", false, "log debugging output")

func main() {
	log.SetPrefix("metahist: ")
	log.SetFlags(0)

	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	sub := subcommands[flag.Arg(0)]
	if sub == nil {
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}
	sub.flags.Parse(flag.Args()[1:])

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	ways.Log = logger

	sub.cmd()
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-v] <subcommand> [flags]\n\n", os.Args[0])
	names := make([]string, 0, len(subcommands))
	for name := range subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s %s\n", name, subcommands[name].desc)
	}
	fmt.Fprintf(os.Stderr, "\nRun %s <subcommand> -h for subcommand flags.\n", os.Args[0])
}

// newLogger returns a logger that writes warnings and errors to
// stderr, or everything from debug up if verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// outputs are the files a subcommand writes a decorated chart to. Empty
// paths are skipped.
type outputs struct {
	json string
	svg  string
	// golden, if set, is the base path of a baseline to check the
	// outputs against.
	golden string

	width, height int
}

// addFlags registers o's flags on f. If json is "", the JSON output
// defaults to stdout.
func (o *outputs) addFlags(f *flag.FlagSet, json string) {
	f.StringVar(&o.json, "o", json, "write Vega-Lite JSON to `file`")
	f.StringVar(&o.svg, "svg", "", "write an SVG preview of the meta-histogram to `file`")
	f.StringVar(&o.golden, "golden", "", "check the output against the baseline `base`.json and `base`.svg")
	f.IntVar(&o.width, "width", 300, "preview width in pixels")
	f.IntVar(&o.height, "height", 400, "preview height in pixels")
}

// write decorates src with opts and writes the result and its preview.
func (o *outputs) write(src *vl.Chart, opts []ways.Option) error {
	mh, err := ways.MetaHist(src, opts...)
	if err != nil {
		return err
	}
	js, err := mh.JSON()
	if err != nil {
		return err
	}
	var svg bytes.Buffer
	if o.svg != "" || o.golden != "" {
		if err := render.WriteSVG(&svg, src, o.width, o.height); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
	}

	if o.json == "" {
		os.Stdout.Write(js)
		fmt.Println()
	} else if err := os.WriteFile(o.json, js, 0666); err != nil {
		return err
	}
	if o.svg != "" {
		if err := os.WriteFile(o.svg, svg.Bytes(), 0666); err != nil {
			return err
		}
	}
	if o.golden != "" {
		if err := golden.Check(o.golden, js, svg.Bytes()); err != nil {
			return err
		}
	}
	ways.Log.Debug("wrote outputs",
		zap.String("json", o.json), zap.String("svg", o.svg),
		zap.Int("panels", mh.Panels()))
	return nil
}

// indent returns s with each line indented by two spaces.
func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return "  " + strings.Join(lines, "\n  ") + "\n"
}
