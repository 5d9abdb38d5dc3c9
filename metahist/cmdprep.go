// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/ways/dataset"
)

var cmdPrepFlags = flag.NewFlagSet(os.Args[0]+" prep", flag.ExitOnError)

var prep struct {
	polls, geo, out string
	candidate       string
	date            string
}

func init() {
	f := cmdPrepFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s prep -polls file -geo file [flags]\n", os.Args[0])
		f.PrintDefaults()
	}
	f.StringVar(&prep.polls, "polls", "", "read poll averages from CSV `file`")
	f.StringVar(&prep.geo, "geo", "", "read state geometry from GeoJSON `file`")
	f.StringVar(&prep.out, "o", "", "write the joined table to `file` (default stdout)")
	f.StringVar(&prep.candidate, "candidate", "Donald Trump", "keep only polls of `name`")
	f.StringVar(&prep.date, "date", "", "keep only poll averages modeled on `date` (default all)")
	registerSubcommand("prep", "-polls file -geo file [flags] - join polls with state geometry", cmdPrep, f)
}

func cmdPrep() {
	if prep.polls == "" || prep.geo == "" || cmdPrepFlags.NArg() != 0 {
		cmdPrepFlags.Usage()
		os.Exit(2)
	}
	polls, err := readFile(prep.polls, dataset.ReadCSV)
	if err != nil {
		log.Fatal(err)
	}
	geo, err := readFile(prep.geo, dataset.ReadGeoJSON)
	if err != nil {
		log.Fatal(err)
	}
	t, err := joinPolls(polls, geo, prep.candidate, prep.date)
	if err != nil {
		log.Fatal(err)
	}

	w := os.Stdout
	if prep.out != "" {
		if w, err = os.Create(prep.out); err != nil {
			log.Fatal(err)
		}
	}
	if err := dataset.WriteCSV(w, t); err != nil {
		log.Fatal(err)
	}
	if w != os.Stdout {
		if err := w.Close(); err != nil {
			log.Fatal(err)
		}
	}
}

func readFile(path string, read func(io.Reader) (*table.Table, error)) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// joinPolls returns the state features of geo joined with the poll
// averages of candidate. The polls' state column is matched against
// the features' NAME property. If date is not "", only averages
// modeled on that date are kept.
func joinPolls(polls, geo *table.Table, candidate, date string) (*table.Table, error) {
	t, err := dataset.FilterEq(polls, "candidate_name", candidate)
	if err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("no polls for %q", candidate)
	}
	if date != "" {
		if t, err = dataset.FilterEq(t, "modeldate", date); err != nil {
			return nil, err
		}
		if t.Len() == 0 {
			return nil, fmt.Errorf("no polls for %q on %s", candidate, date)
		}
	}
	if t, err = dataset.Rename(t, "state", "NAME"); err != nil {
		return nil, err
	}
	return dataset.Join(geo, "NAME", t, "NAME")
}
