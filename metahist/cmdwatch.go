// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/aclements/ways"
	"github.com/aclements/ways/internal/config"
	"github.com/aclements/ways/vl"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

var cmdWatchFlags = flag.NewFlagSet(os.Args[0]+" watch", flag.ExitOnError)

var watch struct {
	config string
	params string
	out    outputs
}

func init() {
	f := cmdWatchFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s watch -config file -params file [flags]\n", os.Args[0])
		f.PrintDefaults()
	}
	f.StringVar(&watch.config, "config", "", "read the chart configuration from `file`")
	f.StringVar(&watch.params, "params", "", "apply panel parameters from YAML `file` whenever it changes")
	watch.out.addFlags(f, "metahist.json")
	registerSubcommand("watch", "-config file -params file [flags] - rebuild a chart as its parameters change", cmdWatch, f)
}

// settleDelay is how long a params file must be quiet before it is
// read. Editors often write a file in several steps.
const settleDelay = 100 * time.Millisecond

func cmdWatch() {
	if watch.config == "" || watch.params == "" || watch.out.json == "" || cmdWatchFlags.NArg() != 0 {
		cmdWatchFlags.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(watch.config)
	if err != nil {
		log.Fatal(err)
	}
	rep := NewStdoutReporter()
	defer rep.Close()
	p, err := newPanel(cfg, &watch.out, func(err error) {
		fmt.Fprintf(rep, "render failed: %v\n", err)
	})
	if err != nil {
		log.Fatal(err)
	}
	renders := 0
	p.OnRender(func(*vl.Chart, error) { renders++ })

	pw, err := newParamsWatcher(watch.params)
	if err != nil {
		log.Fatal(err)
	}
	defer pw.Close()

	apply := func() error {
		ps, err := readParams(watch.params)
		if err != nil {
			return err
		}
		before := renders
		if err := p.Set(ps); err != nil {
			return err
		}
		sel := p.Selection()
		what := "unchanged"
		if renders != before {
			what = "rendered"
		}
		if sel.Binned {
			rep.Status("%s %s: %s (binned, at most %d bins over [%d, %d])",
				time.Now().Format("15:04:05"), watch.params, what, sel.Maxbins, sel.Extent[0], sel.Extent[1])
		} else {
			rep.Status("%s %s: %s (continuous, %s scale)",
				time.Now().Format("15:04:05"), watch.params, what, sel.Scale)
		}
		return nil
	}
	if _, err := os.Stat(watch.params); err == nil {
		if err := apply(); err != nil {
			fmt.Fprintf(rep, "%v\n", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	pw.run(ctx, func() {
		if err := apply(); err != nil {
			fmt.Fprintf(rep, "%v\n", err)
		}
	})
}

// paramsWatcher watches a single file for writes.
type paramsWatcher struct {
	w    *fsnotify.Watcher
	path string
}

// newParamsWatcher starts watching path. It watches path's directory
// rather than path itself, so it sees files that editors replace by
// renaming.
func newParamsWatcher(path string) (*paramsWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return &paramsWatcher{w, path}, nil
}

func (pw *paramsWatcher) Close() error {
	return pw.w.Close()
}

// run calls changed each time the watched file is created or written
// and then left alone for settleDelay. It returns when ctx is done.
func (pw *paramsWatcher) run(ctx context.Context, changed func()) {
	var settled <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-pw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != pw.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			ways.Log.Debug("params file event", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			settled = time.After(settleDelay)

		case <-settled:
			settled = nil
			changed()

		case err, ok := <-pw.w.Errors:
			if !ok {
				return
			}
			ways.Log.Warn("watching params", zap.Error(err))
		}
	}
}
