// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/aclements/ways"
	"github.com/aclements/ways/internal/config"
	"github.com/aclements/ways/panel"
	"github.com/aclements/ways/vl"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh/terminal"
	"gopkg.in/yaml.v3"
)

var cmdPanelFlags = flag.NewFlagSet(os.Args[0]+" panel", flag.ExitOnError)

var panelCmd struct {
	config string
	out    outputs
}

func init() {
	f := cmdPanelFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s panel -config file [flags]\n", os.Args[0])
		f.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands read from stdin:\n%s", indent(replHelp))
	}
	f.StringVar(&panelCmd.config, "config", "", "read the chart configuration from `file`")
	panelCmd.out.addFlags(f, "metahist.json")
	registerSubcommand("panel", "-config file [flags] - edit color parameters interactively", cmdPanel, f)
}

func cmdPanel() {
	if panelCmd.config == "" || panelCmd.out.json == "" || cmdPanelFlags.NArg() != 0 {
		cmdPanelFlags.Usage()
		os.Exit(2)
	}
	cfg, err := config.Load(panelCmd.config)
	if err != nil {
		log.Fatal(err)
	}
	p, err := newPanel(cfg, &panelCmd.out, func(err error) {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
	})
	if err != nil {
		log.Fatal(err)
	}
	prompt := terminal.IsTerminal(int(os.Stdin.Fd()))
	if err := runREPL(os.Stdin, os.Stdout, p, prompt); err != nil {
		log.Fatal(err)
	}
}

// newPanel builds the parameter panel for the chart cfg configures.
// Every render writes out, if out is not nil; failures are passed to
// onErr. The panel starts with the configured parameters and has
// rendered once.
func newPanel(cfg *config.File, out *outputs, onErr func(error)) (*panel.Panel, error) {
	tab, err := cfg.Table()
	if err != nil {
		return nil, err
	}
	p, err := panel.New(tab, cfg.ColorColumn(), cfg.Factory(tab))
	if err != nil {
		return nil, err
	}
	opts := cfg.MetaHist.Options()
	rendered := false
	p.OnRender(func(c *vl.Chart, err error) {
		rendered = true
		if out == nil {
			return
		}
		if err == nil {
			err = out.write(c, opts)
		}
		if err != nil {
			onErr(err)
		}
	})
	if err := p.Set(cfg.Params); err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	if !rendered {
		p.Render()
	}
	return p, nil
}

const replHelp = `set NAME VALUE  set control NAME to VALUE
show            print the current parameters as YAML
controls        list the controls and their values
load FILE       apply the parameters in YAML FILE
save FILE       write the current parameters to YAML FILE
render          rebuild the chart
help            print this help
quit            exit
`

// runREPL executes the panel commands read from r, writing responses
// to w, until r is exhausted or a quit command. Errors in commands are
// reported to w and do not stop the loop.
func runREPL(r io.Reader, w io.Writer, p *panel.Panel, prompt bool) error {
	scanner := bufio.NewScanner(r)
	for {
		if prompt {
			fmt.Fprint(w, "> ")
		}
		if !scanner.Scan() {
			break
		}
		args, err := shellquote.Split(scanner.Text())
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			return nil
		}
		if err := replCommand(w, p, args); err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}
	if prompt {
		fmt.Fprintln(w)
	}
	return scanner.Err()
}

func replCommand(w io.Writer, p *panel.Panel, args []string) error {
	nargs := map[string]int{"show": 1, "controls": 1, "load": 2, "save": 2, "render": 1, "help": 1}
	if n, ok := nargs[args[0]]; ok && len(args) != n {
		return fmt.Errorf("usage: %s", usageOf(args[0]))
	}
	switch args[0] {
	case "set":
		if len(args) < 3 {
			return fmt.Errorf("usage: %s", usageOf("set"))
		}
		return p.Apply(args[1], strings.Join(args[2:], " "))
	case "show":
		data, err := yaml.Marshal(p.Params())
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "controls":
		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		for _, c := range p.Controls() {
			state := ""
			if c.Disabled() {
				state = "(disabled)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name(), c.Description(), c.String(), state)
		}
		return tw.Flush()
	case "load":
		ps, err := readParams(args[1])
		if err != nil {
			return err
		}
		return p.Set(ps)
	case "save":
		data, err := yaml.Marshal(p.Params())
		if err != nil {
			return err
		}
		return os.WriteFile(args[1], data, 0666)
	case "render":
		p.Render()
		_, err := p.Chart()
		return err
	case "help":
		_, err := io.WriteString(w, replHelp)
		return err
	}
	return fmt.Errorf("unknown command %q; try help", args[0])
}

func usageOf(cmd string) string {
	for _, line := range strings.Split(replHelp, "\n") {
		if strings.HasPrefix(line, cmd+" ") {
			return strings.TrimSpace(line[:16])
		}
	}
	return cmd
}

// readParams reads panel parameters from the YAML file at path.
func readParams(path string) (panel.Params, error) {
	var ps panel.Params
	data, err := os.ReadFile(path)
	if err != nil {
		return ps, err
	}
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return ps, fmt.Errorf("%s: %w", path, err)
	}
	ways.Log.Debug("read params", zap.String("path", path))
	return ps, nil
}
