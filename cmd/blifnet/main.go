// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

// Command blifnet reads BLIF inputs and prints a summary of the
// parsed design.
package main

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-air/blifnet/blif"
	"github.com/go-air/blifnet/netlist"
)

var opts struct {
	mv      bool
	asYaml  bool
	verbose bool
}

func main() {
	cmd := &cobra.Command{
		Use:   "blifnet <file>...",
		Short: "read BLIF circuit descriptions and summarize them",
		Long: `blifnet reads each input as BLIF (or BLIF-MV with --mv), links the
module hierarchy and prints a summary of the top-level network.`,
		Args: cobra.MinimumNArgs(1),
		RunE: run,

		SilenceUsage: true,
	}
	flags := cmd.Flags()
	flags.BoolVar(&opts.mv, "mv", false, "read input as BLIF-MV")
	flags.BoolVar(&opts.asYaml, "yaml", false, "print the summary as YAML")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable reader trace logging")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	for _, path := range args {
		buf, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading %s", path)
		}
		r := &blif.Reader{MV: opts.mv, Source: path, Log: log}
		top, err := r.ReadString(string(buf))
		if err != nil {
			return errors.Wrapf(err, "parsing %s", path)
		}
		if err := printSummary(top); err != nil {
			return err
		}
	}
	return nil
}

// summary is the printable shape of a parsed network.
type summary struct {
	Top     string   `json:"top"`
	Source  string   `json:"source,omitempty"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
	Nodes   int      `json:"nodes"`
	Latches int      `json:"latches"`
	Boxes   int      `json:"boxes"`
	Exdc    bool     `json:"exdc"`
	Modules []string `json:"modules,omitempty"`
}

func summarize(top *netlist.Network) summary {
	s := summary{
		Top:     top.Name,
		Source:  top.Spec,
		Nodes:   top.CountOf(netlist.Node),
		Latches: top.CountOf(netlist.Latch),
		Boxes:   top.CountOf(netlist.WhiteBox) + top.CountOf(netlist.BlackBox),
		Exdc:    top.Exdc != nil,
	}
	for _, pi := range top.PIs {
		s.Inputs = append(s.Inputs, top.NameOf(pi))
	}
	for _, po := range top.POs {
		s.Outputs = append(s.Outputs, top.NameOf(po))
	}
	if d := top.Design(); d != nil {
		for _, m := range d.Modules {
			s.Modules = append(s.Modules, m.Name)
		}
	}
	return s
}

func printSummary(top *netlist.Network) error {
	s := summarize(top)
	if opts.asYaml {
		out, err := yaml.Marshal(s)
		if err != nil {
			return errors.Wrap(err, "encoding summary")
		}
		fmt.Print(string(out))
		return nil
	}
	fmt.Printf("%s: %d inputs %d outputs %d nodes %d latches %d boxes\n",
		s.Top, len(s.Inputs), len(s.Outputs), s.Nodes, s.Latches, s.Boxes)
	if s.Exdc {
		fmt.Printf("%s: has an EXDC network\n", s.Top)
	}
	for _, m := range s.Modules {
		if m != s.Top {
			fmt.Printf("%s: instantiates model %s\n", s.Top, m)
		}
	}
	return nil
}
