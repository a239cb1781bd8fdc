// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

package netlist

import "fmt"

// dfs colors for the hierarchy walk.
const (
	white = iota
	grey  // on the current path
	black
)

// AcyclicHierarchy checks that the instantiation graph rooted at the
// design's modules has no cycle.  On a cycle it returns an error
// naming the module that closes it.
func (d *Design) AcyclicHierarchy() error {
	marks := make(map[*Network]int, len(d.Modules))
	for _, m := range d.Modules {
		if marks[m] != white {
			continue
		}
		if err := hierVis(m, marks); err != nil {
			return err
		}
	}
	return nil
}

func hierVis(m *Network, marks map[*Network]int) error {
	switch marks[m] {
	case grey:
		return fmt.Errorf("model %q instantiates itself, directly or through other models", m.Name)
	case black:
		return nil
	}
	marks[m] = grey
	for _, bx := range m.Boxes {
		def := m.BoxData(bx).Def
		if def == nil {
			continue
		}
		if err := hierVis(def, marks); err != nil {
			return err
		}
	}
	marks[m] = black
	return nil
}
