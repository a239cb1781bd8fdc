// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

package netlist

import "fmt"

// Design is a named, ordered collection of modules.  Tops is the
// derived subset of modules no other module instantiates; it is
// recomputed by FindTops.
type Design struct {
	Name    string
	Modules []*Network
	Tops    []*Network
}

// NewDesign creates an empty design.
func NewDesign(name string) *Design {
	return &Design{Name: name}
}

// Add appends a module.  Module names are unique within a design.
func (d *Design) Add(n *Network) error {
	if d.Find(n.Name) != nil {
		return fmt.Errorf("%w: model %q", ErrRedeclared, n.Name)
	}
	n.design = d
	d.Modules = append(d.Modules, n)
	return nil
}

// Find returns the module named name, or nil.
func (d *Design) Find(name string) *Network {
	for _, n := range d.Modules {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Remove drops module n from the design and clears its back-pointer.
// The module itself is untouched.
func (d *Design) Remove(n *Network) {
	mods := d.Modules[:0]
	for _, m := range d.Modules {
		if m != n {
			mods = append(mods, m)
		}
	}
	d.Modules = mods
	n.design = nil
}

// FindTops recomputes the top-level module list: modules instantiated
// by no box of any other module, in declaration order.  It returns
// the number of tops found.
func (d *Design) FindTops() int {
	used := make(map[*Network]bool)
	for _, m := range d.Modules {
		for _, bx := range m.Boxes {
			if def := m.BoxData(bx).Def; def != nil && def != m {
				used[def] = true
			}
		}
	}
	d.Tops = d.Tops[:0]
	for _, m := range d.Modules {
		if !used[m] {
			d.Tops = append(d.Tops, m)
		}
	}
	return len(d.Tops)
}
