// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

package blif

import (
	"errors"
	"fmt"

	"github.com/go-air/blifnet/fault"
	"github.com/go-air/blifnet/netlist"
)

// link runs the post-parse stages: hierarchy resolution, cycle
// detection, EXDC absorption, top selection and structural
// validation.  It returns the selected top-level network.
func (p *Reader) link(design *netlist.Design) (*netlist.Network, *Error) {
	byName := make(map[string]*netlist.Network, len(design.Modules))
	for _, m := range design.Modules {
		byName[m.Name] = m
	}
	for _, m := range design.Modules {
		for _, bx := range m.Boxes {
			bd := m.BoxData(bx)
			def, ok := byName[bd.Model]
			if !ok {
				return nil, &Error{Kind: UnresolvedSubckt, Model: m.Name,
					Msg: fmt.Sprintf("subckt references undefined model %q", bd.Model)}
			}
			if err := m.Link(bx, def); err != nil {
				kind := UnresolvedSubckt
				if errors.Is(err, netlist.ErrTwoDrivers) {
					kind = DriverConflict
				}
				return nil, &Error{Kind: kind, Model: m.Name, Msg: err.Error()}
			}
		}
	}
	if len(design.Modules) > 1 {
		if err := design.AcyclicHierarchy(); err != nil {
			return nil, &Error{Kind: CyclicHierarchy, Msg: err.Error()}
		}
	}
	// validate before EXDC absorption so EXDC bodies are still in
	// the module list and get checked like any other module
	for _, m := range design.Modules {
		if cerr := m.Check(); cerr != nil {
			return nil, &Error{Kind: CheckFailed, Model: m.Name,
				Msg: fmt.Sprintf("network check failed: %v", cerr)}
		}
	}
	if err := p.absorbExdc(design); err != nil {
		return nil, err
	}
	top, err := p.selectTop(design)
	if err != nil {
		return nil, err
	}
	top.Spec = p.Source
	if len(design.Modules) == 1 {
		// a lone module is self-contained
		top.SetDesign(nil)
	}
	return top, nil
}

// absorbExdc attaches every module named EXDC to the module declared
// before it and removes it from the design.  Scan and removal are
// separate phases so the module list is not edited mid-iteration.
func (p *Reader) absorbExdc(design *netlist.Design) *Error {
	if len(design.Modules) < 2 {
		return nil
	}
	type attach struct {
		host *netlist.Network
		exdc *netlist.Network
	}
	var pending []attach
	var host *netlist.Network
	for _, m := range design.Modules {
		if m.Name != "EXDC" {
			host = m
			continue
		}
		if host == nil {
			return &Error{Kind: Structure,
				Msg: "EXDC model is not preceded by a model to attach to"}
		}
		pending = append(pending, attach{host: host, exdc: m})
	}
	for _, a := range pending {
		if a.host.Exdc != nil {
			return &Error{Kind: Structure, Model: a.host.Name,
				Msg: "model already has an EXDC network"}
		}
		a.host.Exdc = a.exdc
		design.Remove(a.exdc)
		fault.Report(fmt.Sprintf("EXDC network attached to model %q", a.host.Name))
		p.logger().WithField("model", a.host.Name).Debug("blif: absorbed EXDC network")
	}
	return nil
}

// selectTop recomputes the design's root modules and picks the first
// in declaration order.  More than one root is a non-fatal fault;
// zero roots is fatal.
func (p *Reader) selectTop(design *netlist.Design) (*netlist.Network, *Error) {
	switch n := design.FindTops(); {
	case n == 0:
		return nil, &Error{Kind: NoRoot,
			Msg: "design has no root-level modules"}
	case n > 1:
		w := &Error{Kind: MultipleRoots,
			Msg: fmt.Sprintf("design has %d root-level modules; first (%s) will be used",
				n, design.Tops[0].Name)}
		fault.Report(w.Error())
	}
	return design.Tops[0], nil
}
