// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

package netlist

import "fmt"

// Check validates the structural invariants of a fully built network:
// every net has exactly one driver, every primary output is driven,
// fanin and fanout edge lists agree, the node covers are consistent
// with their fanin counts, and the object-kind histogram matches the
// arena.  Blackbox modules are exempt from the driver rule since they
// have no bodies.
func (n *Network) Check() error {
	if err := n.checkDrivers(); err != nil {
		return err
	}
	if err := n.checkEdges(); err != nil {
		return err
	}
	if err := n.checkCovers(); err != nil {
		return err
	}
	return n.checkCounts()
}

func (n *Network) checkDrivers() error {
	if n.Func == FuncBlackBox {
		return nil
	}
	for id := Id(1); id < Id(len(n.objs)); id++ {
		o := &n.objs[id]
		switch o.kind {
		case Net:
			switch len(o.fans) {
			case 0:
				return fmt.Errorf("net %q has no driver", o.name)
			case 1:
			default:
				return fmt.Errorf("net %q has %d drivers", o.name, len(o.fans))
			}
			switch n.objs[o.fans[0]].kind {
			case PI, Node, Latch, BO, Const1:
			default:
				return fmt.Errorf("net %q driven by a %s", o.name, n.objs[o.fans[0]].kind)
			}
		case PO:
			if len(o.fans) != 1 {
				return fmt.Errorf("output %q is not driven", o.name)
			}
		}
	}
	return nil
}

func (n *Network) checkEdges() error {
	for id := Id(1); id < Id(len(n.objs)); id++ {
		o := &n.objs[id]
		for _, f := range o.fans {
			if f <= IdNull || f >= Id(len(n.objs)) {
				return fmt.Errorf("object %d has fanin %d: %v", id, f, ErrBadId)
			}
			if !contains(n.objs[f].outs, id) {
				return fmt.Errorf("fanin edge %d->%d has no fanout mirror", f, id)
			}
		}
		for _, f := range o.outs {
			if f <= IdNull || f >= Id(len(n.objs)) {
				return fmt.Errorf("object %d has fanout %d: %v", id, f, ErrBadId)
			}
			if !contains(n.objs[f].fans, id) {
				return fmt.Errorf("fanout edge %d->%d has no fanin mirror", id, f)
			}
		}
	}
	return nil
}

func (n *Network) checkCovers() error {
	for id := Id(1); id < Id(len(n.objs)); id++ {
		o := &n.objs[id]
		if o.kind != Node {
			continue
		}
		for _, c := range o.sop.Cubes {
			if len(c.In) != len(o.fans) {
				return fmt.Errorf("node %d cube %q does not cover %d fanins", id, c.In, len(o.fans))
			}
		}
	}
	return nil
}

func (n *Network) checkCounts() error {
	var counts [numKinds]int
	for id := Id(1); id < Id(len(n.objs)); id++ {
		counts[n.objs[id].kind]++
	}
	for k := Kind(0); k < numKinds; k++ {
		if counts[k] != n.counts[k] {
			return fmt.Errorf("%s histogram says %d, arena has %d", k, n.counts[k], counts[k])
		}
	}
	return nil
}

func contains(ids []Id, id Id) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
