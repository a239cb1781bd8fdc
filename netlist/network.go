// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

package netlist

import (
	"errors"
	"fmt"
)

// Errors reported when building a network.
var (
	ErrRedeclared = errors.New("object redeclared")
	ErrTwoDrivers = errors.New("net already has a driver")
	ErrNotNet     = errors.New("object is not a net")
	ErrBadId      = errors.New("id out of range")
)

// obj is one arena slot.  The payload pointers are set according to
// kind: sop for Node, latch for Latch, box for WhiteBox/BlackBox.
type obj struct {
	kind  Kind
	name  string
	fans  []Id // fanins
	outs  []Id // fanouts
	sop   *Sop
	latch *LatchData
	box   *BoxData
}

// LatchData is the payload of a Latch object.  The latch's input and
// output nets are its fanin 0 and fanout 0.
type LatchData struct {
	Init    Init
	Type    LatchType
	Control Id // optional control (clock) net, IdNull if absent
}

// BoxData is the payload of a box instance.  Formals and Actuals are
// parallel: formal port name i of the referent binds actual net
// Actuals[i].  Dirs and Pins are filled in when the hierarchy is
// linked; until then Def is nil and Dirs holds DirUnknown.
type BoxData struct {
	Model   string
	Formals []string
	Actuals []Id
	Dirs    []PortDir
	Pins    []Id // BI/BO pin objects, parallel to Formals
	Def     *Network
}

// Network is one module: an arena of objects with a net symbol table
// and the ordered interface lists.
type Network struct {
	Name string
	Type NtkType
	Func FuncType
	Spec string // source hint, usually a file name

	PIs     []Id
	POs     []Id
	Latches []Id
	Boxes   []Id

	// Exdc is the module's don't-care companion network, if any.
	Exdc *Network

	design *Design
	objs   []obj // objs[0] reserved so that IdNull is invalid
	names  map[string]Id
	counts [numKinds]int
}

// New creates an empty network of the given name.
func New(name string) *Network {
	return &Network{
		Name:  name,
		Type:  NtkNetlist,
		Func:  FuncSop,
		objs:  make([]obj, 1, 64),
		names: make(map[string]Id),
	}
}

// Design returns the owning design, or nil if the network is
// self-contained.
func (n *Network) Design() *Design {
	return n.design
}

// SetDesign sets the owning design.  A nil design detaches the
// network.
func (n *Network) SetDesign(d *Design) {
	n.design = d
}

// Len returns the size of the object arena.  Valid Ids are
// 1..Len()-1.
func (n *Network) Len() int {
	return len(n.objs)
}

// Kind returns the kind of object id.
func (n *Network) Kind(id Id) Kind {
	return n.objs[id].kind
}

// NameOf returns the name of object id, which may be empty for
// anonymous objects such as nodes and pins.
func (n *Network) NameOf(id Id) string {
	return n.objs[id].name
}

// FanIns returns the fanin list of object id.  The slice is owned by
// the network and must not be modified.
func (n *Network) FanIns(id Id) []Id {
	return n.objs[id].fans
}

// FanOuts returns the fanout list of object id.  The slice is owned
// by the network and must not be modified.
func (n *Network) FanOuts(id Id) []Id {
	return n.objs[id].outs
}

// Sop returns the cover of a Node object, nil otherwise.
func (n *Network) Sop(id Id) *Sop {
	return n.objs[id].sop
}

// LatchData returns the payload of a Latch object, nil otherwise.
func (n *Network) LatchData(id Id) *LatchData {
	return n.objs[id].latch
}

// BoxData returns the payload of a box object, nil otherwise.
func (n *Network) BoxData(id Id) *BoxData {
	return n.objs[id].box
}

// CountOf returns the number of live objects of kind k.
func (n *Network) CountOf(k Kind) int {
	if k < 0 || k >= numKinds {
		return 0
	}
	return n.counts[k]
}

// FindNet looks a net up by name.
func (n *Network) FindNet(name string) (Id, bool) {
	id, ok := n.names[name]
	return id, ok
}

// NewNet declares a net.  It is an error if the name is already
// taken.
func (n *Network) NewNet(name string) (Id, error) {
	if _, ok := n.names[name]; ok {
		return IdNull, fmt.Errorf("%w: net %q", ErrRedeclared, name)
	}
	id := n.add(Net, name)
	n.names[name] = id
	return id, nil
}

// EnsureNet returns the net named name, declaring it if necessary.
// Nets referenced before their driver is seen are created this way.
func (n *Network) EnsureNet(name string) Id {
	if id, ok := n.names[name]; ok {
		return id
	}
	id := n.add(Net, name)
	n.names[name] = id
	return id
}

// NewPI creates a primary input driving net.  The PI takes the net's
// name and is appended to the PI order.
func (n *Network) NewPI(net Id) (Id, error) {
	if n.objs[net].kind != Net {
		return IdNull, ErrNotNet
	}
	pi := n.add(PI, n.objs[net].name)
	if err := n.drive(pi, net); err != nil {
		return IdNull, err
	}
	n.PIs = append(n.PIs, pi)
	return pi, nil
}

// NewPO creates a primary output consuming net.  The PO takes the
// net's name and is appended to the PO order.
func (n *Network) NewPO(net Id) (Id, error) {
	if n.objs[net].kind != Net {
		return IdNull, ErrNotNet
	}
	po := n.add(PO, n.objs[net].name)
	n.consume(po, net)
	n.POs = append(n.POs, po)
	return po, nil
}

// NewConst1 creates the constant-one source driving net.
func (n *Network) NewConst1(net Id) (Id, error) {
	c := n.add(Const1, "")
	if err := n.drive(c, net); err != nil {
		return IdNull, err
	}
	return c, nil
}

// NewNode creates a combinational node with the given fanin nets, in
// order, driving net out.  The node owns an initially empty cover.
func (n *Network) NewNode(fanins []Id, out Id) (Id, error) {
	if n.objs[out].kind != Net {
		return IdNull, ErrNotNet
	}
	nd := n.add(Node, "")
	n.objs[nd].sop = &Sop{}
	for _, f := range fanins {
		n.consume(nd, f)
	}
	if err := n.drive(nd, out); err != nil {
		return IdNull, err
	}
	return nd, nil
}

// NewLatch creates a latch consuming net in and driving net out.
// ctl names the control net, IdNull when the latch has none.
func (n *Network) NewLatch(in, out, ctl Id, lt LatchType, init Init) (Id, error) {
	la := n.add(Latch, "")
	n.objs[la].latch = &LatchData{Init: init, Type: lt, Control: ctl}
	n.consume(la, in)
	if err := n.drive(la, out); err != nil {
		return IdNull, err
	}
	n.Latches = append(n.Latches, la)
	return la, nil
}

// NewBox creates an unresolved box instance of module model.  No
// edges are made: port directions are unknown until the hierarchy is
// linked, see Link.
func (n *Network) NewBox(model string, formals []string, actuals []Id) Id {
	bx := n.add(WhiteBox, model)
	n.objs[bx].box = &BoxData{
		Model:   model,
		Formals: formals,
		Actuals: actuals,
		Dirs:    make([]PortDir, len(formals)),
		Pins:    make([]Id, len(formals)),
	}
	n.Boxes = append(n.Boxes, bx)
	return bx
}

// Link resolves box bx against its referent def.  Each formal naming
// a primary input of def gets a BI pin consuming the actual net; each
// formal naming a primary output gets a BO pin driving it.  A formal
// naming neither is reported back to the caller.
func (n *Network) Link(bx Id, def *Network) error {
	bd := n.objs[bx].box
	bd.Def = def
	if def.Func == FuncBlackBox && n.objs[bx].kind == WhiteBox {
		n.counts[WhiteBox]--
		n.counts[BlackBox]++
		n.objs[bx].kind = BlackBox
	}
	for i, formal := range bd.Formals {
		actual := bd.Actuals[i]
		switch def.portDir(formal) {
		case DirIn:
			pin := n.add(BI, formal)
			n.consume(pin, actual)
			n.consume(bx, pin) // box fanins are its BI pins
			bd.Dirs[i] = DirIn
			bd.Pins[i] = pin
		case DirOut:
			pin := n.add(BO, formal)
			n.objs[bx].outs = append(n.objs[bx].outs, pin)
			n.objs[pin].fans = append(n.objs[pin].fans, bx)
			if err := n.drive(pin, actual); err != nil {
				return err
			}
			bd.Dirs[i] = DirOut
			bd.Pins[i] = pin
		default:
			return fmt.Errorf("model %s has no port %q", def.Name, formal)
		}
	}
	return nil
}

// portDir classifies a formal port name of this network as seen from
// an instance of it.
func (n *Network) portDir(formal string) PortDir {
	for _, pi := range n.PIs {
		if n.objs[pi].name == formal {
			return DirIn
		}
	}
	for _, po := range n.POs {
		if n.objs[po].name == formal {
			return DirOut
		}
	}
	return DirUnknown
}

// Driver returns the driver of net id, or IdNull if the net is
// undriven.
func (n *Network) Driver(id Id) Id {
	o := &n.objs[id]
	if o.kind != Net || len(o.fans) == 0 {
		return IdNull
	}
	return o.fans[0]
}

// CIs returns the combinational inputs in order: primary inputs,
// then latches (as state sources), then box output pins.
func (n *Network) CIs() []Id {
	var cis []Id
	cis = append(cis, n.PIs...)
	cis = append(cis, n.Latches...)
	for _, bx := range n.Boxes {
		cis = append(cis, n.objs[bx].outs...)
	}
	return cis
}

// COs returns the combinational outputs in order: primary outputs,
// then latches (as state sinks), then box input pins.
func (n *Network) COs() []Id {
	var cos []Id
	cos = append(cos, n.POs...)
	cos = append(cos, n.Latches...)
	for _, bx := range n.Boxes {
		cos = append(cos, n.objs[bx].fans...)
	}
	return cos
}

func (n *Network) add(k Kind, name string) Id {
	id := Id(len(n.objs))
	n.objs = append(n.objs, obj{kind: k, name: name})
	n.counts[k]++
	return id
}

// drive makes src the single driver of net.
func (n *Network) drive(src, net Id) error {
	o := &n.objs[net]
	if o.kind != Net {
		return ErrNotNet
	}
	if len(o.fans) != 0 {
		return fmt.Errorf("net %q: %w", o.name, ErrTwoDrivers)
	}
	o.fans = append(o.fans, src)
	n.objs[src].outs = append(n.objs[src].outs, net)
	return nil
}

// consume adds net to src's fanins and src to net's consumers.
func (n *Network) consume(src, net Id) {
	n.objs[src].fans = append(n.objs[src].fans, net)
	n.objs[net].outs = append(n.objs[net].outs, src)
}
