// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

package blif

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/go-air/blifnet/fault"
	"github.com/go-air/blifnet/netlist"
)

// Reader reads BLIF text into a netlist.  The zero value reads plain
// BLIF and logs nowhere.
type Reader struct {
	// MV enables the BLIF-MV relaxations: a name may be both an
	// input and an output, and cube literals admit decimal digits
	// beyond 0 and 1.
	MV bool

	// Source is recorded on the returned network as its source
	// hint, usually a file name.
	Source string

	// Log, when set, receives trace output for the read stages.
	Log logrus.FieldLogger

	slot string // first fatal message, capped at errMax bytes
	err  *Error
}

// module pairs a skeleton with the network being built from it.
type module struct {
	skel *skeleton
	ntk  *netlist.Network
	ins  map[string]bool // names declared under .inputs
	outs map[string]bool // names declared under .outputs
}

// ReadString parses BLIF text and returns the linked top-level
// network.  The zero-value reader semantics apply; see Reader for
// the knobs.
func ReadString(text string) (*netlist.Network, error) {
	r := &Reader{}
	return r.ReadString(text)
}

// Read slurps src and parses it.
func Read(src io.Reader) (*netlist.Network, error) {
	r := &Reader{}
	return r.Read(src)
}

// Read slurps src and parses it as ReadString does.
func (p *Reader) Read(src io.Reader) (*netlist.Network, error) {
	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "reading blif input")
	}
	return p.ReadString(string(buf))
}

// Err returns the reader's fatal error, if any.
func (p *Reader) Err() *Error {
	return p.err
}

// ErrMsg returns the formatted message held in the reader's error
// slot, "" if the last read succeeded.
func (p *Reader) ErrMsg() string {
	return p.slot
}

// ReadString parses BLIF text and returns the linked top-level
// network.  On failure the formatted message of the first fatal
// error is delivered to the registered fault handlers and a non-nil
// *Error is returned.
func (p *Reader) ReadString(text string) (*netlist.Network, error) {
	p.slot, p.err = "", nil
	log := p.logger()

	lines, lerr := splitLines(text)
	if lerr != nil {
		return nil, p.fatal(lerr)
	}
	log.WithField("lines", len(lines)).Debug("blif: line table built")

	skels, serr := preparse(lines)
	if serr != nil {
		return nil, p.fatal(serr)
	}
	log.WithField("models", len(skels)).Debug("blif: preparse done")

	design := netlist.NewDesign("")
	mods := make([]*module, 0, len(skels))
	for _, sk := range skels {
		m, err := p.interfaces(design, sk)
		if err != nil {
			return nil, p.fatal(err)
		}
		mods = append(mods, m)
	}
	for _, m := range mods {
		if err := p.body(m); err != nil {
			return nil, p.fatal(err)
		}
	}
	top, err := p.link(design)
	if err != nil {
		return nil, p.fatal(err)
	}
	log.WithFields(logrus.Fields{
		"top":    top.Name,
		"models": len(design.Modules),
	}).Debug("blif: read done")
	return top, nil
}

// interfaces resolves the interface of one skeleton: the network
// shell, its primary inputs and outputs, and every net named by an
// interface directive.
func (p *Reader) interfaces(design *netlist.Design, sk *skeleton) (*module, *Error) {
	ntk := netlist.New(sk.name)
	if sk.blackbox {
		ntk.Func = netlist.FuncBlackBox
	} else if p.MV {
		ntk.Func = netlist.FuncBlifMv
	}
	if err := design.Add(ntk); err != nil {
		return nil, &Error{Kind: DuplicateName, Line: sk.ln,
			Msg: fmt.Sprintf("model %q defined twice", sk.name)}
	}
	m := &module{
		skel: sk,
		ntk:  ntk,
		ins:  make(map[string]bool),
		outs: make(map[string]bool),
	}
	for _, d := range sk.dirs {
		switch d.kind {
		case dInputs:
			for _, name := range d.toks[1:] {
				if m.ins[name] {
					return nil, &Error{Kind: DuplicateName, Line: d.ln, Model: sk.name,
						Msg: fmt.Sprintf("input %q declared twice", name)}
				}
				if m.outs[name] && !p.MV {
					return nil, &Error{Kind: DuplicateName, Line: d.ln, Model: sk.name,
						Msg: fmt.Sprintf("%q is both an input and an output", name)}
				}
				m.ins[name] = true
				net := ntk.EnsureNet(name)
				if _, err := ntk.NewPI(net); err != nil {
					return nil, &Error{Kind: DriverConflict, Line: d.ln, Model: sk.name,
						Msg: err.Error()}
				}
			}
		case dOutputs:
			for _, name := range d.toks[1:] {
				if m.outs[name] {
					return nil, &Error{Kind: DuplicateName, Line: d.ln, Model: sk.name,
						Msg: fmt.Sprintf("output %q declared twice", name)}
				}
				if m.ins[name] && !p.MV {
					return nil, &Error{Kind: DuplicateName, Line: d.ln, Model: sk.name,
						Msg: fmt.Sprintf("%q is both an input and an output", name)}
				}
				m.outs[name] = true
				net := ntk.EnsureNet(name)
				if _, err := ntk.NewPO(net); err != nil {
					return nil, &Error{Kind: Structure, Line: d.ln, Model: sk.name,
						Msg: err.Error()}
				}
			}
		case dLatch:
			if len(d.toks) < 3 {
				return nil, &Error{Kind: Structure, Line: d.ln, Model: sk.name,
					Msg: ".latch needs an input and an output net"}
			}
			ntk.EnsureNet(d.toks[1])
			ntk.EnsureNet(d.toks[2])
		case dSubckt:
			if len(d.toks) < 2 {
				return nil, &Error{Kind: Structure, Line: d.ln, Model: sk.name,
					Msg: ".subckt has no model name"}
			}
			for _, bind := range d.toks[2:] {
				_, actual, ok := strings.Cut(bind, "=")
				if !ok {
					return nil, &Error{Kind: Structure, Line: d.ln, Model: sk.name,
						Msg: fmt.Sprintf("malformed port binding %q", bind)}
				}
				ntk.EnsureNet(actual)
			}
		}
	}
	return m, nil
}

// body materializes the nodes, latches and box instances of one
// module.  Cube lines following a .names are consumed here.
func (p *Reader) body(m *module) *Error {
	sk := m.skel
	dirs := sk.dirs
	for i := 0; i < len(dirs); i++ {
		d := dirs[i]
		switch d.kind {
		case dNames:
			var err *Error
			i, err = p.names(m, dirs, i)
			if err != nil {
				return err
			}
		case dCube:
			return &Error{Kind: Structure, Line: d.ln, Model: sk.name,
				Msg: "truth table line outside of .names"}
		case dLatch:
			if err := p.latch(m, d); err != nil {
				return err
			}
		case dSubckt:
			p.subckt(m, d)
		case dInputs, dOutputs:
			// interface pass
		case dReset, dMv, dInouts, dTiming:
			// recognized, not modeled
		case dOther:
			return &Error{Kind: Structure, Line: d.ln, Model: sk.name,
				Msg: fmt.Sprintf("unknown directive %q", d.toks[0])}
		}
	}
	return nil
}

// names reads one .names directive at dirs[i] plus its cube lines,
// returning the index of the last consumed line.
func (p *Reader) names(m *module, dirs []dirLine, i int) (int, *Error) {
	ntk, sk := m.ntk, m.skel
	d := dirs[i]
	if len(d.toks) < 2 {
		return i, &Error{Kind: Structure, Line: d.ln, Model: sk.name,
			Msg: ".names needs an output net"}
	}
	outName := d.toks[len(d.toks)-1]
	faninNames := d.toks[1 : len(d.toks)-1]
	fanins := make([]netlist.Id, 0, len(faninNames))
	for _, name := range faninNames {
		if name == outName {
			return i, &Error{Kind: Structure, Line: d.ln, Model: sk.name,
				Msg: fmt.Sprintf("node %q lists its output as a fanin", outName)}
		}
		fanins = append(fanins, ntk.EnsureNet(name))
	}
	out := ntk.EnsureNet(outName)
	node, err := ntk.NewNode(fanins, out)
	if err != nil {
		return i, &Error{Kind: DriverConflict, Line: d.ln, Model: sk.name,
			Msg: err.Error()}
	}
	sop := ntk.Sop(node)
	for i+1 < len(dirs) && dirs[i+1].kind == dCube {
		i++
		c := dirs[i]
		var in string
		var outTok string
		switch len(c.toks) {
		case 1:
			outTok = c.toks[0]
		case 2:
			in, outTok = c.toks[0], c.toks[1]
		default:
			return i, &Error{Kind: Structure, Line: c.ln, Model: sk.name,
				Msg: "truth table line needs a literal string and an output value"}
		}
		if len(in) != len(fanins) {
			return i, &Error{Kind: Structure, Line: c.ln, Model: sk.name,
				Msg: fmt.Sprintf("cube %q does not cover %d fanins", in, len(fanins))}
		}
		if err := p.checkCube(in); err != nil {
			err.Line, err.Model = c.ln, sk.name
			return i, err
		}
		if outTok != "0" && outTok != "1" {
			return i, &Error{Kind: Structure, Line: c.ln, Model: sk.name,
				Msg: fmt.Sprintf("output value %q is not 0 or 1", outTok)}
		}
		sop.Add(in, outTok[0])
	}
	return i, nil
}

// checkCube validates the literal symbols of one cube.
func (p *Reader) checkCube(in string) *Error {
	for j := 0; j < len(in); j++ {
		switch b := in[j]; {
		case b == '0' || b == '1' || b == '-':
		case p.MV && b >= '2' && b <= '9':
		default:
			return &Error{Kind: Structure,
				Msg: fmt.Sprintf("bad literal %q in cube %q", string(in[j]), in)}
		}
	}
	return nil
}

// latchTypes maps .latch type tokens.  The edge-triggered tokens of
// classic BLIF map to flops.
var latchTypes = map[string]netlist.LatchType{
	"fe": netlist.LatchFF,
	"re": netlist.LatchFF,
	"ff": netlist.LatchFF,
	"ah": netlist.LatchTransparent,
	"al": netlist.LatchTransparent,
	"as": netlist.LatchAsync,
}

// latch reads one .latch line.  Accepted forms, per classic BLIF:
//
//	.latch in out
//	.latch in out init
//	.latch in out type control
//	.latch in out type control init
//
// The control token is acknowledged and not modeled.  In the 5-token
// form a trailing 0..3 is read as an initial value, anything else as
// a control net.
func (p *Reader) latch(m *module, d dirLine) *Error {
	ntk, sk := m.ntk, m.skel
	lt, init := netlist.LatchFF, netlist.InitDC
	control := ""
	switch len(d.toks) {
	case 3:
	case 4:
		if e := parseInit(d.toks[3], &init); e != "" {
			return &Error{Kind: Structure, Line: d.ln, Model: sk.name, Msg: e}
		}
	case 5, 6:
		ty, ok := latchTypes[d.toks[3]]
		if !ok {
			return &Error{Kind: Structure, Line: d.ln, Model: sk.name,
				Msg: fmt.Sprintf("bad latch type %q", d.toks[3])}
		}
		lt = ty
		if e := parseInit(d.toks[len(d.toks)-1], &init); e != "" {
			// the fifth token is either a control net or an init
			// value; with six tokens it can only be the latter
			if len(d.toks) == 6 {
				return &Error{Kind: Structure, Line: d.ln, Model: sk.name, Msg: e}
			}
			control = d.toks[4]
		} else if len(d.toks) == 6 {
			control = d.toks[4]
		}
	default:
		return &Error{Kind: Structure, Line: d.ln, Model: sk.name,
			Msg: ".latch has too many tokens"}
	}
	in := ntk.EnsureNet(d.toks[1])
	out := ntk.EnsureNet(d.toks[2])
	ctl := netlist.IdNull
	if control != "" {
		ctl = ntk.EnsureNet(control)
	}
	if _, err := ntk.NewLatch(in, out, ctl, lt, init); err != nil {
		return &Error{Kind: DriverConflict, Line: d.ln, Model: sk.name,
			Msg: err.Error()}
	}
	return nil
}

func parseInit(tok string, init *netlist.Init) string {
	switch tok {
	case "0":
		*init = netlist.Init0
	case "1":
		*init = netlist.Init1
	case "2":
		*init = netlist.InitDC
	case "3":
		*init = netlist.InitUnknown
	default:
		return fmt.Sprintf("bad latch initial value %q", tok)
	}
	return ""
}

// subckt reads one .subckt line into an unresolved box.  Bindings
// were syntax-checked by the interface pass.
func (p *Reader) subckt(m *module, d dirLine) {
	ntk := m.ntk
	formals := make([]string, 0, len(d.toks)-2)
	actuals := make([]netlist.Id, 0, len(d.toks)-2)
	for _, bind := range d.toks[2:] {
		formal, actual, _ := strings.Cut(bind, "=")
		formals = append(formals, formal)
		actuals = append(actuals, ntk.EnsureNet(actual))
	}
	ntk.NewBox(d.toks[1], formals, actuals)
}

// fatal records the first fatal error in the reader's slot and
// delivers its message to the fault handlers.  Later errors are
// dropped.
func (p *Reader) fatal(e *Error) *Error {
	if p.err != nil {
		return p.err
	}
	p.err = e
	msg := e.Error()
	if len(msg) > errMax {
		msg = msg[:errMax]
	}
	p.slot = msg
	fault.Report(msg)
	return e
}

// discard is shared by all readers without a configured Log.
var discard = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func (p *Reader) logger() logrus.FieldLogger {
	if p.Log != nil {
		return p.Log
	}
	return discard
}
