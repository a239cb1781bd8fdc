// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

package blif

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/go-air/blifnet/fault"
	"github.com/go-air/blifnet/netlist"
)

// capture replaces the fault handler stack with a recorder for the
// duration of a test.
func capture(t *testing.T) *[]string {
	t.Helper()
	fault.Reset()
	var msgs []string
	fault.Install(func(m string) { msgs = append(msgs, m) })
	t.Cleanup(fault.Reset)
	return &msgs
}

func readErr(t *testing.T, text string) *Error {
	t.Helper()
	r := &Reader{}
	ntk, err := r.ReadString(text)
	require.Error(t, err)
	require.Nil(t, ntk)
	e, ok := err.(*Error)
	require.True(t, ok, "reader errors must be *Error, got %T", err)
	return e
}

func TestEmptyInput(t *testing.T) {
	capture(t)
	e := readErr(t, "")
	require.Equal(t, Structure, e.Kind)
	require.Contains(t, e.Msg, "no .model")
}

func TestTrivialModule(t *testing.T) {
	msgs := capture(t)
	top, err := ReadString(".model m\n.inputs a\n.outputs b\n.names a b\n1 1\n.end\n")
	require.NoError(t, err)
	require.Equal(t, "m", top.Name)
	require.Nil(t, top.Design(), "a single-module design is self-contained")
	require.Empty(t, *msgs)

	require.Equal(t, []string{"a"}, piNames(top))
	require.Equal(t, []string{"b"}, poNames(top))
	require.Equal(t, 1, top.CountOf(netlist.Node))

	b, ok := top.FindNet("b")
	require.True(t, ok)
	drv := top.Driver(b)
	require.NotEqual(t, netlist.IdNull, drv)
	require.Equal(t, netlist.Node, top.Kind(drv))
	sop := top.Sop(drv)
	require.Equal(t, 1, sop.Len())
	require.Equal(t, netlist.Cube{In: "1", Out: '1'}, sop.Cubes[0])
}

func TestIdentifierOrderPreserved(t *testing.T) {
	capture(t)
	top, err := ReadString(`.model ord
.inputs x3 x1 x2
.outputs z2 z1
.names x3 z2
1 1
.names x1 z1
0 1
.end
`)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]string{"x3", "x1", "x2"}, piNames(top)))
	require.Empty(t, cmp.Diff([]string{"z2", "z1"}, poNames(top)))
}

func TestSubcktLinking(t *testing.T) {
	capture(t)
	top, err := ReadString(`.model top
.inputs x
.outputs y
.subckt child f=x g=y
.end
.model child
.inputs f
.outputs g
.names f g
1 1
.end
`)
	require.NoError(t, err)
	require.Equal(t, "top", top.Name)
	require.NotNil(t, top.Design(), "hierarchical design keeps its container")
	require.Len(t, top.Design().Modules, 2)
	require.NotNil(t, top.Design().Find("child"))

	require.Len(t, top.Boxes, 1)
	bd := top.BoxData(top.Boxes[0])
	require.Equal(t, "child", bd.Model)
	require.Equal(t, []string{"f", "g"}, bd.Formals)
	require.Equal(t, netlist.DirIn, bd.Dirs[0])
	require.Equal(t, netlist.DirOut, bd.Dirs[1])

	x, _ := top.FindNet("x")
	require.Equal(t, bd.Actuals[0], x)
	// y is driven by the box's BO pin
	y, _ := top.FindNet("y")
	require.Equal(t, netlist.BO, top.Kind(top.Driver(y)))
}

func TestUnknownSubcktModel(t *testing.T) {
	capture(t)
	e := readErr(t, ".model a\n.inputs i\n.outputs o\n.subckt ghost p=i\n.names i o\n1 1\n.end\n")
	require.Equal(t, UnresolvedSubckt, e.Kind)
	require.Contains(t, e.Msg, "ghost")
}

func TestUnknownSubcktPort(t *testing.T) {
	capture(t)
	e := readErr(t, `.model a
.inputs i
.outputs o
.subckt b bogus=i q=o
.end
.model b
.inputs p
.outputs q
.names p q
1 1
.end
`)
	require.Equal(t, UnresolvedSubckt, e.Kind)
	require.Contains(t, e.Msg, "bogus")
}

func TestCyclicHierarchy(t *testing.T) {
	capture(t)
	e := readErr(t, `.model a
.inputs i
.outputs o
.subckt b p=i q=o
.end
.model b
.inputs p
.outputs q
.subckt a i=p o=q
.end
`)
	require.Equal(t, CyclicHierarchy, e.Kind)
}

func TestExdcAbsorbed(t *testing.T) {
	msgs := capture(t)
	top, err := ReadString(`.model main
.inputs a
.outputs b
.names a b
1 1
.end
.model EXDC
.inputs a
.outputs b
.names a b
- 1
.end
`)
	require.NoError(t, err)
	require.Equal(t, "main", top.Name)
	require.NotNil(t, top.Exdc)
	require.Equal(t, "EXDC", top.Exdc.Name)
	require.Nil(t, top.Design(), "only main remains, so the design is reduced")
	require.NotEmpty(t, *msgs, "EXDC absorption is reported as a fault notice")
	require.Contains(t, (*msgs)[0], "EXDC")
}

func TestExdcBodyChecked(t *testing.T) {
	capture(t)
	// net w inside the EXDC body has no driver
	e := readErr(t, `.model main
.inputs a
.outputs b
.names a b
1 1
.end
.model EXDC
.inputs a
.outputs b
.names a w b
11 1
.end
`)
	require.Equal(t, CheckFailed, e.Kind)
	require.Equal(t, "EXDC", e.Model)
	require.Contains(t, e.Msg, `"w"`)
}

func TestDriverConflict(t *testing.T) {
	msgs := capture(t)
	e := readErr(t, ".model m\n.inputs a b\n.outputs z\n.names a z\n1 1\n.names b z\n1 1\n.end\n")
	require.Equal(t, DriverConflict, e.Kind)
	require.Contains(t, e.Msg, `"z"`)
	require.Len(t, *msgs, 1, "the fatal message reaches the fault handlers once")
	require.Contains(t, (*msgs)[0], "z")
}

func TestMultipleRootsWarning(t *testing.T) {
	msgs := capture(t)
	top, err := ReadString(`.model first
.inputs a
.outputs b
.names a b
1 1
.end
.model second
.inputs c
.outputs d
.names c d
1 1
.end
`)
	require.NoError(t, err)
	require.Equal(t, "first", top.Name, "first root in declaration order wins")
	require.Len(t, *msgs, 1)
	require.Contains(t, (*msgs)[0], "2 root-level modules")
	require.Contains(t, (*msgs)[0], "first")
}

func TestDuplicateInput(t *testing.T) {
	capture(t)
	e := readErr(t, ".model m\n.inputs a a\n.outputs b\n.names a b\n1 1\n.end\n")
	require.Equal(t, DuplicateName, e.Kind)
}

func TestInputOutputOverlap(t *testing.T) {
	capture(t)
	e := readErr(t, ".model m\n.inputs a\n.outputs a\n.end\n")
	require.Equal(t, DuplicateName, e.Kind)

	// permitted in BLIF-MV mode
	r := &Reader{MV: true}
	top, err := r.ReadString(".model m\n.inputs a\n.outputs a\n.end\n")
	require.NoError(t, err)
	require.Equal(t, netlist.FuncBlifMv, top.Func)
}

func TestDuplicateModel(t *testing.T) {
	capture(t)
	e := readErr(t, ".model m\n.inputs a\n.outputs b\n.names a b\n1 1\n.end\n.model m\n.inputs a\n.outputs b\n.names a b\n1 1\n.end\n")
	require.Equal(t, DuplicateName, e.Kind)
}

func TestConstantNodes(t *testing.T) {
	capture(t)
	top, err := ReadString(".model c\n.outputs one zero\n.names one\n1\n.names zero\n.end\n")
	require.NoError(t, err)
	one, _ := top.FindNet("one")
	isConst, v := top.Sop(top.Driver(one)).IsConst()
	require.True(t, isConst)
	require.Equal(t, byte('1'), v)
	zero, _ := top.FindNet("zero")
	isConst, v = top.Sop(top.Driver(zero)).IsConst()
	require.True(t, isConst)
	require.Equal(t, byte('0'), v)
}

func TestNodeOutputInFanins(t *testing.T) {
	capture(t)
	e := readErr(t, ".model m\n.inputs a\n.outputs z\n.names a z z\n11 1\n.end\n")
	require.Equal(t, Structure, e.Kind)
}

func TestCubeWidthMismatch(t *testing.T) {
	capture(t)
	e := readErr(t, ".model m\n.inputs a b\n.outputs z\n.names a b z\n1 1\n.end\n")
	require.Equal(t, Structure, e.Kind)
}

func TestBadCubeLiteral(t *testing.T) {
	capture(t)
	e := readErr(t, ".model m\n.inputs a\n.outputs z\n.names a z\n2 1\n.end\n")
	require.Equal(t, Structure, e.Kind)

	// the same cube is a legal multi-valued literal in MV mode
	r := &Reader{MV: true}
	_, err := r.ReadString(".model m\n.inputs a\n.outputs z\n.names a z\n2 1\n.end\n")
	require.NoError(t, err)
}

func TestLatchForms(t *testing.T) {
	capture(t)
	top, err := ReadString(`.model seq
.inputs d clk
.outputs q q2 q3
.latch d q
.latch d q2 1
.latch d q3 re clk 0
.end
`)
	require.NoError(t, err)
	require.Len(t, top.Latches, 3)
	ld := top.LatchData(top.Latches[0])
	require.Equal(t, netlist.InitDC, ld.Init)
	require.Equal(t, netlist.LatchFF, ld.Type)
	require.Equal(t, netlist.Init1, top.LatchData(top.Latches[1]).Init)
	ld3 := top.LatchData(top.Latches[2])
	require.Equal(t, netlist.Init0, ld3.Init)
	clk, _ := top.FindNet("clk")
	require.Equal(t, clk, ld3.Control)

	// 5-token form with a control net and no initial value
	top2, err := ReadString(".model m\n.inputs d clk\n.outputs q\n.latch d q re clk\n.end\n")
	require.NoError(t, err)
	ld2 := top2.LatchData(top2.Latches[0])
	require.Equal(t, netlist.InitDC, ld2.Init)
	require.Equal(t, "clk", top2.NameOf(ld2.Control))

	q, _ := top.FindNet("q")
	require.Equal(t, netlist.Latch, top.Kind(top.Driver(q)))
}

func TestLatchDriverConflict(t *testing.T) {
	capture(t)
	e := readErr(t, ".model m\n.inputs a\n.outputs q\n.latch a q\n.names a q\n1 1\n.end\n")
	require.Equal(t, DriverConflict, e.Kind)
}

func TestBlackbox(t *testing.T) {
	capture(t)
	top, err := ReadString(`.model top
.inputs x
.outputs y
.subckt bb i=x o=y
.end
.model bb
.inputs i
.outputs o
.blackbox
.end
`)
	require.NoError(t, err)
	require.Equal(t, 1, top.CountOf(netlist.BlackBox))
	require.Equal(t, 0, top.CountOf(netlist.WhiteBox))
	bb := top.Design().Find("bb")
	require.Equal(t, netlist.FuncBlackBox, bb.Func)
}

func TestStructureErrors(t *testing.T) {
	capture(t)
	for _, tt := range []struct {
		name string
		in   string
		want string
	}{
		{"stray end", ".end\n", ".end without open"},
		{"unterminated model", ".model m\n.inputs a\n", "not closed"},
		{"nested model", ".model a\n.model b\n.end\n", "missing .end"},
		{"unknown directive", ".model m\n.inputs a\n.outputs b\n.names a b\n1 1\n.frobnicate\n.end\n", "unknown directive"},
		{"cube outside names", ".model m\n.inputs a\n.outputs b\n1 1\n.names a b\n1 1\n.end\n", "outside of .names"},
		{"text before model", "hello\n.model m\n.end\n", "outside of .model"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			e := readErr(t, tt.in)
			require.Equal(t, Structure, e.Kind)
			require.Contains(t, e.Msg, tt.want)
		})
	}
}

func TestIgnoredDirectives(t *testing.T) {
	capture(t)
	_, err := ReadString(".model m\n.inputs a\n.outputs b\n.default_input_arrival 1 2\n.names a b\n1 1\n.end\n")
	require.NoError(t, err)
}

func TestContinuationThroughReader(t *testing.T) {
	capture(t)
	top, err := ReadString(".model m\n.inputs a \\\nb c\n.outputs z\n.names a b c z\n111 1\n.end\n")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, piNames(top))
}

func TestUndrivenNet(t *testing.T) {
	capture(t)
	e := readErr(t, ".model m\n.inputs a\n.outputs z\n.names a w z\n11 1\n.end\n")
	require.Equal(t, CheckFailed, e.Kind)
	require.Contains(t, e.Msg, `"w"`)
}

func TestErrorSlotKeepsFirst(t *testing.T) {
	capture(t)
	r := &Reader{}
	_, err := r.ReadString(".end\n")
	require.Error(t, err)
	first := r.ErrMsg()
	require.NotEmpty(t, first)
	// the slot is bounded
	require.LessOrEqual(t, len(first), 512)
	require.Equal(t, Structure, r.Err().Kind)
}

func TestLongMessageTruncated(t *testing.T) {
	msgs := capture(t)
	name := strings.Repeat("n", 1000)
	r := &Reader{}
	_, err := r.ReadString(".model m\n.inputs a\n.outputs z\n.subckt " + name + " p=a\n.end\n")
	require.Error(t, err)
	require.Len(t, *msgs, 1)
	require.Equal(t, 512, len((*msgs)[0]))
}

func piNames(n *netlist.Network) []string {
	var names []string
	for _, pi := range n.PIs {
		names = append(names, n.NameOf(pi))
	}
	return names
}

func poNames(n *netlist.Network) []string {
	var names []string
	for _, po := range n.POs {
		names = append(names, n.NameOf(po))
	}
	return names
}
