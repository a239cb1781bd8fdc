// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

package netlist

import "fmt"

// Id addresses an object within its Network's arena.  Ids are dense,
// start at 1 and are never reused.  IdNull is not a valid object.
type Id int32

// IdNull is the zero Id.
const IdNull Id = 0

// Kind tags an object in a network.
type Kind int

const (
	None Kind = iota
	Const1
	PI
	PO
	BI // box input pin
	BO // box output pin
	Net
	Node
	Latch
	WhiteBox
	BlackBox
	numKinds
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Const1:
		return "const1"
	case PI:
		return "pi"
	case PO:
		return "po"
	case BI:
		return "bi"
	case BO:
		return "bo"
	case Net:
		return "net"
	case Node:
		return "node"
	case Latch:
		return "latch"
	case WhiteBox:
		return "whitebox"
	case BlackBox:
		return "blackbox"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// NtkType says how a network represents its structure.  Readers
// produce NtkNetlist.
type NtkType int

const (
	NtkNone NtkType = iota
	NtkNetlist
	NtkLogic
	NtkStrash
	NtkOther
)

// FuncType says how a network represents its node functions.
type FuncType int

const (
	FuncNone FuncType = iota
	FuncSop
	FuncBdd
	FuncAig
	FuncMap
	FuncBlifMv
	FuncBlackBox
	FuncOther
)

// Init is a latch initial value.
type Init int

const (
	Init0       Init = 0
	Init1       Init = 1
	InitDC      Init = 2
	InitUnknown Init = 3
)

// LatchType distinguishes edge-triggered flops from transparent and
// asynchronous latches.
type LatchType int

const (
	LatchFF LatchType = iota
	LatchTransparent
	LatchAsync
)

// PortDir is the direction of one formal port of a box instance,
// resolved when the hierarchy is linked.
type PortDir int

const (
	DirUnknown PortDir = iota
	DirIn
	DirOut
)
