// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

package blif

import "fmt"

// Kind classifies reader failures.
type Kind int

const (
	KindNone Kind = iota
	Lex
	Structure
	DuplicateName
	DriverConflict
	UnresolvedSubckt
	CyclicHierarchy
	CheckFailed
	NoRoot
	// MultipleRoots is advisory: it is delivered through the fault
	// handlers, never stored in the error slot.
	MultipleRoots
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case Lex:
		return "lex error"
	case Structure:
		return "structure error"
	case DuplicateName:
		return "duplicate name"
	case DriverConflict:
		return "driver conflict"
	case UnresolvedSubckt:
		return "unresolved subckt"
	case CyclicHierarchy:
		return "cyclic hierarchy"
	case CheckFailed:
		return "check failed"
	case NoRoot:
		return "no root model"
	case MultipleRoots:
		return "multiple root models"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// errMax caps the stored message, matching the reader's fixed
// 512-byte error slot.
const errMax = 512

// Error is the reader's fatal diagnostic.  A reader holds at most
// one: errors observed after the first are dropped.
type Error struct {
	Kind  Kind
	Line  int    // 1-based source line, 0 when not line-specific
	Model string // module being read, "" when not module-specific
	Msg   string
}

func (e *Error) Error() string {
	s := e.Msg
	if e.Line > 0 {
		s = fmt.Sprintf("line %d: %s", e.Line, s)
	}
	if e.Model != "" {
		s = fmt.Sprintf("model %s: %s", e.Model, s)
	}
	return s
}
