// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

package netlist

import "strings"

// Cube is one product term of a sum-of-products cover.  In holds one
// literal symbol per fanin in fanin order ('0', '1', '-', or a
// multi-valued symbol when the cover came from BLIF-MV).  Out is the
// cube's output value, '0' or '1'.
type Cube struct {
	In  string
	Out byte
}

// Sop is an ordered sum-of-products cover over a node's fanins.
//
// An empty cover is legal: it encodes a constant function whose value
// is given by the node's default output.
type Sop struct {
	Cubes []Cube
}

// Add appends a cube to the cover.
func (s *Sop) Add(in string, out byte) {
	s.Cubes = append(s.Cubes, Cube{In: in, Out: out})
}

// Len returns the number of cubes in the cover.
func (s *Sop) Len() int {
	return len(s.Cubes)
}

// IsConst reports whether the cover encodes a constant, and which one.
// A cover is constant when it has no cubes (constant 0) or a single
// cube with no input literals (the cube's output value).
func (s *Sop) IsConst() (bool, byte) {
	if len(s.Cubes) == 0 {
		return true, '0'
	}
	if len(s.Cubes) == 1 && s.Cubes[0].In == "" {
		return true, s.Cubes[0].Out
	}
	return false, 0
}

func (s *Sop) String() string {
	var b strings.Builder
	for i, c := range s.Cubes {
		if i > 0 {
			b.WriteByte('\n')
		}
		if c.In != "" {
			b.WriteString(c.In)
			b.WriteByte(' ')
		}
		b.WriteByte(c.Out)
	}
	return b.String()
}
