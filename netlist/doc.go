// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

// Package netlist provides a typed representation of hierarchical
// gate-level netlists.
//
// A Design owns an ordered set of Networks (modules).  Each Network is an
// arena of Objects addressed by stable Ids: nets, combinational nodes with
// sum-of-products covers, latches, and white/black box instances of other
// modules.  The package also provides the structural checks used after
// reading: driver uniqueness, fanin/fanout consistency, the object-kind
// histogram law, and acyclicity of the module hierarchy.
package netlist
