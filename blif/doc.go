// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

// Package blif implements a reader for BLIF and BLIF-MV circuit
// descriptions.
//
// The reader works in passes over an in-memory text buffer: logical
// lines are split honoring comments and backslash continuation, lines
// are bucketed per .model, module interfaces are resolved, bodies are
// materialized into netlist objects, the hierarchy is linked across
// modules, EXDC companion modules are absorbed, and a top-level module
// is selected and validated.  The result is a single, fully linked
// *netlist.Network.
package blif
