// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

// Package blifnet reads BLIF and BLIF-MV circuit descriptions into
// typed, hierarchy-linked netlists.
//
// The entry points here are thin wrappers over package blif; the
// resulting networks are described in package netlist.
package blifnet

import (
	"io"

	"github.com/go-air/blifnet/blif"
	"github.com/go-air/blifnet/netlist"
)

// ReadString parses BLIF text and returns the top-level network,
// fully linked.
func ReadString(text string) (*netlist.Network, error) {
	return blif.ReadString(text)
}

// Read slurps r and parses it as ReadString does.
func Read(r io.Reader) (*netlist.Network, error) {
	return blif.Read(r)
}
