// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

package blif

// dirKind classifies a logical line by its first token alone.
type dirKind int

const (
	dOther dirKind = iota // unrecognized dot directive
	dCube                 // body line of a .names table
	dModel
	dInputs
	dOutputs
	dLatch
	dNames
	dSubckt
	dBlackbox
	dReset  // .r
	dMv     // .mv, retained unparsed
	dInouts // acknowledged, not modeled
	dTiming // timing directives, ignored
	dEnd
)

var dirKinds = map[string]dirKind{
	".model":                    dModel,
	".inputs":                   dInputs,
	".outputs":                  dOutputs,
	".latch":                    dLatch,
	".names":                    dNames,
	".subckt":                   dSubckt,
	".blackbox":                 dBlackbox,
	".r":                        dReset,
	".reset":                    dReset,
	".mv":                       dMv,
	".inouts":                   dInouts,
	".default_input_arrival":    dTiming,
	".input_arrival":            dTiming,
	".output_required":          dTiming,
	".default_output_required":  dTiming,
	".wire_load_slope":          dTiming,
	".end":                      dEnd,
}

func classify(tok0 string) dirKind {
	if len(tok0) == 0 || tok0[0] != '.' {
		return dCube
	}
	if k, ok := dirKinds[tok0]; ok {
		return k
	}
	return dOther
}

// dirLine is one classified logical line of a module bucket.
type dirLine struct {
	kind dirKind
	ln   int
	toks []string
}

// skeleton is the raw per-module bucket produced by the pre-parse:
// every logical line between a .model and its .end, classified but
// not yet interpreted.
type skeleton struct {
	name     string
	ln       int // line of the .model directive
	blackbox bool
	dirs     []dirLine
}

// preparse buckets logical lines by .model boundary.  It fails on a
// stray .end, on a .model inside an open model, on body text outside
// any model, and on end of input with a model still open.
func preparse(lines []line) ([]*skeleton, *Error) {
	var skels []*skeleton
	var cur *skeleton
	for _, l := range lines {
		toks := tokens(l.text)
		if len(toks) == 0 {
			continue
		}
		kind := classify(toks[0])
		switch kind {
		case dModel:
			if cur != nil {
				return nil, &Error{Kind: Structure, Line: l.num, Model: cur.name,
					Msg: "missing .end before new .model"}
			}
			if len(toks) < 2 {
				return nil, &Error{Kind: Structure, Line: l.num,
					Msg: ".model has no name"}
			}
			cur = &skeleton{name: toks[1], ln: l.num}
		case dEnd:
			if cur == nil {
				return nil, &Error{Kind: Structure, Line: l.num,
					Msg: ".end without open .model"}
			}
			skels = append(skels, cur)
			cur = nil
		case dBlackbox:
			if cur == nil {
				return nil, &Error{Kind: Structure, Line: l.num,
					Msg: ".blackbox outside of .model"}
			}
			cur.blackbox = true
		default:
			if cur == nil {
				return nil, &Error{Kind: Structure, Line: l.num,
					Msg: "line outside of .model"}
			}
			cur.dirs = append(cur.dirs, dirLine{kind: kind, ln: l.num, toks: toks})
		}
	}
	if cur != nil {
		return nil, &Error{Kind: Structure, Line: cur.ln, Model: cur.name,
			Msg: ".model not closed by .end"}
	}
	if len(skels) == 0 {
		return nil, &Error{Kind: Structure, Msg: "no .model directive in input"}
	}
	return skels, nil
}
