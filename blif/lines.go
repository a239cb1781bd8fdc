// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

package blif

import "strings"

// line is one logical source line: the 1-based number of its first
// physical line and its text with comments stripped and continuations
// joined.  The text aliases the input buffer unless a join forced a
// copy.
type line struct {
	num  int
	text string
}

// splitLines builds the logical line table of text.  A '#' starts a
// comment running to end of line; a '\' as the last non-blank
// character joins the next physical line with a single space.  Blank
// logical lines are dropped.  Both "\n" and "\r\n" endings are
// accepted.
func splitLines(text string) ([]line, *Error) {
	var lines []line
	var pend strings.Builder
	pendNum := 0
	num := 0
	for len(text) > 0 {
		num++
		var phys string
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			phys, text = text[:i], text[i+1:]
		} else {
			phys, text = text, ""
		}
		if i := strings.IndexByte(phys, '#'); i >= 0 {
			phys = phys[:i]
		}
		phys = strings.TrimRight(phys, " \t\r")
		if strings.HasSuffix(phys, "\\") {
			if pendNum == 0 {
				pendNum = num
			}
			pend.WriteString(strings.TrimRight(phys[:len(phys)-1], " \t"))
			pend.WriteByte(' ')
			continue
		}
		ln := num
		if pendNum != 0 {
			pend.WriteString(phys)
			phys = pend.String()
			ln = pendNum
			pend.Reset()
			pendNum = 0
		}
		if strings.TrimSpace(phys) == "" {
			continue
		}
		lines = append(lines, line{num: ln, text: phys})
	}
	if pendNum != 0 {
		return nil, &Error{
			Kind: Lex,
			Line: pendNum,
			Msg:  "continuation '\\' not terminated before end of input",
		}
	}
	return lines, nil
}

// tokens splits a logical line on whitespace.  The result may be
// empty.
func tokens(s string) []string {
	return strings.Fields(s)
}
