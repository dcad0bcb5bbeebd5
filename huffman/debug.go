// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"fmt"
	"strings"
)

func padLeft(s string, m int) string {
	if pad := m - len(s); pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s
}

// String lists every symbol with its code in depth-first order.
// The unknown symbol, if any, is marked with an asterisk.
func (ct *CodeTable[S]) String() string {
	var maxSym, maxLen int
	for _, s := range ct.syms {
		maxSym = max(maxSym, len(fmt.Sprint(s)))
		maxLen = max(maxLen, int(ct.codes[s].Len))
	}

	var ss []string
	ss = append(ss, "{")
	for _, s := range ct.syms {
		c := ct.codes[s]
		mark := ""
		if ct.hasUnk && s == ct.unk {
			mark = " *"
		}
		ss = append(ss, fmt.Sprintf("\t%s:  {bits: %s, len: %2d},%s",
			padLeft(fmt.Sprint(s), maxSym),
			padLeft(c.String(), maxLen),
			c.Len, mark,
		))
	}
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}

// String returns a nested rendering of the tree, where each internal node is
// written as "(left right)" and each leaf as "sym:cnt".
func (t *Tree[S]) String() string {
	var sb strings.Builder
	stack := []int32{t.root()}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if i < 0 { // Closing marker for node ^i
			sb.WriteByte(')')
			if len(stack) > 0 && stack[len(stack)-1] >= 0 {
				sb.WriteByte(' ')
			}
			continue
		}
		n := &t.nodes[i]
		if n.isLeaf() {
			fmt.Fprintf(&sb, "%v:%d", n.sym, n.cnt)
			if len(stack) > 0 && stack[len(stack)-1] >= 0 {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.WriteByte('(')
		stack = append(stack, ^i, n.right, n.left)
	}
	return sb.String()
}
