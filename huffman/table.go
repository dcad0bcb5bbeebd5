// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"strings"

	"google.golang.org/protobuf/encoding/protowire"
)

// Code is a prefix code of Len bits, stored in the low bits of Val with the
// first bit to be written in the most-significant position.
type Code struct {
	Val uint64
	Len uint8
}

// String returns the code as a string of '0' and '1' characters.
func (c Code) String() string {
	var sb strings.Builder
	for i := int(c.Len) - 1; i >= 0; i-- {
		sb.WriteByte('0' + byte(c.Val>>uint(i)&1))
	}
	return sb.String()
}

// HasPrefix reports whether p is a prefix of c.
func (c Code) HasPrefix(p Code) bool {
	return p.Len <= c.Len && c.Val>>(c.Len-p.Len) == p.Val
}

// CodeTable maps each leaf symbol of a Tree to its code.
type CodeTable[S comparable] struct {
	codes  map[S]Code
	syms   []S // Depth-first order, left before right
	unk    S
	hasUnk bool
}

// NewCodeTable derives a code table from the tree, appending a '0' bit for
// every left descent and a '1' bit for every right descent. The sole symbol
// of a single leaf tree is assigned the code "0".
//
// The returned table has no unknown symbol; see NewCodeTableUnknown.
func NewCodeTable[S comparable](t *Tree[S]) (*CodeTable[S], error) {
	ct := &CodeTable[S]{codes: make(map[S]Code, t.Leaves())}

	root := t.root()
	if t.nodes[root].isLeaf() {
		ct.add(t.nodes[root].sym, Code{Val: 0, Len: 1})
		return ct, nil
	}

	type frame struct {
		idx  int32
		code Code
	}
	stack := []frame{{idx: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[f.idx]
		if n.isLeaf() {
			ct.add(n.sym, f.code)
			continue
		}
		if f.code.Len == maxCodeBits {
			return nil, ErrCodeOverflow
		}
		// Push right first so that the left subtree is visited first.
		c := Code{Val: f.code.Val << 1, Len: f.code.Len + 1}
		stack = append(stack, frame{idx: n.right, code: Code{Val: c.Val | 1, Len: c.Len}})
		stack = append(stack, frame{idx: n.left, code: c})
	}
	return ct, nil
}

// NewCodeTableUnknown is like NewCodeTable, but also records unk as the
// substitute for symbols missing from the table.
// The unknown symbol must be a leaf of the tree.
func NewCodeTableUnknown[S comparable](t *Tree[S], unk S) (*CodeTable[S], error) {
	ct, err := NewCodeTable(t)
	if err != nil {
		return nil, err
	}
	if _, ok := ct.codes[unk]; !ok {
		return nil, ErrUncodableSymbol
	}
	ct.unk, ct.hasUnk = unk, true
	return ct, nil
}

func (ct *CodeTable[S]) add(sym S, c Code) {
	ct.codes[sym] = c
	ct.syms = append(ct.syms, sym)
}

// Lookup returns the code for sym.
func (ct *CodeTable[S]) Lookup(sym S) (Code, bool) {
	c, ok := ct.codes[sym]
	return c, ok
}

// Unknown returns the unknown symbol and whether the table has one.
func (ct *CodeTable[S]) Unknown() (S, bool) { return ct.unk, ct.hasUnk }

// Len reports the number of symbols in the table.
func (ct *CodeTable[S]) Len() int { return len(ct.syms) }

// Symbols returns the table symbols in depth-first order.
func (ct *CodeTable[S]) Symbols() []S { return append([]S(nil), ct.syms...) }

// Cost reports the number of bits needed to encode every symbol of h.
// Symbols of h that are missing from the table are charged the unknown code.
func (ct *CodeTable[S]) Cost(h *Histogram[S]) int64 {
	var n int64
	for _, e := range h.entries {
		c, ok := ct.codes[e.Sym]
		if !ok && ct.hasUnk {
			c = ct.codes[ct.unk]
		}
		n += int64(e.Cnt) * int64(c.Len)
	}
	return n
}

// SymbolAppender appends the serialized form of a symbol to b.
type SymbolAppender[S comparable] func(b []byte, sym S) []byte

// Table entries are serialized as a repeated message using the protocol
// buffer wire format:
//
//	message Entry {
//		bytes  symbol = 1;
//		uint64 code   = 2;
//		uint32 length = 3;
//	}
//	repeated Entry entries = 1;
const (
	entriesField = 1
	symbolField  = 1
	codeField    = 2
	lengthField  = 3
)

// Footprint reports the size in bytes of the serialized symbol to code
// mapping, which approximates the overhead of transmitting the table.
// The tree itself is not counted.
func (ct *CodeTable[S]) Footprint(app SymbolAppender[S]) int {
	return len(ct.appendTable(nil, app))
}

func (ct *CodeTable[S]) appendTable(b []byte, app SymbolAppender[S]) []byte {
	var entry, sym []byte
	for _, s := range ct.syms {
		c := ct.codes[s]
		sym = app(sym[:0], s)

		entry = entry[:0]
		entry = protowire.AppendTag(entry, symbolField, protowire.BytesType)
		entry = protowire.AppendBytes(entry, sym)
		entry = protowire.AppendTag(entry, codeField, protowire.VarintType)
		entry = protowire.AppendVarint(entry, c.Val)
		entry = protowire.AppendTag(entry, lengthField, protowire.VarintType)
		entry = protowire.AppendVarint(entry, uint64(c.Len))

		b = protowire.AppendTag(b, entriesField, protowire.BytesType)
		b = protowire.AppendBytes(b, entry)
	}
	return b
}
