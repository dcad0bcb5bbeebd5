// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import "github.com/dsnet/golib/errs"

// EncodeStats describes the outcome of an Encode call.
type EncodeStats struct {
	Symbols int   // Number of symbols encoded
	Missing int   // Number of symbols substituted by the unknown symbol
	Bits    int64 // Length of the bitstream
}

// DecodeConfig configures Decode. A nil *DecodeConfig uses the defaults.
type DecodeConfig struct {
	// Lenient drops a trailing partial code instead of reporting
	// ErrCorruptBitstream.
	Lenient bool
}

// Encode concatenates the codes of syms in order.
//
// Symbols missing from the table are encoded using the code of the unknown
// symbol and counted in EncodeStats.Missing. If the table has no unknown
// symbol, then ErrUncodableSymbol is returned.
func Encode[S comparable](syms []S, ct *CodeTable[S]) (bs Bitstream, st EncodeStats, err error) {
	defer errs.Recover(&err)

	var unkCode Code
	var hasUnk bool
	if unk, ok := ct.Unknown(); ok {
		unkCode, hasUnk = ct.codes[unk]
	}

	var bw bitWriter
	bw.Init()
	for _, s := range syms {
		c, ok := ct.codes[s]
		if !ok {
			if !hasUnk {
				return Bitstream{}, EncodeStats{}, ErrUncodableSymbol
			}
			c = unkCode
			st.Missing++
		}
		bw.WriteCode(c)
	}
	bs = bw.Finish()
	st.Symbols = len(syms)
	st.Bits = bs.Len()
	return bs, st, nil
}

// Decode walks the tree for every bit of bs, emitting the symbol of each leaf
// reached and restarting at the root.
//
// Positions that were substituted during encoding decode as the unknown
// symbol. In strict mode, a stream that does not end on a code boundary
// returns the symbols decoded so far together with ErrCorruptBitstream.
func Decode[S comparable](bs Bitstream, t *Tree[S], cfg *DecodeConfig) (syms []S, err error) {
	var lenient bool
	if cfg != nil {
		lenient = cfg.Lenient
	}
	defer errs.Recover(&err)

	var br bitReader
	br.Init(bs)
	root := t.root()

	// A single leaf tree has the implicit code "0".
	if t.nodes[root].isLeaf() {
		sym := t.nodes[root].sym
		syms = make([]S, 0, bs.Len())
		for br.More() {
			if br.ReadBit() {
				return syms, ErrCorruptBitstream
			}
			syms = append(syms, sym)
		}
		return syms, nil
	}

	cur := root
	for br.More() {
		n := &t.nodes[cur]
		if br.ReadBit() {
			cur = n.right
		} else {
			cur = n.left
		}
		if leaf := &t.nodes[cur]; leaf.isLeaf() {
			syms = append(syms, leaf.sym)
			cur = root
		}
	}
	if cur != root && !lenient {
		return syms, ErrCorruptBitstream
	}
	return syms, nil
}

// Codec bundles a frozen tree with its code table.
type Codec[S comparable] struct {
	tree  *Tree[S]
	table *CodeTable[S]
	hist  *Histogram[S]
}

// Build learns a code from the training symbols. The unknown symbol unk is
// always part of the code, so every symbol can later be encoded.
func Build[S comparable](train []S, unk S) (*Codec[S], error) {
	h, err := NewHistogram(train, unk)
	if err != nil {
		return nil, err
	}
	t, err := NewTree(h)
	if err != nil {
		return nil, err
	}
	ct, err := NewCodeTableUnknown(t, unk)
	if err != nil {
		return nil, err
	}
	return &Codec[S]{tree: t, table: ct, hist: h}, nil
}

// Tree returns the frozen tree.
func (c *Codec[S]) Tree() *Tree[S] { return c.tree }

// Table returns the code table.
func (c *Codec[S]) Table() *CodeTable[S] { return c.table }

// Histogram returns the training histogram, including the unknown symbol.
func (c *Codec[S]) Histogram() *Histogram[S] { return c.hist }

// Encode encodes syms using the codec's table.
func (c *Codec[S]) Encode(syms []S) (Bitstream, EncodeStats, error) {
	return Encode(syms, c.table)
}

// Decode decodes bs using the codec's tree.
func (c *Codec[S]) Decode(bs Bitstream, cfg *DecodeConfig) ([]S, error) {
	return Decode(bs, c.tree, cfg)
}
