// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huffman implements a static Huffman codec over arbitrary comparable
// symbols, with an out-of-vocabulary fallback.
//
// The code is learned from a training prefix of the data and then frozen.
// Symbols that were never seen during training are encoded using the code of
// a reserved unknown (UNK) sentinel symbol, which is supplied by the caller and
// must never collide with a legitimate data value.
//
// The typical pipeline is:
//
//	train, _ := huffman.TrainingPrefix(syms, 0.25)
//	c, _ := huffman.Build(train, unk)
//	bs, stats, _ := c.Encode(syms)
//	out, _ := c.Decode(bs, nil)
//
// Trees and code tables are immutable once built and may be shared by
// concurrent readers.
package huffman

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "huffman: " + string(e) }

var (
	// ErrEmptyTrainingSet reports that there is no data to build a
	// distribution or tree from.
	ErrEmptyTrainingSet error = Error("empty training set")

	// ErrUncodableSymbol reports that a symbol is missing from the code table
	// and that the table has no entry for the unknown symbol either.
	ErrUncodableSymbol error = Error("uncodable symbol")

	// ErrCorruptBitstream reports that decoding ended in the middle of a code
	// or followed a branch that does not exist in the tree.
	ErrCorruptBitstream error = Error("bitstream is corrupted")

	// ErrInvalidRatio reports a training ratio outside of (0, 1].
	ErrInvalidRatio error = Error("invalid training ratio")

	// ErrCodeOverflow reports a code longer than maxCodeBits.
	ErrCodeOverflow error = Error("code length overflow")
)

// maxCodeBits is the longest code that fits in Code.Val.
// Reaching it requires a total count on the order of Fib(66), so it is only
// hit by adversarial histograms.
const maxCodeBits = 64
