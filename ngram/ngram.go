// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package ngram groups flat sample sequences into composite symbols.
//
// A Tuple of n consecutive samples is an ordinary comparable value, so it can
// be used directly as the symbol type of a huffman.Codec.
package ngram

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"
)

// MaxSize is the largest supported group size.
const MaxSize = 8

// DefaultSentinel is a scalar that lies outside of the 16-bit sample range
// and is therefore safe to use as the unknown symbol for 16-bit audio.
const DefaultSentinel int32 = -1 << 16

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "ngram: " + string(e) }

// ErrInvalidSize reports a group size outside of [1, MaxSize].
var ErrInvalidSize error = Error("invalid group size")

// Tuple is an ordered group of up to MaxSize samples.
// Tuples of different lengths are never equal.
type Tuple struct {
	n uint8
	v [MaxSize]int32
}

// MakeTuple returns a Tuple holding a copy of vs.
// It panics if len(vs) is not in [1, MaxSize].
func MakeTuple(vs ...int32) Tuple {
	if len(vs) < 1 || len(vs) > MaxSize {
		panic(ErrInvalidSize)
	}
	var t Tuple
	t.n = uint8(copy(t.v[:], vs))
	return t
}

// Unknown returns the unknown symbol for groups of size n, which is a tuple
// of n copies of the sentinel.
func Unknown(n int, sentinel int32) Tuple {
	if n < 1 || n > MaxSize {
		panic(ErrInvalidSize)
	}
	t := Tuple{n: uint8(n)}
	for i := 0; i < n; i++ {
		t.v[i] = sentinel
	}
	return t
}

// Len reports the number of samples in the tuple.
func (t Tuple) Len() int { return int(t.n) }

// At returns the i-th sample.
func (t Tuple) At(i int) int32 { return t.Values()[i] }

// Values returns the samples of the tuple.
func (t Tuple) Values() []int32 { return t.v[:t.n:t.n] }

// String formats the tuple as its comma-separated samples in parentheses.
func (t Tuple) String() string {
	ss := make([]string, t.n)
	for i, v := range t.Values() {
		ss[i] = fmt.Sprint(v)
	}
	return "(" + strings.Join(ss, ",") + ")"
}

// Group partitions samples into consecutive non-overlapping tuples of size n.
// Up to n-1 trailing samples that do not fill a complete tuple are dropped.
func Group(samples []int32, n int) ([]Tuple, error) {
	if n < 1 || n > MaxSize {
		return nil, ErrInvalidSize
	}
	ts := make([]Tuple, len(samples)/n)
	for i := range ts {
		ts[i] = MakeTuple(samples[i*n : (i+1)*n]...)
	}
	return ts, nil
}

// Scalars returns the identity grouping of samples for n = 1, where every
// sample is its own symbol.
func Scalars(samples []int32) []int32 { return samples }

// Tail returns the samples dropped by Group.
func Tail(samples []int32, n int) []int32 {
	if n < 1 {
		return nil
	}
	return samples[len(samples)/n*n:]
}

// Flatten concatenates the samples of ts, replacing every sample equal to
// sentinel by fill.
func Flatten(ts []Tuple, sentinel, fill int32) []int32 {
	var out []int32
	for _, t := range ts {
		out = append(out, t.Values()...)
	}
	return Fill(out, sentinel, fill)
}

// Fill replaces every sample of s equal to sentinel by fill, in place.
func Fill(s []int32, sentinel, fill int32) []int32 {
	for i, v := range s {
		if v == sentinel {
			s[i] = fill
		}
	}
	return s
}

// AppendScalar appends the zig-zag varint encoding of v to b.
func AppendScalar(b []byte, v int32) []byte {
	return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(v)))
}

// AppendTuple appends the zig-zag varint encoding of every sample of t to b.
func AppendTuple(b []byte, t Tuple) []byte {
	for _, v := range t.Values() {
		b = AppendScalar(b, v)
	}
	return b
}
