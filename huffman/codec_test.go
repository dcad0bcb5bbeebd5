// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dsnet/pcmhuff/internal/testutil"
	"github.com/dsnet/pcmhuff/ngram"
)

func TestCodec(t *testing.T) {
	const unk = -1
	var vectors = []struct {
		train  []int32
		input  []int32
		bits   string
		output []int32
		miss   int
	}{{
		train:  []int32{5, 5, 5, 2, 2, 9},
		input:  []int32{5, 5, 2, 9, 7},
		bits:   testutil.MustDecodeBitGen("0*2 10 110 111"),
		output: []int32{5, 5, 2, 9, unk},
		miss:   1,
	}, {
		train:  []int32{5, 5, 5, 2, 2, 9},
		input:  []int32{},
		bits:   "",
		output: nil,
	}, {
		// Single distinct value plus the unknown symbol.
		train:  []int32{4, 4, 4},
		input:  []int32{4, 4, 4, 4},
		bits:   "1111",
		output: []int32{4, 4, 4, 4},
	}, {
		train:  []int32{4},
		input:  []int32{8, 4, 9},
		bits:   "101",
		output: []int32{unk, 4, unk},
		miss:   2,
	}, {
		// Real data equal to the sentinel round-trips as itself.
		train:  []int32{unk, 3, 3},
		input:  []int32{3, unk, 6},
		bits:   "100",
		output: []int32{3, unk, unk},
		miss:   1,
	}}

	for i, v := range vectors {
		c, err := Build(v.train, unk)
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		bs, st, err := c.Encode(v.input)
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if got := bs.String(); got != v.bits {
			t.Errorf("test %d, bitstream mismatch:\ngot  %s\nwant %s", i, got, v.bits)
		}
		want := EncodeStats{Symbols: len(v.input), Missing: v.miss, Bits: int64(len(v.bits))}
		if st != want {
			t.Errorf("test %d, stats mismatch: got %+v, want %+v", i, st, want)
		}

		output, err := c.Decode(bs, nil)
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if diff := cmp.Diff(v.output, output); diff != "" {
			t.Errorf("test %d, output mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestCodecRoundTrip(t *testing.T) {
	r := testutil.NewRand(3)
	for i := 0; i < 10; i++ {
		syms := r.Symbols(1+r.Intn(5000), 2+r.Intn(500))
		c, err := Build(syms, ngram.DefaultSentinel)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		bs, st, err := c.Encode(syms)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		if st.Missing != 0 {
			t.Errorf("test %d, unexpected missing symbols: %d", i, st.Missing)
		}
		// The training data is the whole input, so only the synthetic
		// unknown symbol is left out of the histogram cost.
		unkCode, _ := c.Table().Lookup(ngram.DefaultSentinel)
		if got, want := st.Bits, c.Table().Cost(c.Histogram())-int64(unkCode.Len); got != want {
			t.Errorf("test %d, encoded %d bits, want %d", i, got, want)
		}
		output, err := c.Decode(bs, nil)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		if diff := cmp.Diff(syms, output); diff != "" {
			t.Errorf("test %d, output mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestCodecTuples(t *testing.T) {
	r := testutil.NewRand(4)
	samples := r.Tone(10001, 100, 1000, 3)
	unk := ngram.Unknown(3, ngram.DefaultSentinel)
	tuples, err := ngram.Group(samples, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	train, err := TrainingPrefix(tuples, 0.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := Build(train, unk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bs, st, err := c.Encode(tuples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output, err := c.Decode(bs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output) != len(tuples) {
		t.Fatalf("decoded %d symbols, want %d", len(output), len(tuples))
	}

	var miss int
	for i, tu := range tuples {
		_, ok := c.Table().Lookup(tu)
		switch {
		case ok && output[i] != tu:
			t.Errorf("symbol %d, got %v, want %v", i, output[i], tu)
		case !ok && output[i] != unk:
			t.Errorf("symbol %d, got %v, want unknown", i, output[i])
		}
		if !ok {
			miss++
		}
	}
	if st.Missing != miss {
		t.Errorf("missing count mismatch: got %d, want %d", st.Missing, miss)
	}
	if got, want := Accuracy(tuples, output), 1-float64(miss)/float64(len(tuples)); math.Abs(got-want) > 1e-12 {
		t.Errorf("Accuracy() = %v, want %v", got, want)
	}
}

func TestEncodeUncodable(t *testing.T) {
	tr, _ := NewTree(makeHistogram([]int{3, 1}))
	ct, _ := NewCodeTable(tr)
	if _, _, err := Encode([]int32{0, 1}, ct); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, _, err := Encode([]int32{0, 2}, ct); err != ErrUncodableSymbol {
		t.Errorf("Encode: got %v, want %v", err, ErrUncodableSymbol)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	c, _ := Build([]int32{5, 5, 5, 2, 2, 9}, -1)
	single, _ := NewTree(makeHistogram([]int{7}))

	var vectors = []struct {
		tree    *Tree[int32]
		bits    string
		lenient bool
		output  []int32
		err     error
	}{{
		tree:   c.Tree(),
		bits:   testutil.MustDecodeBitGen("0 10 11 # Truncated in the middle of 110"),
		output: []int32{5, 2},
		err:    ErrCorruptBitstream,
	}, {
		tree:    c.Tree(),
		bits:    "01011",
		lenient: true,
		output:  []int32{5, 2},
	}, {
		tree:   c.Tree(),
		bits:   "1",
		output: nil,
		err:    ErrCorruptBitstream,
	}, {
		tree:   single,
		bits:   "000",
		output: []int32{0, 0, 0},
	}, {
		tree:   single,
		bits:   "001",
		output: []int32{0, 0},
		err:    ErrCorruptBitstream,
	}}

	for i, v := range vectors {
		bs, err := ParseBitstream(v.bits)
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		output, err := Decode(bs, v.tree, &DecodeConfig{Lenient: v.lenient})
		if err != v.err {
			t.Errorf("test %d, error mismatch: got %v, want %v", i, err, v.err)
		}
		if diff := cmp.Diff(v.output, output); diff != "" {
			t.Errorf("test %d, output mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestBitstream(t *testing.T) {
	var vectors = []struct {
		input string
		bytes []byte
		valid bool
	}{
		{input: "", bytes: nil, valid: true},
		{input: "1", bytes: []byte{0x80}, valid: true},
		{input: "0000 0001 1", bytes: []byte{0x01, 0x80}, valid: true},
		{input: "10102", valid: false},
	}

	for i, v := range vectors {
		bs, err := ParseBitstream(v.input)
		if (err == nil) != v.valid {
			t.Errorf("test %d, validity mismatch: got %v, want %v", i, err == nil, v.valid)
			continue
		}
		if err != nil {
			continue
		}
		if diff := cmp.Diff(v.bytes, bs.Bytes(), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("test %d, bytes mismatch (-want +got):\n%s", i, diff)
		}

		bs2, err := NewBitstream(bs.Bytes(), bs.Len())
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if bs2.String() != bs.String() {
			t.Errorf("test %d, string mismatch: got %s, want %s", i, bs2.String(), bs.String())
		}
	}

	if _, err := NewBitstream([]byte{0xff}, 9); err == nil {
		t.Errorf("NewBitstream: unexpected success")
	}
}

func BenchmarkEncode(b *testing.B) {
	syms := testutil.NewRand(5).Symbols(1<<16, 256)
	c, _ := Build(syms, ngram.DefaultSentinel)
	b.SetBytes(2 * int64(len(syms)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Encode(syms)
	}
}

func BenchmarkDecode(b *testing.B) {
	syms := testutil.NewRand(5).Symbols(1<<16, 256)
	c, _ := Build(syms, ngram.DefaultSentinel)
	bs, _, _ := c.Encode(syms)
	b.SetBytes(2 * int64(len(syms)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Decode(bs, nil)
	}
}
