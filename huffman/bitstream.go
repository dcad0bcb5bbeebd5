// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"io"
	"strings"

	"github.com/dsnet/golib/errs"
	"github.com/icza/bitio"
)

// Bitstream is a sequence of bits packed MSB-first into bytes.
// The final byte is padded with zero bits.
type Bitstream struct {
	data []byte
	bits int64
}

// NewBitstream returns a Bitstream of the leading n bits of data.
func NewBitstream(data []byte, n int64) (Bitstream, error) {
	if n < 0 || n > 8*int64(len(data)) {
		return Bitstream{}, Error("bit length out of range")
	}
	return Bitstream{data: data[:(n+7)/8], bits: n}, nil
}

// ParseBitstream parses a textual bitstream of '0' and '1' characters.
// Spaces are ignored.
func ParseBitstream(s string) (bs Bitstream, err error) {
	defer errs.Recover(&err)
	var bw bitWriter
	bw.Init()
	for _, c := range s {
		switch c {
		case '0', '1':
			bw.WriteCode(Code{Val: uint64(c - '0'), Len: 1})
		case ' ':
		default:
			return Bitstream{}, Error("invalid bit character")
		}
	}
	return bw.Finish(), nil
}

// Len reports the number of bits.
func (bs Bitstream) Len() int64 { return bs.bits }

// Bytes returns the packed bits.
func (bs Bitstream) Bytes() []byte { return bs.data }

// String returns the bits as a string of '0' and '1' characters.
func (bs Bitstream) String() string {
	var sb strings.Builder
	sb.Grow(int(bs.bits))
	for i := int64(0); i < bs.bits; i++ {
		sb.WriteByte('0' + bs.data[i/8]>>(7-uint(i%8))&1)
	}
	return sb.String()
}

// bitWriter packs codes into a Bitstream.
// It panics on failure, so callers must use errs.Recover.
type bitWriter struct {
	buf  bytes.Buffer
	wr   *bitio.Writer
	bits int64
}

func (bw *bitWriter) Init() {
	bw.buf.Reset()
	bw.wr = bitio.NewWriter(&bw.buf)
	bw.bits = 0
}

func (bw *bitWriter) WriteCode(c Code) {
	errs.Panic(bw.wr.WriteBits(c.Val, c.Len))
	bw.bits += int64(c.Len)
}

func (bw *bitWriter) Finish() Bitstream {
	errs.Panic(bw.wr.Close())
	return Bitstream{data: bw.buf.Bytes(), bits: bw.bits}
}

// bitReader reads a Bitstream one bit at a time.
type bitReader struct {
	rd   *bitio.Reader
	left int64
}

func (br *bitReader) Init(bs Bitstream) {
	br.rd = bitio.NewReader(bytes.NewReader(bs.data))
	br.left = bs.bits
}

// ReadBit reads the next bit, panicking with io.ErrUnexpectedEOF if the
// underlying data is shorter than the bit length.
func (br *bitReader) ReadBit() bool {
	b, err := br.rd.ReadBool()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	errs.Panic(err)
	br.left--
	return b
}

func (br *bitReader) More() bool { return br.left > 0 }
