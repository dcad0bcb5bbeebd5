// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"

	"github.com/dsnet/pcmhuff/huffman"
	"github.com/dsnet/pcmhuff/pcm"
)

type Encoder func(io.Writer, int) io.WriteCloser
type Decoder func(io.Reader) io.ReadCloser

// Baseline is a general purpose compressor used for comparison.
type Baseline struct {
	Encoder Encoder
	Decoder Decoder
}

// Baselines holds every registered baseline by name.
var Baselines map[string]Baseline

func RegisterBaseline(name string, enc Encoder, dec Decoder) {
	if Baselines == nil {
		Baselines = make(map[string]Baseline)
	}
	Baselines[name] = Baseline{Encoder: enc, Decoder: dec}
}

func init() {
	RegisterBaseline("flate",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := flate.NewWriter(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		},
		func(r io.Reader) io.ReadCloser {
			return flate.NewReader(r)
		})
	RegisterBaseline("gzip",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := gzip.NewWriterLevel(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		},
		func(r io.Reader) io.ReadCloser {
			zr, err := gzip.NewReader(r)
			if err != nil {
				panic(err)
			}
			return zr
		})
	RegisterBaseline("xz",
		func(w io.Writer, _ int) io.WriteCloser {
			zw, err := xz.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		},
		func(r io.Reader) io.ReadCloser {
			zr, err := xz.NewReader(r)
			if err != nil {
				panic(err)
			}
			return io.NopCloser(zr)
		})
}

// RunBaseline compresses the little-endian PCM encoding of the signal, at
// its bit depth, with the named baseline. The decompressed output is decoded
// back into samples and compared against the signal.
func RunBaseline(name, codec string, sig *pcm.Signal, lvl int) (Result, error) {
	b, ok := Baselines[codec]
	if !ok {
		return Result{}, Error("unknown baseline " + codec)
	}
	depth := sig.Depth()
	input, err := pcm.Bytes(sig.Samples, depth)
	if err != nil {
		return Result{}, err
	}

	buf := new(bytes.Buffer)
	wr := b.Encoder(buf, lvl)
	_, cpErr := io.Copy(wr, bytes.NewReader(input))
	if err := wr.Close(); err != nil {
		return Result{}, err
	}
	if cpErr != nil {
		return Result{}, cpErr
	}
	size := buf.Len()

	rd := b.Decoder(buf)
	output, rdErr := io.ReadAll(rd)
	if err := rd.Close(); err != nil {
		return Result{}, err
	}
	if rdErr != nil {
		return Result{}, rdErr
	}
	recon, err := pcm.FromBytes(output, depth)
	if err != nil {
		return Result{}, err
	}
	acc := huffman.Accuracy(sig.Samples, recon)

	return Result{
		Name:           name,
		Codec:          codec,
		Symbols:        len(sig.Samples),
		Bits:           8 * int64(size),
		Budget:         huffman.Budget(len(sig.Samples), 1, depth),
		Accuracy:       acc,
		SampleAccuracy: acc,
		Lossless:       pcm.Checksum(recon) == pcm.Checksum(sig.Samples) && len(recon) == len(sig.Samples),
		recon:          recon,
	}, nil
}

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "bench: " + string(e) }
