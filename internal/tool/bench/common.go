// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench measures how well a training-prefix Huffman code compresses
// PCM audio across several training ratios and n-gram sizes, and compares it
// against general purpose compressors.
package bench

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dsnet/pcmhuff/huffman"
	"github.com/dsnet/pcmhuff/internal/logger"
	"github.com/dsnet/pcmhuff/ngram"
	"github.com/dsnet/pcmhuff/pcm"
)

const codecHuffman = "huffman"

// ErrSentinelRange reports that the sentinel lies within the sample range of
// the signal, so real samples would be indistinguishable from unknown ones.
var ErrSentinelRange error = Error("sentinel within the sample range")

// Config configures a benchmark run. A nil *Config uses DefaultConfig.
type Config struct {
	Ratios    []float64 // Training ratios, each in (0, 1]
	Grams     []int     // Group sizes, each in [1, ngram.MaxSize]
	Sentinel  int32     // Scalar from which the unknown symbol is built
	Fill      int32     // Sample written in place of unknown positions
	Lenient   bool      // Drop a trailing partial code when decoding
	Workers   int       // Maximum concurrent runs; zero means GOMAXPROCS
	Level     int       // Compression level of the baselines
	Baselines []string  // Names of registered baselines to compare against
}

// DefaultConfig returns the configuration used when none is provided.
func DefaultConfig() *Config {
	return &Config{
		Ratios:   []float64{0.1, 0.25, 0.5, 1},
		Grams:    []int{1, 2},
		Sentinel: ngram.DefaultSentinel,
		Level:    6,
	}
}

func (c *Config) validate() error {
	if len(c.Ratios) == 0 || len(c.Grams) == 0 {
		return Error("no ratios or grams configured")
	}
	for _, n := range c.Grams {
		if n < 1 || n > ngram.MaxSize {
			return fmt.Errorf("bench: gram %d: %w", n, ngram.ErrInvalidSize)
		}
	}
	for _, r := range c.Ratios {
		if !(r > 0 && r <= 1) {
			return fmt.Errorf("bench: ratio %v: %w", r, huffman.ErrInvalidRatio)
		}
	}
	for _, b := range c.Baselines {
		if _, ok := Baselines[b]; !ok {
			return Error("unknown baseline " + b)
		}
	}
	return nil
}

// Result is the outcome of compressing one signal with one configuration.
type Result struct {
	Name  string  // Name of the input
	Codec string  // "huffman" or the name of a baseline
	Gram  int     // Group size; zero for baselines
	Train float64 // Training ratio; zero for baselines

	Symbols   int   // Number of symbols encoded
	Codes     int   // Number of entries in the code table
	Depth     int   // Depth of the Huffman tree
	Missing   int   // Symbols substituted by the unknown symbol
	Bits      int64 // Compressed size in bits
	Budget    int64 // Uncompressed size in bits
	Footprint int   // Serialized code table size in bytes

	Accuracy       float64 // Fraction of symbols decoded exactly
	SampleAccuracy float64 // Fraction of samples reconstructed exactly
	Lossless       bool    // Whether the reconstruction checksum matches

	recon []int32
}

// Ratio reports the compressed size as a fraction of the budget.
func (r Result) Ratio() float64 { return huffman.Ratio(r.Bits, r.Budget) }

// TotalRatio is like Ratio, but also charges the code table footprint.
func (r Result) TotalRatio() float64 {
	return huffman.Ratio(r.Bits+8*int64(r.Footprint), r.Budget)
}

// Reconstruction returns the decoded samples, including the trailing samples
// that did not form a complete group.
func (r Result) Reconstruction() []int32 { return r.recon }

// Run measures every combination of group size and training ratio on the
// signal. Runs are independent and execute concurrently.
// The results are ordered by group size, then by training ratio.
//
// The sentinel must lie outside the sample range of the signal's bit depth,
// otherwise ErrSentinelRange is returned.
func Run(ctx context.Context, name string, sig *pcm.Signal, cfg *Config, log logger.Logger) ([]Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.Discard()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := checkSentinel(cfg.Sentinel, sig.Depth()); err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]Result, len(cfg.Grams)*len(cfg.Ratios))
	for i, n := range cfg.Grams {
		for j, ratio := range cfg.Ratios {
			idx, n, ratio := i*len(cfg.Ratios)+j, n, ratio
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				r, err := runOne(sig, n, ratio, cfg)
				if err != nil {
					return fmt.Errorf("bench: %s: gram %d, ratio %v: %w", name, n, ratio, err)
				}
				r.Name = name
				results[idx] = r
				log.Infof("%s: gram %d, ratio %.3g: %d of %d symbols missing, ratio %.4f",
					name, n, ratio, r.Missing, r.Symbols, r.Ratio())
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// checkSentinel returns an error if the sentinel lies within the sample range
// of the given bit depth.
func checkSentinel(sentinel int32, depth int) error {
	if depth < 1 || depth > 32 {
		return pcm.ErrBitDepth
	}
	if lo, hi := pcm.Range(depth); sentinel >= lo && sentinel <= hi {
		return fmt.Errorf("bench: sentinel %d, depth %d: %w", sentinel, depth, ErrSentinelRange)
	}
	return nil
}

func runOne(sig *pcm.Signal, n int, ratio float64, cfg *Config) (Result, error) {
	var r Result
	var err error
	if n == 1 {
		syms := ngram.Scalars(sig.Samples)
		r, err = measure(syms, cfg.Sentinel, ratio, cfg, ngram.AppendScalar,
			func(out []int32) []int32 {
				return ngram.Fill(append([]int32(nil), out...), cfg.Sentinel, cfg.Fill)
			})
	} else {
		var syms []ngram.Tuple
		if syms, err = ngram.Group(sig.Samples, n); err != nil {
			return Result{}, err
		}
		r, err = measure(syms, ngram.Unknown(n, cfg.Sentinel), ratio, cfg, ngram.AppendTuple,
			func(out []ngram.Tuple) []int32 {
				return ngram.Flatten(out, cfg.Sentinel, cfg.Fill)
			})
	}
	if err != nil {
		return Result{}, err
	}

	depth := sig.Depth()
	tail := ngram.Tail(sig.Samples, n)
	crc := pcm.CombineChecksum(pcm.Checksum(r.recon), pcm.Checksum(tail), len(tail))
	r.recon = append(r.recon, tail...)

	r.Gram, r.Train = n, ratio
	r.Budget = huffman.Budget(r.Symbols, n, depth)
	r.SampleAccuracy = huffman.Accuracy(sig.Samples, r.recon)
	r.Lossless = crc == pcm.Checksum(sig.Samples)
	return r, nil
}

// measure runs the full codec pipeline on syms. The flatten function turns
// decoded symbols back into samples.
func measure[S comparable](syms []S, unk S, ratio float64, cfg *Config, app huffman.SymbolAppender[S], flatten func([]S) []int32) (Result, error) {
	train, err := huffman.TrainingPrefix(syms, ratio)
	if err != nil {
		return Result{}, err
	}
	c, err := huffman.Build(train, unk)
	if err != nil {
		return Result{}, err
	}
	bs, st, err := c.Encode(syms)
	if err != nil {
		return Result{}, err
	}
	out, err := c.Decode(bs, &huffman.DecodeConfig{Lenient: cfg.Lenient})
	if err != nil {
		return Result{}, err
	}
	return Result{
		Codec:     codecHuffman,
		Symbols:   st.Symbols,
		Codes:     c.Table().Len(),
		Depth:     c.Tree().Depth(),
		Missing:   st.Missing,
		Bits:      st.Bits,
		Footprint: c.Table().Footprint(app),
		Accuracy:  huffman.Accuracy(syms, out),
		recon:     flatten(out),
	}, nil
}
