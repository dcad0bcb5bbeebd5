// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Benchmark tool to measure how well a Huffman code learned from a prefix of
// an audio signal compresses the rest of it. Each input is coded once per
// n-gram size and training ratio, and optionally compared against general
// purpose compressors.
//
// Example usage:
//	$ go build -o pcmbench ./cmd/pcmbench
//	$ ./pcmbench \
//		-paths     ./testdata      \
//		-files     speech.wav      \
//		-sizes     1e4,1e5         \
//		-ratios    0.1,0.5,1       \
//		-grams     1,2             \
//		-baselines flate,xz
//
//
//	BENCHMARK: huffman
//		benchmark         codec    gram  train  codes  missing      size   ratio  +table     acc  lossless
//		speech.wav:1e4    huffman     1   0.10    318      412   15.62KiB  0.5003  0.5354  95.88%     false
//		speech.wav:1e4    huffman     1   0.50    802       48   14.88KiB  0.4762  0.5724  99.52%     false
//		speech.wav:1e4    huffman     1   1.00   1093        0   14.61KiB  0.4675  0.6048 100.00%      true
//		...
//		speech.wav:1e4    flate                             14.96KiB  0.4787         100.00%      true
//		speech.wav:1e4    xz                                13.84KiB  0.4429         100.00%      true
//
//
//	RUNTIME: 3.121573504s
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	stdstrconv "strconv"
	"strings"
	"time"

	strconv "github.com/dsnet/golib/unitconv"

	"github.com/dsnet/pcmhuff/internal/logger"
	"github.com/dsnet/pcmhuff/internal/tool/bench"
	"github.com/dsnet/pcmhuff/ngram"
)

const (
	defaultRatios = "0.1,0.25,0.5,1"
	defaultGrams  = "1,2"
	defaultSizes  = "-1"
	defaultCache  = 16
)

func defaultBaselines() string {
	var s []string
	for k := range bench.Baselines {
		s = append(s, k)
	}
	sort.Strings(s)
	return strings.Join(s, ",")
}

func defaultFiles(paths string) string {
	var s []string
	for _, p := range strings.Split(paths, ",") {
		m, _ := filepath.Glob(filepath.Join(p, "*.wav"))
		for _, f := range m {
			s = append(s, filepath.Base(f))
		}
	}
	return strings.Join(s, ",")
}

func main() {
	// Setup flag arguments.
	f0 := flag.String("paths", ".", "List of paths to search for input files")
	f1 := flag.String("files", "", "List of WAV files to benchmark (default: every WAV file in the paths)")
	f2 := flag.Int("channel", 0, "Channel to extract from multi-channel files")
	f3 := flag.String("sizes", defaultSizes, "List of input sizes in samples; negative means the whole file")
	f4 := flag.String("ratios", defaultRatios, "List of training ratios in (0, 1]")
	f5 := flag.String("grams", defaultGrams, "List of n-gram sizes")
	f6 := flag.Int("sentinel", int(ngram.DefaultSentinel), "Scalar from which the unknown symbol is built; must lie outside the sample range")
	f7 := flag.Int("fill", 0, "Sample written in place of unknown positions")
	f8 := flag.Bool("lenient", false, "Drop a trailing partial code instead of failing")
	f9 := flag.Int("workers", 0, "Maximum concurrent runs (default: GOMAXPROCS)")
	f10 := flag.String("baselines", defaultBaselines(), "List of general purpose compressors to compare against")
	f11 := flag.Int("level", 6, "Compression level of the baselines")
	f12 := flag.String("out", "", "Directory to write reconstructed WAV files to")
	f13 := flag.Bool("v", false, "Log the progress of every run")
	flag.Parse()

	// Parse the flag arguments.
	var sep = regexp.MustCompile("[,:]")
	paths := sep.Split(*f0, -1)
	files := split(sep, *f1)
	if len(files) == 0 {
		files = split(sep, defaultFiles(strings.Join(paths, ",")))
	}
	if len(files) == 0 {
		fatalf("no input files found in %v", paths)
	}

	cfg := &bench.Config{
		Sentinel:  int32(*f6),
		Fill:      int32(*f7),
		Lenient:   *f8,
		Workers:   *f9,
		Level:     *f11,
		Baselines: split(sep, *f10),
	}
	var sizes []int
	for _, s := range sep.Split(*f3, -1) {
		if n, err := stdstrconv.Atoi(s); err == nil {
			sizes = append(sizes, n)
			continue
		}
		nf, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil {
			fatalf("invalid size: %q", s)
		}
		sizes = append(sizes, int(nf))
	}
	for _, s := range sep.Split(*f4, -1) {
		r, err := stdstrconv.ParseFloat(s, 64)
		if err != nil {
			fatalf("invalid ratio: %q", s)
		}
		cfg.Ratios = append(cfg.Ratios, r)
	}
	for _, s := range sep.Split(*f5, -1) {
		n, err := stdstrconv.Atoi(s)
		if err != nil {
			fatalf("invalid gram: %q", s)
		}
		cfg.Grams = append(cfg.Grams, n)
	}

	log := logger.Discard()
	if *f13 {
		log = logger.New(os.Stderr)
	}
	ld, err := bench.NewLoader(paths, defaultCache)
	if err != nil {
		fatalf("%v", err)
	}

	ts := time.Now()
	fmt.Println("BENCHMARK: huffman")
	results, err := bench.Suite(context.Background(), ld, files, *f2, sizes, cfg, *f12, log)
	bench.PrintResults(os.Stdout, results)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println()
	te := time.Now()
	fmt.Printf("RUNTIME: %v\n", te.Sub(ts))
}

func split(sep *regexp.Regexp, s string) []string {
	if s == "" {
		return nil
	}
	return sep.Split(s, -1)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "pcmbench: "+format+"\n", args...)
	os.Exit(1)
}
