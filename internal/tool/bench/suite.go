// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	strconv "github.com/dsnet/golib/unitconv"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dsnet/pcmhuff/huffman"
	"github.com/dsnet/pcmhuff/internal/logger"
	"github.com/dsnet/pcmhuff/pcm"
)

type loadKey struct {
	path    string
	channel int
}

// Loader loads WAV files by name from a list of search paths, keeping the
// most recently decoded signals in memory.
type Loader struct {
	Paths []string
	cache *lru.Cache[loadKey, *pcm.Signal]
}

// NewLoader returns a Loader caching up to size decoded signals.
func NewLoader(paths []string, size int) (*Loader, error) {
	c, err := lru.New[loadKey, *pcm.Signal](max(size, 1))
	if err != nil {
		return nil, err
	}
	return &Loader{Paths: paths, cache: c}, nil
}

// Load returns up to n samples of the given channel of file.
// A negative n loads every sample.
func (l *Loader) Load(file string, channel, n int) (*pcm.Signal, error) {
	key := loadKey{l.getPath(file), channel}
	sig, ok := l.cache.Get(key)
	if !ok {
		var err error
		if sig, err = pcm.LoadWAV(key.path, channel); err != nil {
			return nil, err
		}
		l.cache.Add(key, sig)
	}
	return sig.Truncate(n), nil
}

func (l *Loader) getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range l.Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

// Suite runs the benchmark over every file and size, followed by the
// configured baselines. Inputs that cannot be loaded or benchmarked, such as
// files too short to form a single group or whose samples may collide with
// the sentinel, are logged and skipped.
//
// If outDir is not empty, the reconstruction of every Huffman run is written
// there as a WAV file.
func Suite(ctx context.Context, ld *Loader, files []string, channel int, sizes []int, cfg *Config, outDir string, log logger.Logger) ([]Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.Discard()
	}
	if len(sizes) == 0 {
		sizes = []int{-1}
	}

	var results []Result
	for _, f := range files {
		for _, n := range sizes {
			sig, err := ld.Load(f, channel, n)
			if err != nil {
				log.Errorf("%s: %v", f, err)
				continue
			}
			name := getName(f, len(sig.Samples))

			rs, err := Run(ctx, name, sig, cfg, log)
			if errors.Is(err, huffman.ErrEmptyTrainingSet) || errors.Is(err, ErrSentinelRange) ||
				errors.Is(err, pcm.ErrBitDepth) {
				log.Errorf("%s: %v", name, err)
				continue
			}
			if err != nil {
				return results, err
			}
			if outDir != "" {
				if err := saveReconstructions(outDir, rs, sig); err != nil {
					return results, err
				}
			}
			results = append(results, rs...)

			for _, b := range cfg.Baselines {
				r, err := RunBaseline(name, b, sig, cfg.Level)
				if err != nil {
					log.Errorf("%s: baseline %s: %v", name, b, err)
					continue
				}
				results = append(results, r)
			}
		}
	}
	return results, nil
}

func saveReconstructions(dir string, rs []Result, sig *pcm.Signal) error {
	for _, r := range rs {
		base := strings.NewReplacer(":", "_", "/", "_").Replace(r.Name)
		file := filepath.Join(dir, fmt.Sprintf("%s.n%d.r%g.wav", base, r.Gram, r.Train))
		out := &pcm.Signal{Samples: r.recon, SampleRate: sig.SampleRate, BitDepth: sig.Depth()}
		if err := pcm.SaveWAV(file, out); err != nil {
			return err
		}
	}
	return nil
}

var reExp = regexp.MustCompile("\\.0*e\\+0*")

func getName(f string, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12:
		s := fmt.Sprintf("%e", float64(n))
		sn = reExp.ReplaceAllString(s, "e")
	default:
		s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%s", path.Base(f), sn)
}
