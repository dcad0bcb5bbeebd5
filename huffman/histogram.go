// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import "math"

// Entry is a single symbol and its frequency.
type Entry[S comparable] struct {
	Sym S
	Cnt int
}

// Histogram is a symbol frequency distribution.
//
// Entries are kept in the order in which symbols were first added. That order
// is the arrival order used to break ties when building a Tree, so two
// histograms built from the same input always produce the same codes.
type Histogram[S comparable] struct {
	entries []Entry[S]
	index   map[S]int
	total   int
}

// NewHistogram counts the symbols of train and then adds the unknown symbol
// with a count of one.
//
// If unk occurs naturally in train, those occurrences and the synthetic one
// are merged into a single entry, so the resulting count is one more than the
// natural count.
func NewHistogram[S comparable](train []S, unk S) (*Histogram[S], error) {
	if len(train) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	h := &Histogram[S]{index: make(map[S]int)}
	for _, s := range train {
		h.Add(s, 1)
	}
	h.Add(unk, 1)
	return h, nil
}

// Add increments the count of sym by cnt, appending sym if it is new.
// Non-positive counts are ignored.
func (h *Histogram[S]) Add(sym S, cnt int) {
	if cnt <= 0 {
		return
	}
	if h.index == nil {
		h.index = make(map[S]int)
	}
	if i, ok := h.index[sym]; ok {
		h.entries[i].Cnt += cnt
	} else {
		h.index[sym] = len(h.entries)
		h.entries = append(h.entries, Entry[S]{Sym: sym, Cnt: cnt})
	}
	h.total += cnt
}

// Len reports the number of distinct symbols.
func (h *Histogram[S]) Len() int { return len(h.entries) }

// Total reports the sum of all counts.
func (h *Histogram[S]) Total() int { return h.total }

// Count reports the count of sym, which is zero if absent.
func (h *Histogram[S]) Count(sym S) int {
	if i, ok := h.index[sym]; ok {
		return h.entries[i].Cnt
	}
	return 0
}

// Entries returns a copy of the entries in arrival order.
func (h *Histogram[S]) Entries() []Entry[S] {
	return append([]Entry[S](nil), h.entries...)
}

// TrainingPrefix returns the leading round(len(syms)*ratio) symbols of syms,
// clamped to at least one symbol and at most all of them.
func TrainingPrefix[S any](syms []S, ratio float64) ([]S, error) {
	if math.IsNaN(ratio) || ratio <= 0 || ratio > 1 {
		return nil, ErrInvalidRatio
	}
	if len(syms) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	n := int(math.Round(float64(len(syms)) * ratio))
	n = min(max(n, 1), len(syms))
	return syms[:n], nil
}
