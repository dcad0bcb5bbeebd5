// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"testing"

	"github.com/dsnet/pcmhuff/internal/testutil"
)

func makeHistogram(cnts []int) *Histogram[int32] {
	var h Histogram[int32]
	for i, n := range cnts {
		h.Add(int32(i), n)
	}
	return &h
}

// optimalCost computes the minimal weighted code length over every complete
// prefix code by exhaustively searching all code length assignments that
// satisfy the Kraft equality.
func optimalCost(cnts []int) int64 {
	k := len(cnts)
	if k == 1 {
		return int64(cnts[0])
	}
	maxLen := uint(k - 1)
	full := uint64(1) << maxLen

	best := int64(-1)
	var search func(i int, kraft uint64, cost int64)
	search = func(i int, kraft uint64, cost int64) {
		if kraft > full || (best >= 0 && cost >= best) {
			return
		}
		if i == k {
			if kraft == full {
				best = cost
			}
			return
		}
		for l := uint(1); l <= maxLen; l++ {
			search(i+1, kraft+full>>l, cost+int64(cnts[i])*int64(l))
		}
	}
	search(0, 0, 0)
	return best
}

func TestNewTree(t *testing.T) {
	var vectors = []struct {
		cnts   []int
		tree   string
		depth  int
		weight int
	}{{
		cnts:   []int{1},
		tree:   "0:1",
		depth:  0,
		weight: 1,
	}, {
		cnts:   []int{3, 2, 1, 1},
		tree:   "(0:3 (1:2 (2:1 3:1)))",
		depth:  3,
		weight: 7,
	}, {
		// Equal counts pop in arrival order.
		cnts:   []int{1, 1, 1, 1},
		tree:   "((0:1 1:1) (2:1 3:1))",
		depth:  2,
		weight: 4,
	}, {
		// A merged node arrives after the leaves it ties with.
		cnts:   []int{2, 1, 1},
		tree:   "(0:2 (1:1 2:1))",
		depth:  2,
		weight: 4,
	}, {
		cnts:   []int{1, 1, 2, 3, 5, 8},
		tree:   "(5:8 (4:5 (3:3 (2:2 (0:1 1:1)))))",
		depth:  5,
		weight: 20,
	}}

	for i, v := range vectors {
		tr, err := NewTree(makeHistogram(v.cnts))
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if got := tr.String(); got != v.tree {
			t.Errorf("test %d, tree mismatch:\ngot  %s\nwant %s", i, got, v.tree)
		}
		if got := tr.Depth(); got != v.depth {
			t.Errorf("test %d, depth mismatch: got %d, want %d", i, got, v.depth)
		}
		if got := tr.Weight(); got != v.weight {
			t.Errorf("test %d, weight mismatch: got %d, want %d", i, got, v.weight)
		}
		if got := tr.Leaves(); got != len(v.cnts) {
			t.Errorf("test %d, leaves mismatch: got %d, want %d", i, got, len(v.cnts))
		}
	}

	if _, err := NewTree(new(Histogram[int32])); err != ErrEmptyTrainingSet {
		t.Errorf("empty histogram: got %v, want %v", err, ErrEmptyTrainingSet)
	}
	if _, err := NewTree[int32](nil); err != ErrEmptyTrainingSet {
		t.Errorf("nil histogram: got %v, want %v", err, ErrEmptyTrainingSet)
	}
}

func TestOptimality(t *testing.T) {
	r := testutil.NewRand(0)
	for k := 1; k <= 8; k++ {
		for j := 0; j < 4; j++ {
			cnts := make([]int, k)
			for i := range cnts {
				cnts[i] = 1 + r.Intn(50)
			}
			h := makeHistogram(cnts)
			tr, err := NewTree(h)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			ct, err := NewCodeTable(tr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := optimalCost(cnts)
			if got := ct.Cost(h); got != want {
				t.Errorf("counts %v, cost mismatch: got %d, want %d", cnts, got, want)
			}

			// Histogram order only affects ties, never the cost.
			var hp Histogram[int32]
			for _, i := range r.Perm(k) {
				hp.Add(int32(i), cnts[i])
			}
			tp, err := NewTree(&hp)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			cp, err := NewCodeTable(tp)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := cp.Cost(&hp); got != want {
				t.Errorf("counts %v (permuted), cost mismatch: got %d, want %d", cnts, got, want)
			}
		}
	}
}

func TestTreeDeterminism(t *testing.T) {
	r := testutil.NewRand(1)
	syms := r.Symbols(5000, 64)
	build := func() string {
		c, err := Build(syms, -1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return c.Tree().String()
	}
	want := build()
	for i := 0; i < 5; i++ {
		if got := build(); got != want {
			t.Fatalf("trial %d, tree differs between builds", i)
		}
	}
}
