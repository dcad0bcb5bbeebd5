// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

// Budget reports the number of bits needed to store n symbols that are each
// made of width samples of depth bits.
func Budget(n, width, depth int) int64 {
	return int64(n) * int64(width) * int64(depth)
}

// Ratio reports bits as a fraction of budget.
// It returns zero for an empty budget.
func Ratio(bits, budget int64) float64 {
	if budget <= 0 {
		return 0
	}
	return float64(bits) / float64(budget)
}

// Accuracy reports the fraction of positions at which got equals want.
// Positions beyond the shorter of the two count as mismatches.
// Two empty sequences are perfectly accurate.
func Accuracy[S comparable](want, got []S) float64 {
	n := max(len(want), len(got))
	if n == 0 {
		return 1
	}
	var same int
	for i := 0; i < min(len(want), len(got)); i++ {
		if want[i] == got[i] {
			same++
		}
	}
	return float64(same) / float64(n)
}
