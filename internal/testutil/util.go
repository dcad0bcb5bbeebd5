// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package testutil is a collection of testing helper methods.
package testutil

// ResizeSamples resizes the input. If n < 0, then the original input will be
// returned as is. If n <= len(input), then the input slice will be truncated.
// However, if n > len(input), then the input will be replicated to fill in
// the missing samples, but each replicated run will be XORed by some mask
// so that the copies introduce symbols that were never seen before.
//
// If n > len(input), then len(input) must be > 0.
func ResizeSamples(input []int32, n int) []int32 {
	if n < 0 {
		return input
	}
	if len(input) >= n {
		return input[:n]
	}
	if len(input) == 0 {
		panic("unable to replicate an empty signal")
	}

	var mask int32
	output := make([]int32, n)
	for i := range output {
		idx := i % len(input)
		output[i] = int32(int16(input[idx] ^ mask))
		if idx == len(input)-1 {
			mask++
		}
	}
	return output
}
