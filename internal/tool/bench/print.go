// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"fmt"
	"io"
	"strings"

	strconv "github.com/dsnet/golib/unitconv"
)

var columns = []string{
	"benchmark", "codec", "gram", "train", "codes", "missing",
	"size", "ratio", "+table", "acc", "lossless",
}

// PrintResults writes the results as a table with padded columns.
// Columns that do not apply to a result are left blank.
func PrintResults(w io.Writer, results []Result) {
	// Allocate result table.
	cells := make([][]string, 1+len(results))
	cells[0] = columns
	for j, r := range results {
		row := make([]string, len(columns))
		row[0] = r.Name
		row[1] = r.Codec
		if r.Codec == codecHuffman {
			row[2] = fmt.Sprintf("%d", r.Gram)
			row[3] = fmt.Sprintf("%.2f", r.Train)
			row[4] = fmt.Sprintf("%d", r.Codes)
			row[5] = fmt.Sprintf("%d", r.Missing)
			row[8] = fmt.Sprintf("%.4f", r.TotalRatio())
		}
		row[6] = strconv.FormatPrefix(float64(r.Bits)/8, strconv.Base1024, 2) + "B"
		row[7] = fmt.Sprintf("%.4f", r.Ratio())
		row[9] = fmt.Sprintf("%.2f%%", 100*r.SampleAccuracy)
		row[10] = fmt.Sprintf("%v", r.Lossless)
		cells[1+j] = row
	}

	// Compute the maximum lengths.
	maxLens := make([]int, len(columns))
	for _, row := range cells {
		for i, s := range row {
			if maxLens[i] < len(s) {
				maxLens[i] = len(s)
			}
		}
	}

	// Print padded versions of all cells.
	for _, row := range cells {
		var sb strings.Builder
		sb.WriteString("\t")
		for i, s := range row {
			switch {
			case i == 0: // Column 0
				sb.WriteString(s + strings.Repeat(" ", maxLens[i]-len(s)))
			case i == 1: // Codec names read better left aligned
				sb.WriteString("  " + s + strings.Repeat(" ", maxLens[i]-len(s)))
			default:
				sb.WriteString(strings.Repeat(" ", 2+maxLens[i]-len(s)) + s)
			}
		}
		fmt.Fprintln(w, sb.String())
	}
}
