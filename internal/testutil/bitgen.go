// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	reBin = regexp.MustCompile("^[01]{1,64}$")
	reDec = regexp.MustCompile("^D[0-9]+:[0-9]+$")
	reQnt = regexp.MustCompile("[*][0-9]+$")
)

// DecodeBitGen decodes a BitGen formatted string into a string of '0' and
// '1' characters in the order the bits appear in the stream.
//
// The format consists of a series of tokens separated by white space of any
// kind. The '#' character is used for commenting. Thus, any bytes on a given
// line that appear after the '#' character is ignored.
//
// A token of the pattern "[01]{1,64}" forms a bit-string (e.g. 11010), which
// is written left-most bit first.
//
// A token of the form "D[0-9]+:[0-9]+" represents a decimal value. The first
// number is the bit-length, which must be between 0 and 64 and long enough to
// hold the value. The value is written most-significant bit first.
//
// A token decorator of the pattern "[*][0-9]+" may trail any token. This is
// a quantifier decorator which indicates that the current token is to be
// repeated some number of times.
//
// Example BitGen string:
//	0*2      # Two symbols with code "0"
//	10 110   # Followed by codes "10" and "110"
//	D3:7     # And the unknown code "111"
func DecodeBitGen(str string) (string, error) {
	var toks []string
	for _, s := range strings.Split(str, "\n") {
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
		toks = append(toks, strings.Fields(s)...)
	}

	var sb strings.Builder
	for _, t := range toks {
		rep := 1
		if m := reQnt.FindString(t); m != "" {
			n, err := strconv.Atoi(m[1:])
			if err != nil {
				return "", errors.New("testutil: invalid quantifier")
			}
			rep, t = n, t[:len(t)-len(m)]
		}

		var bits string
		switch {
		case reBin.MatchString(t):
			bits = t
		case reDec.MatchString(t):
			i := strings.IndexByte(t, ':')
			n, err := strconv.Atoi(t[1:i])
			if err != nil || n > 64 {
				return "", errors.New("testutil: invalid bit-length")
			}
			v, err := strconv.ParseUint(t[i+1:], 10, 64)
			if err != nil || (n < 64 && v>>uint(n) > 0) {
				return "", errors.New("testutil: integer overflow on bit-length")
			}
			if n > 0 {
				bits = strconv.FormatUint(v, 2)
				bits = strings.Repeat("0", n-len(bits)) + bits
			}
		default:
			return "", errors.New("testutil: unknown token: " + t)
		}
		sb.WriteString(strings.Repeat(bits, rep))
	}
	return sb.String(), nil
}

// MustDecodeBitGen must decode a BitGen formatted string or else panics.
func MustDecodeBitGen(s string) string {
	b, err := DecodeBitGen(s)
	if err != nil {
		panic(err)
	}
	return b
}
