// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package pcm adapts WAV files to flat integer sample sequences.
//
// Only a single channel is ever extracted from a file, and written files are
// always mono.
package pcm

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	hashutil "github.com/dsnet/golib/hashmerge"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "pcm: " + string(e) }

var (
	// ErrInvalidFile reports that the input is not a PCM WAV stream.
	ErrInvalidFile = Error("invalid WAV file")

	// ErrChannel reports a channel index outside the channels of the stream.
	ErrChannel = Error("channel out of range")

	// ErrBitDepth reports a bit depth outside [1, 32].
	ErrBitDepth = Error("bit depth out of range")
)

const (
	wavFormatPCM = 1

	// DefaultBitDepth is assumed for signals that do not report a depth.
	DefaultBitDepth = 16
)

// Signal is a mono sequence of integer samples.
type Signal struct {
	Samples    []int32
	SampleRate int
	BitDepth   int // Zero means DefaultBitDepth
}

// Depth returns the bit depth of the signal, substituting DefaultBitDepth
// when none is set.
func (s *Signal) Depth() int {
	if s.BitDepth <= 0 {
		return DefaultBitDepth
	}
	return s.BitDepth
}

// Range returns the smallest and largest sample representable at the given
// bit depth, which must be in [1, 32].
func Range(depth int) (lo, hi int32) {
	return int32(-1 << uint(depth-1)), int32(1<<uint(depth-1) - 1)
}

// Truncate returns a copy of the signal holding at most n samples.
// A negative n keeps every sample.
func (s *Signal) Truncate(n int) *Signal {
	out := *s
	if n >= 0 && n < len(s.Samples) {
		out.Samples = s.Samples[:n]
	}
	return &out
}

// ReadWAV decodes the given channel of a WAV stream.
func ReadWAV(r io.ReadSeeker, channel int) (*Signal, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, ErrInvalidFile
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("pcm: decoding samples: %w", err)
	}

	nch := int(d.NumChans)
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		nch = buf.Format.NumChannels
	}
	if channel < 0 || channel >= max(nch, 1) {
		return nil, ErrChannel
	}
	nch = max(nch, 1)

	samples := make([]int32, 0, len(buf.Data)/nch)
	for i := channel; i < len(buf.Data); i += nch {
		samples = append(samples, int32(buf.Data[i]))
	}
	return &Signal{
		Samples:    samples,
		SampleRate: int(d.SampleRate),
		BitDepth:   int(d.BitDepth),
	}, nil
}

// LoadWAV reads the given channel of the WAV file at path.
func LoadWAV(path string, channel int) (*Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWAV(f, channel)
}

// WriteWAV encodes the signal as a mono PCM WAV stream.
func WriteWAV(w io.WriteSeeker, s *Signal) error {
	e := wav.NewEncoder(w, s.SampleRate, s.BitDepth, 1, wavFormatPCM)
	data := make([]int, len(s.Samples))
	for i, v := range s.Samples {
		data[i] = int(v)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: s.SampleRate},
		Data:           data,
		SourceBitDepth: s.BitDepth,
	}
	if err := e.Write(buf); err != nil {
		return fmt.Errorf("pcm: encoding samples: %w", err)
	}
	return e.Close()
}

// SaveWAV writes the signal to a new WAV file at path.
func SaveWAV(path string, s *Signal) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWAV(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Bytes returns the samples as little-endian PCM of (depth+7)/8 bytes per
// sample, saturating samples outside the range of the bit depth.
func Bytes(samples []int32, depth int) ([]byte, error) {
	if depth < 1 || depth > 32 {
		return nil, ErrBitDepth
	}
	lo, hi := Range(depth)
	w := (depth + 7) / 8
	b := make([]byte, w*len(samples))
	var tmp [4]byte
	for i, v := range samples {
		v = max(min(v, hi), lo)
		binary.LittleEndian.PutUint32(tmp[:], uint32(v))
		copy(b[w*i:], tmp[:w])
	}
	return b, nil
}

// FromBytes is the inverse of Bytes. Trailing bytes that do not form a
// complete sample are ignored.
func FromBytes(b []byte, depth int) ([]int32, error) {
	if depth < 1 || depth > 32 {
		return nil, ErrBitDepth
	}
	w := (depth + 7) / 8
	shift := uint(32 - 8*w)
	samples := make([]int32, len(b)/w)
	var tmp [4]byte
	for i := range samples {
		copy(tmp[:], b[w*i:w*i+w])
		// Shift the sign bit of the top byte into place and back.
		samples[i] = int32(binary.LittleEndian.Uint32(tmp[:])<<shift) >> shift
	}
	return samples, nil
}

// Checksum returns the CRC-32 (IEEE) of the samples, each encoded as a
// 32-bit little-endian integer regardless of the bit depth of the signal.
func Checksum(samples []int32) uint32 {
	crc := crc32.NewIEEE()
	var tmp [4]byte
	for _, v := range samples {
		binary.LittleEndian.PutUint32(tmp[:], uint32(v))
		crc.Write(tmp[:])
	}
	return crc.Sum32()
}

// CombineChecksum returns the checksum of the concatenation of two sample
// sequences, given their individual checksums and the length of the second.
func CombineChecksum(crc1, crc2 uint32, n2 int) uint32 {
	return hashutil.CombineCRC32(crc32.IEEE, crc1, crc2, 4*int64(n2))
}
