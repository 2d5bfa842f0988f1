/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package bitio

import (
	"io"

	"github.com/entrocodec/entrocodec/entroerr"
)

const defaultPullBytes = 512

// BitReader adapts a byte io.Reader to bit-level reads through a
// BitBuffer. When the source is exhausted, further reads are zero-padded
// and Flushed reports true; the caller is responsible for recognizing
// that condition as corrupted input when more real bits were expected.
type BitReader struct {
	src       io.Reader
	buf       *BitBuffer
	flushed   bool
	totalRead uint64
	pullBytes int
}

// NewBitReader returns a BitReader pulling bytes from src as needed.
func NewBitReader(src io.Reader) *BitReader {
	return &BitReader{src: src, buf: NewBitBuffer(), pullBytes: defaultPullBytes}
}

// Flushed reports whether the underlying source has been exhausted.
func (r *BitReader) Flushed() bool {
	return r.flushed
}

// Read returns the total number of bits read so far (bits actually
// consumed from the source, not counting zero-padding served after
// exhaustion).
func (r *BitReader) Read() uint64 {
	return r.totalRead
}

// fill pulls bytes from the source until the buffer holds at least n bits
// or the source is exhausted.
func (r *BitReader) fill(n int) error {
	for r.buf.Len() < n && !r.flushed {
		chunk := make([]byte, r.pullBytes)
		read, err := r.src.Read(chunk)

		if read > 0 {
			r.buf.WriteBytes(chunk[:read])
		}

		if err != nil {
			if err == io.EOF {
				r.flushed = true
				return nil
			}

			return entroerr.IO(err)
		}

		if read == 0 {
			// A Reader returning (0, nil) forever would spin; treat it as EOF.
			r.flushed = true
		}
	}

	return nil
}

// ReadBit returns the next bit, or 0 with ok=false once the source is
// exhausted and no buffered bits remain.
func (r *BitReader) ReadBit() (bit int, ok bool) {
	if err := r.fill(1); err != nil {
		return 0, false
	}

	if r.buf.Empty() {
		return 0, false
	}

	v, _ := r.buf.ReadBits(1)
	r.totalRead++
	return int(v), true
}

// ReadBits reads up to n bits (n in [1..64]). got is the number of real
// bits read from the source; if got < n, the source was exhausted and the
// missing high-order bits of value are zero.
func (r *BitReader) ReadBits(n int) (value uint64, got int, err error) {
	if err := r.fill(n); err != nil {
		return 0, 0, err
	}

	value, got = r.buf.ReadBits(n)
	r.totalRead += uint64(got)
	return value, got, nil
}

// BitWriter adapts a byte io.Writer to bit-level writes through a
// BitBuffer, draining whole bytes to the sink as they accumulate.
type BitWriter struct {
	dst     io.Writer
	buf     *BitBuffer
	written uint64
}

// NewBitWriter returns a BitWriter draining to dst.
func NewBitWriter(dst io.Writer) *BitWriter {
	return &BitWriter{dst: dst, buf: NewBitBuffer()}
}

// Written returns the number of bits written so far, including bits still
// buffered but not yet flushed to the sink.
func (w *BitWriter) Written() uint64 {
	return w.written
}

// WriteBits writes the low 'width' bits of value, most significant bit
// first.
func (w *BitWriter) WriteBits(value uint64, width int) error {
	w.buf.WriteBits(value, width)
	w.written += uint64(width)
	return w.drain()
}

// WriteBit writes a single bit.
func (w *BitWriter) WriteBit(bit int) error {
	return w.WriteBits(uint64(bit&1), 1)
}

// WriteString writes one bit per character of s ('0'/'1').
func (w *BitWriter) WriteString(s string) error {
	w.buf.WriteString(s)
	w.written += uint64(len(s))
	return w.drain()
}

func (w *BitWriter) drain() error {
	for w.buf.Len() >= 8 {
		v, _ := w.buf.ReadBits(8)

		if _, err := w.dst.Write([]byte{byte(v)}); err != nil {
			return entroerr.IO(err)
		}
	}

	return nil
}

// Flush zero-pads any partial trailing byte and writes it to the sink.
// After Flush, total bits written is always a multiple of 8.
func (w *BitWriter) Flush() error {
	if rem := w.buf.Len(); rem > 0 {
		pad := 8 - rem
		w.buf.WriteBits(0, pad)
		w.written += uint64(pad)
	}

	return w.drain()
}
