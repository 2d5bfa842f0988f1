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

package acode

import (
	"github.com/entrocodec/entrocodec/alphabet"
	"github.com/entrocodec/entrocodec/bitio"
	"github.com/entrocodec/entrocodec/entroerr"
)

// Code based on an order-0 range coder in the Subbotin/Martin lineage
// (the same lineage kanzi-go's entropy/RangeCodec.go credits), specialized
// to bit-at-a-time renormalization with explicit underflow counting
// instead of kanzi's byte-chunked carry handling.
const (
	mask         = uint64(1)<<Precision - 1
	half         = uint64(1) << (Precision - 1)
	quarter      = uint64(1) << (Precision - 2)
	threeQuarter = half + quarter
)

// Encoder is a stateful range encoder over a Codebook. One Encoder is
// owned by exactly one caller; it is not safe for concurrent use.
type Encoder struct {
	cb      *Codebook
	bw      *bitio.BitWriter
	low     uint64
	high    uint64
	pending uint64
}

// NewEncoder returns an Encoder writing through bw, coding symbols
// against cb (static or adaptive — the Encoder itself doesn't care).
func NewEncoder(cb *Codebook, bw *bitio.BitWriter) *Encoder {
	return &Encoder{cb: cb, bw: bw, low: 0, high: mask}
}

// EncodeSymbol narrows the current interval to s's cumulative range and
// renormalizes, emitting bits as the interval converges.
func (e *Encoder) EncodeSymbol(s alphabet.Symbol) error {
	symLow, symHigh, total := e.cb.CatalogueSymbol(s)
	rng := e.high - e.low + 1
	e.high = e.low + (uint64(symHigh)*rng)/uint64(total) - 1
	e.low = e.low + (uint64(symLow)*rng)/uint64(total)

	for {
		switch {
		case e.high < half:
			if err := e.emit(0); err != nil {
				return err
			}
		case e.low >= half:
			if err := e.emit(1); err != nil {
				return err
			}

			e.low -= half
			e.high -= half
		case e.low >= quarter && e.high < threeQuarter:
			e.low -= quarter
			e.high -= quarter
			e.pending++
			e.low = (e.low << 1) & mask
			e.high = ((e.high << 1) | 1) & mask
			continue
		default:
			return nil
		}

		e.low = (e.low << 1) & mask
		e.high = ((e.high << 1) | 1) & mask
	}
}

// emit writes bit followed by e.pending inverse bits, then resets pending.
func (e *Encoder) emit(bit int) error {
	if err := e.bw.WriteBit(bit); err != nil {
		return err
	}

	inverse := 1 - bit

	for ; e.pending > 0; e.pending-- {
		if err := e.bw.WriteBit(inverse); err != nil {
			return err
		}
	}

	return nil
}

// Flush encodes EOF_MARKER, then emits the one sign bit plus pending+1
// inverse bits that guarantee the decoder's window lands inside the
// final [low, high] interval regardless of the sink's zero padding, and
// byte-aligns the underlying bit writer.
func (e *Encoder) Flush() error {
	if err := e.EncodeSymbol(alphabet.EOFMarker); err != nil {
		return err
	}

	finalBit := 1
	if e.low < quarter {
		finalBit = 0
	}

	if err := e.bw.WriteBit(finalBit); err != nil {
		return err
	}

	inverse := 1 - finalBit

	for i := uint64(0); i < e.pending+1; i++ {
		if err := e.bw.WriteBit(inverse); err != nil {
			return err
		}
	}

	return e.bw.Flush()
}

// Decoder is the counterpart of Encoder, reading bits through a
// bitio.BitReader.
type Decoder struct {
	cb        *Codebook
	br        *bitio.BitReader
	low       uint64
	high      uint64
	code      uint64
	synthBits int
}

// maxSynthBits bounds how many zero-padded (post-exhaustion) bits a
// well-formed stream can ever need: Flush emits at most Precision+1 real
// trailer bits plus up to 7 bits of byte-alignment padding.
const maxSynthBits = Precision + 8

// NewDecoder returns a Decoder reading through br, priming its window
// with the first Precision bits of the stream.
func NewDecoder(cb *Codebook, br *bitio.BitReader) *Decoder {
	d := &Decoder{cb: cb, br: br, low: 0, high: mask}

	for i := 0; i < Precision; i++ {
		d.code = (d.code << 1) | uint64(d.nextBit())
	}

	return d
}

func (d *Decoder) nextBit() int {
	bit, ok := d.br.ReadBit()

	if ok {
		d.synthBits = 0
	} else {
		d.synthBits++
	}

	return bit
}

// DecodeSymbol decodes the next symbol. Callers loop until it returns
// alphabet.EOFMarker; if the underlying stream is exhausted before that
// happens, DecodeSymbol returns entroerr.ErrCorruptedEncoding.
func (d *Decoder) DecodeSymbol() (alphabet.Symbol, error) {
	if d.synthBits > maxSynthBits {
		return alphabet.InvalidSymbol, entroerr.CorruptedEncoding("arithmetic stream ended before EOF_MARKER")
	}

	total := d.cb.Total()
	rng := d.high - d.low + 1
	scaled := ((d.code-d.low+1)*uint64(total) - 1) / rng

	if scaled >= uint64(total) {
		scaled = uint64(total) - 1
	}

	s, symLow, symHigh, _ := d.cb.ProbabilitySymbolSearch(uint32(scaled))
	d.high = d.low + (uint64(symHigh)*rng)/uint64(total) - 1
	d.low = d.low + (uint64(symLow)*rng)/uint64(total)

	for {
		switch {
		case d.high < half:
		case d.low >= half:
			d.low -= half
			d.high -= half
			d.code -= half
		case d.low >= quarter && d.high < threeQuarter:
			d.low -= quarter
			d.high -= quarter
			d.code -= quarter
			d.low = (d.low << 1) & mask
			d.high = ((d.high << 1) | 1) & mask
			d.code = ((d.code << 1) | uint64(d.nextBit())) & mask
			continue
		default:
			return s, nil
		}

		d.low = (d.low << 1) & mask
		d.high = ((d.high << 1) | 1) & mask
		d.code = ((d.code << 1) | uint64(d.nextBit())) & mask
	}
}
