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

// freqBits is ceil(log2(MaxFrequency+1)): MaxFrequency+1 is exactly
// 1<<16, so this is 16.
const freqBits = 16

// WriteStaticHeader emits one (7-bit symbol, 16-bit capped frequency)
// pair per symbol with non-zero frequency, terminated by the pair for
// alphabet.EOFMarker — written last regardless of iteration order so the
// decoder has an unambiguous stopping point.
func WriteStaticHeader(freqs [alphabet.Size]uint32, bw *bitio.BitWriter) error {
	for s := alphabet.Symbol(0); int(s) < alphabet.Size; s++ {
		if s == alphabet.EOFMarker {
			continue
		}

		f := freqs[s]

		if f == 0 {
			continue
		}

		if err := writeHeaderPair(bw, s, capFrequency(f)); err != nil {
			return err
		}
	}

	return writeHeaderPair(bw, alphabet.EOFMarker, capFrequency(orFloor(freqs[alphabet.EOFMarker])))
}

func writeHeaderPair(bw *bitio.BitWriter, s alphabet.Symbol, f uint32) error {
	if err := bw.WriteBits(uint64(alphabet.FixedCode(s)), alphabet.FixedCodeBits); err != nil {
		return err
	}

	return bw.WriteBits(uint64(f), freqBits)
}

func capFrequency(f uint32) uint32 {
	if f > MaxFrequency {
		return MaxFrequency
	}

	return f
}

func orFloor(f uint32) uint32 {
	if f == 0 {
		return 1
	}

	return f
}

// ReadStaticHeader parses a header written by WriteStaticHeader,
// returning the per-symbol frequency table it describes.
func ReadStaticHeader(br *bitio.BitReader) ([alphabet.Size]uint32, error) {
	var freqs [alphabet.Size]uint32

	for {
		code, got, _ := br.ReadBits(alphabet.FixedCodeBits)

		if got < alphabet.FixedCodeBits {
			return freqs, entroerr.CorruptedHeader("truncated static arithmetic header: symbol field")
		}

		s := alphabet.FromFixedCode(uint32(code))

		if !s.Valid() {
			return freqs, entroerr.CorruptedHeader("static arithmetic header names a symbol outside the alphabet")
		}

		f, got, _ := br.ReadBits(freqBits)

		if got < freqBits {
			return freqs, entroerr.CorruptedHeader("truncated static arithmetic header: frequency field")
		}

		freqs[s] = uint32(f)

		if s == alphabet.EOFMarker {
			return freqs, nil
		}
	}
}
