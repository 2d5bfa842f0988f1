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

// Package codec binds the four entropy coding algorithms to a single
// dump/load contract over plain io.Reader/io.Writer pairs, the one
// surface callers outside this module are meant to use.
package codec

import (
	"io"

	"github.com/entrocodec/entrocodec/alphabet"
	"github.com/entrocodec/entrocodec/bitio"
	"github.com/entrocodec/entrocodec/entroerr"
	"github.com/entrocodec/entrocodec/entropy/acode"
	"github.com/entrocodec/entrocodec/entropy/huff"
)

// Algorithm names recognized by Dump and Load.
const (
	HuffmanStatic      = "huffman-static"
	HuffmanAdaptive    = "huffman-adaptive"
	ArithmeticStatic   = "arith-static"
	ArithmeticAdaptive = "arith-adaptive"
)

// Dump reads characters from r until exhausted and writes the complete
// encoding — header, payload, EOF_MARKER, byte-alignment padding — to w.
func Dump(algorithm string, r io.Reader, w io.Writer) error {
	symbols, err := readSymbols(r)

	if err != nil {
		return err
	}

	bw := bitio.NewBitWriter(w)

	switch algorithm {
	case HuffmanAdaptive:
		enc := huff.NewAdaptiveEncoder(bw)

		for _, s := range symbols {
			if err := enc.EncodeSymbol(s); err != nil {
				return err
			}
		}

		return enc.Flush()

	case HuffmanStatic:
		freqs := acode.CountFrequencies(append(append([]alphabet.Symbol{}, symbols...), alphabet.EOFMarker))
		table, err := huff.BuildStaticTable(freqs)

		if err != nil {
			return err
		}

		enc, err := huff.NewStaticEncoder(table, bw)

		if err != nil {
			return err
		}

		for _, s := range symbols {
			if err := enc.EncodeSymbol(s); err != nil {
				return err
			}
		}

		return enc.Flush()

	case ArithmeticAdaptive:
		enc := acode.NewEncoder(acode.NewAdaptiveCodebook(), bw)

		for _, s := range symbols {
			if err := enc.EncodeSymbol(s); err != nil {
				return err
			}
		}

		return enc.Flush()

	case ArithmeticStatic:
		freqs := acode.CountFrequencies(append(append([]alphabet.Symbol{}, symbols...), alphabet.EOFMarker))
		enc, err := acode.NewStaticEncoder(freqs, bw)

		if err != nil {
			return err
		}

		for _, s := range symbols {
			if err := enc.EncodeSymbol(s); err != nil {
				return err
			}
		}

		return enc.Flush()

	default:
		return entroerr.CorruptedHeader("unknown algorithm: " + algorithm)
	}
}

// Load reads the encoding produced by Dump and writes the decoded
// characters to w, returning once EOF_MARKER is observed.
func Load(algorithm string, r io.Reader, w io.Writer) error {
	br := bitio.NewBitReader(r)

	switch algorithm {
	case HuffmanAdaptive:
		dec := huff.NewAdaptiveDecoder(br)
		return drain(w, func() (alphabet.Symbol, error) { return dec.DecodeSymbol() })

	case HuffmanStatic:
		dec, err := huff.NewStaticDecoder(br)

		if err != nil {
			return err
		}

		return drain(w, func() (alphabet.Symbol, error) { return dec.DecodeSymbol() })

	case ArithmeticAdaptive:
		dec := acode.NewDecoder(acode.NewAdaptiveCodebook(), br)
		return drain(w, func() (alphabet.Symbol, error) { return dec.DecodeSymbol() })

	case ArithmeticStatic:
		dec, err := acode.NewStaticDecoder(br)

		if err != nil {
			return err
		}

		return drain(w, func() (alphabet.Symbol, error) { return dec.DecodeSymbol() })

	default:
		return entroerr.CorruptedHeader("unknown algorithm: " + algorithm)
	}
}

// readSymbols consumes r to completion, translating every byte to its
// alphabet.Symbol. A byte outside the alphabet is fatal to the stream.
func readSymbols(r io.Reader) ([]alphabet.Symbol, error) {
	raw, err := io.ReadAll(r)

	if err != nil {
		return nil, entroerr.IO(err)
	}

	symbols := make([]alphabet.Symbol, len(raw))

	for i, b := range raw {
		s, ok := alphabet.FromByte(b)

		if !ok {
			return nil, entroerr.UnknownSymbol(b)
		}

		symbols[i] = s
	}

	return symbols, nil
}

// drain calls next repeatedly, writing each decoded symbol's byte to w,
// until it sees alphabet.EOFMarker or an error.
func drain(w io.Writer, next func() (alphabet.Symbol, error)) error {
	for {
		s, err := next()

		if err != nil {
			return err
		}

		if s == alphabet.EOFMarker {
			return nil
		}

		if _, err := w.Write([]byte{s.Byte()}); err != nil {
			return entroerr.IO(err)
		}
	}
}
