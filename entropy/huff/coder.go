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

package huff

import (
	"github.com/entrocodec/entrocodec/alphabet"
	"github.com/entrocodec/entrocodec/bitio"
	"github.com/entrocodec/entrocodec/entroerr"
)

// AdaptiveEncoder drives a Tree to produce the FGK adaptive Huffman
// encoding of a symbol stream.
type AdaptiveEncoder struct {
	tree *Tree
	bw   *bitio.BitWriter
}

// NewAdaptiveEncoder returns an AdaptiveEncoder writing through bw,
// starting from a fresh Tree.
func NewAdaptiveEncoder(bw *bitio.BitWriter) *AdaptiveEncoder {
	return &AdaptiveEncoder{tree: NewTree(), bw: bw}
}

// EncodeSymbol emits s's current code — the path to its leaf if the tree
// has seen it before, otherwise the path to NYT followed by s's 7-bit
// fixed code — then updates the tree to reflect the occurrence.
func (e *AdaptiveEncoder) EncodeSymbol(s alphabet.Symbol) error {
	if leafIdx, ok := e.tree.HasSymbol(s); ok {
		if err := e.bw.WriteString(e.tree.PathToLeaf(leafIdx)); err != nil {
			return err
		}

		e.tree.ObserveExisting(leafIdx)
		return nil
	}

	if err := e.bw.WriteString(e.tree.PathToNYT()); err != nil {
		return err
	}

	if err := e.bw.WriteBits(uint64(alphabet.FixedCode(s)), alphabet.FixedCodeBits); err != nil {
		return err
	}

	e.tree.ObserveNew(s)
	return nil
}

// Flush encodes EOF_MARKER and byte-aligns the underlying bit writer.
func (e *AdaptiveEncoder) Flush() error {
	if err := e.EncodeSymbol(alphabet.EOFMarker); err != nil {
		return err
	}

	return e.bw.Flush()
}

// AdaptiveDecoder is the counterpart of AdaptiveEncoder.
type AdaptiveDecoder struct {
	tree *Tree
	br   *bitio.BitReader
}

// NewAdaptiveDecoder returns an AdaptiveDecoder reading through br,
// starting from a fresh Tree.
func NewAdaptiveDecoder(br *bitio.BitReader) *AdaptiveDecoder {
	return &AdaptiveDecoder{tree: NewTree(), br: br}
}

// DecodeSymbol walks the tree from the root, reading one bit per branch,
// until it reaches an existing leaf or the NYT leaf (in which case the
// next 7 bits are a fixed code for a symbol seen for the first time).
// Callers loop until it returns alphabet.EOFMarker. If the underlying
// stream runs out before a complete symbol is decoded, DecodeSymbol
// returns entroerr.ErrCorruptedEncoding — unless the exhaustion happens
// to coincide exactly with decoding EOF_MARKER itself, which is the
// normal end of a well-formed stream.
func (d *AdaptiveDecoder) DecodeSymbol() (alphabet.Symbol, error) {
	missing := false
	cur := d.tree.Root()

	for cur != d.tree.NYT() && !d.tree.IsLeaf(cur) {
		bit, ok := d.br.ReadBit()

		if !ok {
			missing = true
		}

		if bit == 1 {
			cur = d.tree.Left(cur)
		} else {
			cur = d.tree.Right(cur)
		}
	}

	if cur != d.tree.NYT() {
		s := d.tree.SymbolAt(cur)

		if missing && s != alphabet.EOFMarker {
			return alphabet.InvalidSymbol, entroerr.CorruptedEncoding("huffman stream ended before EOF_MARKER")
		}

		d.tree.ObserveExisting(cur)
		return s, nil
	}

	code, got, _ := d.br.ReadBits(alphabet.FixedCodeBits)

	if got < alphabet.FixedCodeBits {
		missing = true
	}

	s := alphabet.FromFixedCode(uint32(code))

	if !s.Valid() {
		return alphabet.InvalidSymbol, entroerr.CorruptedEncoding("invalid fixed code read from NYT escape")
	}

	if missing && s != alphabet.EOFMarker {
		return alphabet.InvalidSymbol, entroerr.CorruptedEncoding("huffman stream ended before EOF_MARKER")
	}

	d.tree.ObserveNew(s)
	return s, nil
}
