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

// StaticEncoder writes a header describing table once, then the
// canonical code for each symbol.
type StaticEncoder struct {
	table *StaticTable
	bw    *bitio.BitWriter
}

// NewStaticEncoder writes table's header to bw and returns an encoder
// ready to accept symbols.
func NewStaticEncoder(table *StaticTable, bw *bitio.BitWriter) (*StaticEncoder, error) {
	if err := table.WriteHeader(bw); err != nil {
		return nil, err
	}

	return &StaticEncoder{table: table, bw: bw}, nil
}

// EncodeSymbol emits s's canonical code. s must occur in the table the
// encoder was built from — every stream's own EOF_MARKER occurrence
// guarantees this for the symbols that actually need encoding, since the
// frequency table used to build the header is computed over the whole
// stream, EOF_MARKER included.
func (e *StaticEncoder) EncodeSymbol(s alphabet.Symbol) error {
	bits, length, ok := e.table.Lookup(s)

	if !ok {
		return entroerr.CorruptedHeader("symbol not present in static Huffman table")
	}

	return e.bw.WriteBits(uint64(bits), length)
}

// Flush encodes EOF_MARKER and byte-aligns the underlying bit writer.
func (e *StaticEncoder) Flush() error {
	if err := e.EncodeSymbol(alphabet.EOFMarker); err != nil {
		return err
	}

	return e.bw.Flush()
}

// StaticDecoder reads a header once, then decodes symbols against the
// resulting canonical table.
type StaticDecoder struct {
	table *StaticTable
	br    *bitio.BitReader
}

// NewStaticDecoder reads the header from br and returns a decoder ready
// to decode symbols.
func NewStaticDecoder(br *bitio.BitReader) (*StaticDecoder, error) {
	table, err := ReadStaticTable(br)

	if err != nil {
		return nil, err
	}

	return &StaticDecoder{table: table, br: br}, nil
}

// DecodeSymbol reads one bit at a time until the accumulated prefix names
// a symbol in the table. Callers loop until it returns alphabet.EOFMarker.
func (d *StaticDecoder) DecodeSymbol() (alphabet.Symbol, error) {
	prefix := make([]byte, 0, MaxCodeLen)

	for len(prefix) <= MaxCodeLen {
		bit, ok := d.br.ReadBit()

		if !ok {
			return alphabet.InvalidSymbol, entroerr.CorruptedEncoding("static huffman stream ended before EOF_MARKER")
		}

		if bit == 0 {
			prefix = append(prefix, '0')
		} else {
			prefix = append(prefix, '1')
		}

		if s, ok := d.table.Decode(string(prefix)); ok {
			return s, nil
		}
	}

	return alphabet.InvalidSymbol, entroerr.CorruptedEncoding("no code in the static Huffman table matched the bit stream")
}
