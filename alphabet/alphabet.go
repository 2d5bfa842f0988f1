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

// Package alphabet defines the fixed 102-symbol alphabet shared by every
// codec in this module: the 100 printable/whitespace ASCII bytes plus the
// two reserved sentinels SOF_MARKER and EOF_MARKER.
package alphabet

import (
	"fmt"
	"math/bits"
)

// Symbol identifies one member of the fixed alphabet by its position.
// Negative values are not valid; InvalidSymbol is returned where no
// symbol applies.
type Symbol int16

// InvalidSymbol is returned by lookups that find no matching symbol.
const InvalidSymbol = Symbol(-1)

// Size is the cardinality of the alphabet: 100 text bytes plus the two
// reserved sentinels.
const Size = 102

// FixedCodeBits is F = ceil(log2(Size)), the width of the fixed code used
// to introduce unseen symbols in adaptive Huffman and to serialize
// symbols in every static header.
const FixedCodeBits = 7

func init() {
	if want := uint(bits.Len(uint(Size - 1))); want != FixedCodeBits {
		panic(fmt.Sprintf("alphabet: FixedCodeBits must be %d for Size %d, got %d", want, Size, FixedCodeBits))
	}
}

// bytesTable holds the raw byte value for every alphabet position, in
// ascending order: the five ASCII whitespace control bytes (tab through
// carriage return), the SOF_MARKER sentinel, the 95 printable bytes from
// space to tilde, then the EOF_MARKER sentinel.
var bytesTable = buildBytesTable()

// byteToSymbol maps a raw byte to its Symbol, or InvalidSymbol if the
// byte is not a member of the alphabet.
var byteToSymbol [256]Symbol

// SOFMarker is the Symbol for the start-of-frame sentinel, raw byte 0x0F.
var SOFMarker Symbol

// EOFMarker is the Symbol for the end-of-frame sentinel, raw byte 0xFF.
var EOFMarker Symbol

const (
	sofByte = 0x0F
	eofByte = 0xFF
)

func buildBytesTable() [Size]byte {
	var out [Size]byte
	n := 0

	for _, b := range []byte{0x09, 0x0A, 0x0B, 0x0C, 0x0D} {
		out[n] = b
		n++
	}

	out[n] = sofByte
	n++

	for b := byte(0x20); b <= 0x7E; b++ {
		out[n] = b
		n++
	}

	out[n] = eofByte
	n++

	if n != Size {
		panic(fmt.Sprintf("alphabet: built %d symbols, want %d", n, Size))
	}

	return out
}

func init() {
	for i := range byteToSymbol {
		byteToSymbol[i] = InvalidSymbol
	}

	for i, b := range bytesTable {
		byteToSymbol[b] = Symbol(i)
	}

	SOFMarker = byteToSymbol[sofByte]
	EOFMarker = byteToSymbol[eofByte]
}

// Valid reports whether s is a member of the alphabet.
func (s Symbol) Valid() bool {
	return s >= 0 && int(s) < Size
}

// Byte returns the raw byte this symbol represents.
func (s Symbol) Byte() byte {
	return bytesTable[s]
}

// String implements fmt.Stringer.
func (s Symbol) String() string {
	if !s.Valid() {
		return "<invalid>"
	}

	switch s {
	case SOFMarker:
		return "<SOF>"
	case EOFMarker:
		return "<EOF>"
	default:
		return fmt.Sprintf("%q", rune(s.Byte()))
	}
}

// FromByte returns the Symbol for a raw byte, or InvalidSymbol and false
// if the byte is not in the alphabet.
func FromByte(b byte) (Symbol, bool) {
	s := byteToSymbol[b]
	return s, s != InvalidSymbol
}

// FixedCode returns the FixedCodeBits-wide code for s, used for NYT
// escapes in adaptive Huffman and for symbol serialization in headers.
func FixedCode(s Symbol) uint32 {
	return uint32(s)
}

// FromFixedCode is the inverse of FixedCode; it returns InvalidSymbol if
// code does not name a member of the alphabet.
func FromFixedCode(code uint32) Symbol {
	if code >= Size {
		return InvalidSymbol
	}

	return Symbol(code)
}
