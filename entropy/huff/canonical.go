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
	"sort"

	"github.com/entrocodec/entrocodec/alphabet"
	"github.com/entrocodec/entrocodec/bitio"
	"github.com/entrocodec/entrocodec/entroerr"
)

// MaxCodeLen is the longest canonical code length this package will ever
// emit. Frequencies are renormalized, if necessary, until the tree fits.
const MaxCodeLen = 16

// NumCodeLength is the number of length buckets the static header
// transmits: one count per possible code length, 1..MaxCodeLen.
const NumCodeLength = MaxCodeLen

// codeLengthBits is the width of each length-bucket counter in the
// header: one byte is ample since no bucket can hold more than Size
// symbols.
const codeLengthBits = 8

// code is one symbol's canonical Huffman code.
type code struct {
	length uint8
	bits   uint32
}

// StaticTable is a canonical Huffman codebook built once from a frequency
// table and then held fixed for the duration of one stream.
type StaticTable struct {
	codes    [alphabet.Size]code
	ordered  []alphabet.Symbol // present symbols, grouped by ascending length
	counts   [NumCodeLength]int
	decodeBy map[string]alphabet.Symbol
}

// BuildStaticTable computes the canonical Huffman codes for freqs, using
// the Moffat & Katajainen in-place minimum-redundancy algorithm to get
// code lengths directly from sorted frequencies, renormalizing downward
// (f becomes f/2 + 1 for every present symbol) whenever the result would exceed
// MaxCodeLen — which self-limiting length-limited Huffman schemes must
// guard against even though, at Size == 102, it is only reachable with
// pathologically skewed (near-Fibonacci) input frequencies.
func BuildStaticTable(freqs [alphabet.Size]uint32) (*StaticTable, error) {
	working := freqs

	for attempt := 0; ; attempt++ {
		lengths, maxLen, present := computeLengths(working)

		if len(present) == 0 {
			return nil, entroerr.CorruptedHeader("cannot build a Huffman table with no symbols")
		}

		if maxLen <= MaxCodeLen {
			return assignCanonicalCodes(lengths, present), nil
		}

		if attempt > 32 {
			return nil, entroerr.CorruptedHeader("frequency table would require a code longer than MaxCodeLen even after renormalization")
		}

		working = renormalize(working)
	}
}

// computeLengths runs the two-phase in-place algorithm over the present
// symbols' frequencies, sorted ascending, and returns the resulting code
// length per sorted position alongside the symbols in that order.
func computeLengths(freqs [alphabet.Size]uint32) (lengths []int, maxLen int, present []alphabet.Symbol) {
	for s, f := range freqs {
		if f > 0 {
			present = append(present, alphabet.Symbol(s))
		}
	}

	sort.Slice(present, func(i, j int) bool {
		fi, fj := freqs[present[i]], freqs[present[j]]

		if fi != fj {
			return fi < fj
		}

		return present[i] < present[j]
	})

	n := len(present)

	if n == 0 {
		return nil, 0, nil
	}

	if n == 1 {
		return []int{1}, 1, present
	}

	counts := make([]int, n)

	for i, s := range present {
		counts[i] = int(freqs[s])
	}

	computeInPlaceSizesPhase1(counts)
	maxLen = computeInPlaceSizesPhase2(counts)
	return counts, maxLen, present
}

// computeInPlaceSizesPhase1 overwrites the ascending-sorted leaf counts
// in place with parent-pointer-style subtree weights, using only O(1)
// extra space. It assumes len(a) >= 2. This is the Moffat & Katajainen
// in-place minimum-redundancy construction.
func computeInPlaceSizesPhase1(a []int) {
	n := len(a)
	a[0] += a[1]
	root := 0
	leaf := 2

	for next := 1; next < n-1; next++ {
		if leaf >= n || a[root] < a[leaf] {
			a[next] = a[root]
			a[root] = next
			root++
		} else {
			a[next] = a[leaf]
			leaf++
		}

		if leaf >= n || (root < next && a[root] < a[leaf]) {
			a[next] += a[root]
			a[root] = next
			root++
		} else {
			a[next] += a[leaf]
			leaf++
		}
	}
}

// computeInPlaceSizesPhase2 converts the phase-1 parent-pointer-style
// array into per-leaf code lengths in place, returning the maximum length
// produced. It assumes len(a) >= 2.
func computeInPlaceSizesPhase2(a []int) int {
	n := len(a)
	a[n-2] = 0

	for next := n - 3; next >= 0; next-- {
		a[next] = a[a[next]] + 1
	}

	available := 1
	used := 0
	depth := 0
	root := n - 2
	next := n - 1

	for available > 0 {
		for root >= 0 && a[root] == depth {
			used++
			root--
		}

		for available > used {
			a[next] = depth
			next--
			available--
		}

		available = 2 * used
		depth++
		used = 0
	}

	maxLen := 0

	for _, l := range a {
		if l > maxLen {
			maxLen = l
		}
	}

	return maxLen
}

// assignCanonicalCodes turns per-symbol lengths into canonical codes:
// symbols are ordered by (length, symbol value) ascending, the first code
// is all zero bits, and each subsequent code is the previous plus one,
// shifted left whenever the length increases.
func assignCanonicalCodes(lengths []int, symbols []alphabet.Symbol) *StaticTable {
	type entry struct {
		symbol alphabet.Symbol
		length int
	}

	entries := make([]entry, len(symbols))

	for i, s := range symbols {
		entries[i] = entry{symbol: s, length: lengths[i]}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].length != entries[j].length {
			return entries[i].length < entries[j].length
		}

		return entries[i].symbol < entries[j].symbol
	})

	t := &StaticTable{decodeBy: make(map[string]alphabet.Symbol, len(entries))}

	var bits uint32
	prevLen := 0

	for _, e := range entries {
		if prevLen != 0 {
			bits <<= uint(e.length - prevLen)
		}

		t.codes[e.symbol] = code{length: uint8(e.length), bits: bits}
		t.ordered = append(t.ordered, e.symbol)
		t.counts[e.length-1]++
		t.decodeBy[bitString(bits, e.length)] = e.symbol

		bits++
		prevLen = e.length
	}

	return t
}

func bitString(bits uint32, length int) string {
	out := make([]byte, length)

	for i := length - 1; i >= 0; i-- {
		if bits&1 == 1 {
			out[i] = '1'
		} else {
			out[i] = '0'
		}

		bits >>= 1
	}

	return string(out)
}

// renormalize maps every non-zero frequency f to f/2 + 1 (absent symbols
// stay at zero, present ones never drop below 1) so a retried
// computeLengths pass sees a flatter distribution and a shorter longest
// code.
func renormalize(freqs [alphabet.Size]uint32) [alphabet.Size]uint32 {
	var out [alphabet.Size]uint32

	for i, f := range freqs {
		if f == 0 {
			out[i] = 0
			continue
		}

		out[i] = f/2 + 1
	}

	return out
}

// WriteHeader serializes the table per the static Huffman wire layout:
// SOF_MARKER's fixed code, NumCodeLength one-byte length-bucket counts,
// then the present symbols in canonical order as fixed codes.
func (t *StaticTable) WriteHeader(bw *bitio.BitWriter) error {
	if err := bw.WriteBits(uint64(alphabet.FixedCode(alphabet.SOFMarker)), alphabet.FixedCodeBits); err != nil {
		return err
	}

	for _, c := range t.counts {
		if err := bw.WriteBits(uint64(c), codeLengthBits); err != nil {
			return err
		}
	}

	for _, s := range t.ordered {
		if err := bw.WriteBits(uint64(alphabet.FixedCode(s)), alphabet.FixedCodeBits); err != nil {
			return err
		}
	}

	return nil
}

// ReadStaticTable parses a header written by WriteHeader and reconstructs
// the canonical codes it describes.
func ReadStaticTable(br *bitio.BitReader) (*StaticTable, error) {
	sof, got, _ := br.ReadBits(alphabet.FixedCodeBits)

	if got < alphabet.FixedCodeBits || alphabet.FromFixedCode(uint32(sof)) != alphabet.SOFMarker {
		return nil, entroerr.CorruptedEncoding("missing SOF_MARKER at start of static Huffman header")
	}

	var counts [NumCodeLength]int
	total := 0

	for i := range counts {
		v, got, _ := br.ReadBits(codeLengthBits)

		if got < codeLengthBits {
			return nil, entroerr.CorruptedHeader("truncated code-length table")
		}

		counts[i] = int(v)
		total += counts[i]
	}

	if total == 0 || total > alphabet.Size {
		return nil, entroerr.CorruptedHeader("code-length table describes an invalid symbol count")
	}

	lengths := make([]int, 0, total)
	symbols := make([]alphabet.Symbol, 0, total)

	for length, count := range counts {
		for i := 0; i < count; i++ {
			code, got, _ := br.ReadBits(alphabet.FixedCodeBits)

			if got < alphabet.FixedCodeBits {
				return nil, entroerr.CorruptedHeader("truncated symbol table")
			}

			s := alphabet.FromFixedCode(uint32(code))

			if !s.Valid() {
				return nil, entroerr.CorruptedHeader("header names a symbol outside the alphabet")
			}

			lengths = append(lengths, length+1)
			symbols = append(symbols, s)
		}
	}

	return assignCanonicalCodes(lengths, symbols), nil
}

// Lookup returns s's canonical code, if s occurs in the table.
func (t *StaticTable) Lookup(s alphabet.Symbol) (bits uint32, length int, ok bool) {
	c := t.codes[s]

	if c.length == 0 {
		return 0, 0, false
	}

	return c.bits, int(c.length), true
}

// Decode finds the symbol named by a bit string read one bit at a time;
// callers grow prefix until it names a symbol or exceeds MaxCodeLen.
func (t *StaticTable) Decode(prefix string) (alphabet.Symbol, bool) {
	s, ok := t.decodeBy[prefix]
	return s, ok
}
