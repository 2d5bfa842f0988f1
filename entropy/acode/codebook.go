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

// Package acode implements the arithmetic (range) coding engines: the
// shared cumulative-frequency codebook (static and adaptive) and the
// range encoder/decoder that rides on top of it.
package acode

import (
	"github.com/chronos-tachyon/assert"

	"github.com/entrocodec/entrocodec/alphabet"
)

const (
	// Precision is the range coder's word width in bits.
	Precision = 32

	// MaxFrequency bounds the adaptive codebook's cumulative total and
	// each single symbol frequency of a static codebook; a static
	// codebook's total is not bounded by it.
	MaxFrequency = 1<<16 - 1
)

// Codebook is a cumulative-frequency table over the fixed alphabet. It is
// shared by the static and adaptive arithmetic codecs; the only
// difference between them is whether observe does anything.
type Codebook struct {
	c        [alphabet.Size + 1]uint32
	adaptive bool
}

// NewAdaptiveCodebook returns a codebook seeded with count 1 for every
// symbol, so every symbol is representable from the very first call.
func NewAdaptiveCodebook() *Codebook {
	cb := &Codebook{adaptive: true}

	for i := range cb.c {
		cb.c[i] = uint32(i)
	}

	cb.checkInvariants()
	return cb
}

// NewStaticCodebook builds an immutable codebook from already-counted
// symbol frequencies. Frequencies are capped at MaxFrequency before the
// cumulative sum is built, and every symbol is given at least a floor of
// 1 so CatalogueSymbol never yields an empty interval.
func NewStaticCodebook(freqs [alphabet.Size]uint32) *Codebook {
	cb := &Codebook{adaptive: false}
	sum := uint32(0)

	for i, f := range freqs {
		if f == 0 {
			f = 1
		}

		if f > MaxFrequency {
			f = MaxFrequency
		}

		cb.c[i] = sum
		sum += f
	}

	cb.c[alphabet.Size] = sum
	cb.checkInvariants()
	return cb
}

// Total returns the current sum of all frequencies, C[N].
func (cb *Codebook) Total() uint32 {
	return cb.c[alphabet.Size]
}

// CatalogueSymbol returns the cumulative range [low, high) assigned to s
// and the current total, then — for adaptive codebooks only — records one
// more occurrence of s. The observation happens strictly after the
// returned range is computed, matching ProbabilitySymbolSearch below, so
// encoder and decoder never diverge on when the update takes effect.
func (cb *Codebook) CatalogueSymbol(s alphabet.Symbol) (low, high, total uint32) {
	low, high = cb.c[s], cb.c[s+1]
	total = cb.Total()
	cb.observe(s)
	return low, high, total
}

// ProbabilitySymbolSearch finds the unique symbol whose cumulative range
// contains the scaled value p (0 <= p < Total()), then applies the same
// observation as CatalogueSymbol for that symbol.
func (cb *Codebook) ProbabilitySymbolSearch(p uint32) (s alphabet.Symbol, low, high, total uint32) {
	total = cb.Total()
	i := cb.search(p)
	s = alphabet.Symbol(i)
	low, high = cb.c[i], cb.c[i+1]
	cb.observe(s)
	return s, low, high, total
}

// search returns the largest i such that c[i] <= p.
func (cb *Codebook) search(p uint32) int {
	lo, hi := 0, alphabet.Size-1

	for lo < hi {
		mid := (lo + hi + 1) / 2

		if cb.c[mid] <= p {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	return lo
}

// observe increments the count of s by one, rebalancing every cumulative
// entry above it, unless the codebook is static or the total is already
// at the frequency cap.
func (cb *Codebook) observe(s alphabet.Symbol) {
	if !cb.adaptive {
		return
	}

	if cb.c[alphabet.Size] >= MaxFrequency {
		return
	}

	for j := int(s) + 1; j <= alphabet.Size; j++ {
		cb.c[j]++
	}

	cb.checkInvariants()
}

// checkInvariants asserts the testable properties spec.md §8 requires of
// every cumulative table: C[0] == 0 and C is non-decreasing always, plus
// C[N] == total <= MaxFrequency for the adaptive variant specifically —
// per spec §3.3 that bound is only guaranteed where every increment is
// itself capped at MaxFrequency; a static codebook instead caps each
// symbol's frequency individually (mirroring the original's per-symbol
// min(count, MAX_FREQUENCY)) without normalizing the resulting total, so
// its total can legitimately exceed MaxFrequency for large enough input.
// These can only fail on a logic error in this package, never on
// attacker-controlled input, so they are assertions rather than returned
// errors.
func (cb *Codebook) checkInvariants() {
	assert.Assertf(cb.c[0] == 0, "cumulative table must start at 0, got %d", cb.c[0])

	if cb.adaptive {
		assert.Assertf(cb.c[alphabet.Size] <= MaxFrequency, "cumulative total %d exceeds MaxFrequency %d", cb.c[alphabet.Size], MaxFrequency)
	}

	for i := 1; i <= alphabet.Size; i++ {
		assert.Assertf(cb.c[i] >= cb.c[i-1], "cumulative table not non-decreasing at %d: %d < %d", i, cb.c[i], cb.c[i-1])
	}
}

// CountFrequencies tallies symbol occurrences, capping each at
// MaxFrequency so a NewStaticCodebook built from the result can never
// overflow the 32-bit range coder's precondition.
func CountFrequencies(symbols []alphabet.Symbol) [alphabet.Size]uint32 {
	var freqs [alphabet.Size]uint32

	for _, s := range symbols {
		if freqs[s] < MaxFrequency {
			freqs[s]++
		}
	}

	return freqs
}
