package acode

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/entrocodec/entrocodec/alphabet"
	"github.com/entrocodec/entrocodec/bitio"
)

func encodeAll(t *testing.T, cb *Codebook, symbols []alphabet.Symbol) []byte {
	t.Helper()
	var buf bytes.Buffer
	bw := bitio.NewBitWriter(&buf)
	enc := NewEncoder(cb, bw)

	for _, s := range symbols {
		if err := enc.EncodeSymbol(s); err != nil {
			t.Fatalf("EncodeSymbol: %v", err)
		}
	}

	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	return buf.Bytes()
}

func decodeAll(t *testing.T, cb *Codebook, data []byte) []alphabet.Symbol {
	t.Helper()
	br := bitio.NewBitReader(bytes.NewReader(data))
	dec := NewDecoder(cb, br)
	var out []alphabet.Symbol

	for {
		s, err := dec.DecodeSymbol()

		if err != nil {
			t.Fatalf("DecodeSymbol: %v", err)
		}

		if s == alphabet.EOFMarker {
			break
		}

		out = append(out, s)
	}

	return out
}

func textSymbols(t *testing.T, s string) []alphabet.Symbol {
	t.Helper()
	out := make([]alphabet.Symbol, len(s))

	for i := 0; i < len(s); i++ {
		sym, ok := alphabet.FromByte(s[i])

		if !ok {
			t.Fatalf("byte %q not in alphabet", s[i])
		}

		out[i] = sym
	}

	return out
}

func TestAdaptiveRoundTripEmpty(t *testing.T) {
	encCb := NewAdaptiveCodebook()
	data := encodeAll(t, encCb, nil)

	decCb := NewAdaptiveCodebook()
	got := decodeAll(t, decCb, data)

	if len(got) != 0 {
		t.Fatalf("got %d symbols, want 0", len(got))
	}
}

func TestAdaptiveRoundTripText(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog, 42 times!"
	symbols := textSymbols(t, text)

	encCb := NewAdaptiveCodebook()
	data := encodeAll(t, encCb, symbols)

	decCb := NewAdaptiveCodebook()
	got := decodeAll(t, decCb, data)

	if len(got) != len(symbols) {
		t.Fatalf("decoded %d symbols, want %d", len(got), len(symbols))
	}

	for i := range symbols {
		if got[i] != symbols[i] {
			t.Fatalf("symbol %d: got %v, want %v", i, got[i], symbols[i])
		}
	}
}

func TestAdaptiveRoundTripRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	symbols := make([]alphabet.Symbol, 2000)

	for i := range symbols {
		// Exclude EOF_MARKER from the body; it is the terminator.
		symbols[i] = alphabet.Symbol(rnd.Intn(alphabet.Size - 1))
	}

	encCb := NewAdaptiveCodebook()
	data := encodeAll(t, encCb, symbols)

	decCb := NewAdaptiveCodebook()
	got := decodeAll(t, decCb, data)

	if len(got) != len(symbols) {
		t.Fatalf("decoded %d symbols, want %d", len(got), len(symbols))
	}

	for i := range symbols {
		if got[i] != symbols[i] {
			t.Fatalf("symbol %d: got %v, want %v", i, got[i], symbols[i])
		}
	}
}

func TestAlternatingPatternCompressesWell(t *testing.T) {
	symbols := make([]alphabet.Symbol, 1000)
	a, _ := alphabet.FromByte('A')
	b, _ := alphabet.FromByte('B')

	for i := range symbols {
		if i%2 == 0 {
			symbols[i] = a
		} else {
			symbols[i] = b
		}
	}

	encCb := NewAdaptiveCodebook()
	data := encodeAll(t, encCb, symbols)

	if ratio := float64(len(symbols)) / float64(len(data)); ratio <= 4 {
		t.Fatalf("compression ratio = %.2f, want > 4", ratio)
	}

	decCb := NewAdaptiveCodebook()
	got := decodeAll(t, decCb, data)

	if len(got) != len(symbols) {
		t.Fatalf("decoded %d symbols, want %d", len(got), len(symbols))
	}
}

func TestStaticRoundTrip(t *testing.T) {
	text := "mississippi river"
	symbols := textSymbols(t, text)
	freqs := CountFrequencies(append(append([]alphabet.Symbol{}, symbols...), alphabet.EOFMarker))

	encCb := NewStaticCodebook(freqs)
	data := encodeAll(t, encCb, symbols)

	decCb := NewStaticCodebook(freqs)
	got := decodeAll(t, decCb, data)

	if len(got) != len(symbols) {
		t.Fatalf("decoded %d symbols, want %d", len(got), len(symbols))
	}

	for i := range symbols {
		if got[i] != symbols[i] {
			t.Fatalf("symbol %d: got %v, want %v", i, got[i], symbols[i])
		}
	}
}

func TestCorruptedStreamWithoutEOFMarker(t *testing.T) {
	// A handful of zero bytes never encode EOF_MARKER under a fresh
	// adaptive codebook; the decoder must detect the missing terminator
	// rather than loop forever.
	cb := NewAdaptiveCodebook()
	br := bitio.NewBitReader(bytes.NewReader(make([]byte, 8)))
	dec := NewDecoder(cb, br)

	for i := 0; i < 100000; i++ {
		s, err := dec.DecodeSymbol()

		if err != nil {
			return
		}

		if s == alphabet.EOFMarker {
			t.Fatal("unexpectedly decoded EOF_MARKER from all-zero input")
		}
	}

	t.Fatal("decoder did not report corruption within a bounded number of symbols")
}

func TestCumulativeMonotonicityAfterManyUpdates(t *testing.T) {
	cb := NewAdaptiveCodebook()
	rnd := rand.New(rand.NewSource(1))

	for i := 0; i < 5000; i++ {
		s := alphabet.Symbol(rnd.Intn(alphabet.Size))
		cb.CatalogueSymbol(s)

		if cb.c[0] != 0 {
			t.Fatalf("C[0] = %d, want 0", cb.c[0])
		}

		if cb.c[alphabet.Size] > MaxFrequency {
			t.Fatalf("total %d exceeds MaxFrequency %d", cb.c[alphabet.Size], MaxFrequency)
		}

		for j := 1; j <= alphabet.Size; j++ {
			if cb.c[j] < cb.c[j-1] {
				t.Fatalf("cumulative table not non-decreasing at %d after %d updates", j, i)
			}
		}
	}
}
