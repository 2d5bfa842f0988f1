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
)

// NewStaticEncoder writes freqs as a header to bw, then returns an
// Encoder built from the resulting codebook.
func NewStaticEncoder(freqs [alphabet.Size]uint32, bw *bitio.BitWriter) (*Encoder, error) {
	if err := WriteStaticHeader(freqs, bw); err != nil {
		return nil, err
	}

	return NewEncoder(NewStaticCodebook(freqs), bw), nil
}

// NewStaticDecoder reads a header from br, then returns a Decoder built
// from the resulting codebook.
func NewStaticDecoder(br *bitio.BitReader) (*Decoder, error) {
	freqs, err := ReadStaticHeader(br)

	if err != nil {
		return nil, err
	}

	return NewDecoder(NewStaticCodebook(freqs), br), nil
}
