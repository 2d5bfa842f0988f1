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

// Package bench times Dump/Load for each of the four codec algorithms
// over a corpus of byte slices and reports compression ratio and
// throughput, mirroring the original per-algorithm benchmark loop that
// timed encode/decode around a single file for each coding scheme in
// turn.
package bench

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/entrocodec/entrocodec/codec"
)

// Result is one (algorithm, corpus entry) measurement.
type Result struct {
	Algorithm      string
	Name           string
	OriginalBytes  int
	EncodedBytes   int
	Ratio          float64
	EncodeDuration time.Duration
	DecodeDuration time.Duration
}

// Entry names one corpus item handed to Run.
type Entry struct {
	Name string
	Data []byte
}

// Run encodes and decodes every entry in corpus with every named
// algorithm, verifying the round trip and collecting one Result per
// (algorithm, entry) pair. Algorithms default to all four known to
// package codec when algorithms is empty. A round-trip mismatch or a
// Dump/Load failure is reported as an error rather than aborting the
// remaining measurements, so one bad entry doesn't blank the report.
func Run(algorithms []string, corpus []Entry) ([]Result, error) {
	if len(algorithms) == 0 {
		algorithms = []string{
			codec.HuffmanStatic,
			codec.HuffmanAdaptive,
			codec.ArithmeticStatic,
			codec.ArithmeticAdaptive,
		}
	}

	var results []Result
	var errs []error

	for _, alg := range algorithms {
		for _, entry := range corpus {
			r, err := runOne(alg, entry)

			if err != nil {
				errs = append(errs, fmt.Errorf("%s/%s: %w", alg, entry.Name, err))
				continue
			}

			results = append(results, r)
		}
	}

	return results, errors.Join(errs...)
}

func runOne(algorithm string, entry Entry) (Result, error) {
	var encoded bytes.Buffer

	startEncode := time.Now()

	if err := codec.Dump(algorithm, bytes.NewReader(entry.Data), &encoded); err != nil {
		return Result{}, err
	}

	encodeDuration := time.Since(startEncode)

	var decoded bytes.Buffer

	startDecode := time.Now()

	if err := codec.Load(algorithm, bytes.NewReader(encoded.Bytes()), &decoded); err != nil {
		return Result{}, err
	}

	decodeDuration := time.Since(startDecode)

	if !bytes.Equal(decoded.Bytes(), entry.Data) {
		return Result{}, fmt.Errorf("decoded output does not match original input")
	}

	ratio := 0.0

	if encoded.Len() > 0 {
		ratio = float64(len(entry.Data)) / float64(encoded.Len())
	}

	return Result{
		Algorithm:      algorithm,
		Name:           entry.Name,
		OriginalBytes:  len(entry.Data),
		EncodedBytes:   encoded.Len(),
		Ratio:          ratio,
		EncodeDuration: encodeDuration,
		DecodeDuration: decodeDuration,
	}, nil
}

// Report renders results as the one-line-per-measurement summary the
// original benchmark script printed after each algorithm/file pass.
func Report(results []Result) string {
	var sb []byte

	for _, r := range results {
		sb = append(sb, fmt.Sprintf(
			"[%s] %s: %d -> %d bytes (ratio %.3f) encode %s decode %s\n",
			r.Algorithm, r.Name, r.OriginalBytes, r.EncodedBytes, r.Ratio, r.EncodeDuration, r.DecodeDuration,
		)...)
	}

	return string(sb)
}
