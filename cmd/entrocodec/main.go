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

// entrocodec is the command-line front end for the codec package: it
// compresses or decompresses a single file with one of the four
// algorithms, reading the hand-rolled argument vector the way kanzi's
// CLI does rather than through the flag package.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/entrocodec/entrocodec/codec"
	"github.com/entrocodec/entrocodec/entrolog"
)

const (
	_ARG_COMPRESS   = "--compress"
	_ARG_DECOMPRESS = "--decompress"
	_ARG_ALGORITHM  = "--algorithm="
	_ARG_INPUT      = "--input="
	_ARG_OUTPUT     = "--output="
	_ARG_VERBOSE    = "--verbose="

	_ERR_INVALID_PARAM = 1
	_ERR_OPEN_INPUT    = 2
	_ERR_CREATE_OUTPUT = 3
	_ERR_PROCESSING    = 4
)

var algorithmsByName = map[string]string{
	"huffman-static":   codec.HuffmanStatic,
	"huffman-adaptive": codec.HuffmanAdaptive,
	"arith-static":     codec.ArithmeticStatic,
	"arith-adaptive":   codec.ArithmeticAdaptive,
}

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	mode := ""
	algorithm := ""
	inputName := ""
	outputName := ""
	verbosity := uint64(1)

	ctx := ""

	for i, arg := range args {
		if i == 0 {
			continue
		}

		arg = strings.TrimSpace(arg)

		if strings.HasPrefix(arg, _ARG_INPUT) || arg == "-i" {
			if strings.HasPrefix(arg, _ARG_INPUT) {
				inputName = arg[len(_ARG_INPUT):]
				continue
			}

			ctx = "input"
			continue
		}

		if strings.HasPrefix(arg, _ARG_OUTPUT) || arg == "-o" {
			if strings.HasPrefix(arg, _ARG_OUTPUT) {
				outputName = arg[len(_ARG_OUTPUT):]
				continue
			}

			ctx = "output"
			continue
		}

		if strings.HasPrefix(arg, _ARG_ALGORITHM) || arg == "-a" {
			if strings.HasPrefix(arg, _ARG_ALGORITHM) {
				algorithm = arg[len(_ARG_ALGORITHM):]
				continue
			}

			ctx = "algorithm"
			continue
		}

		if strings.HasPrefix(arg, _ARG_VERBOSE) || arg == "-v" {
			if strings.HasPrefix(arg, _ARG_VERBOSE) {
				v, err := strconv.ParseUint(arg[len(_ARG_VERBOSE):], 10, 8)

				if err != nil {
					fmt.Fprintf(os.Stderr, "invalid verbosity level: %s\n", arg)
					return _ERR_INVALID_PARAM
				}

				verbosity = v
				continue
			}

			ctx = "verbose"
			continue
		}

		if arg == _ARG_COMPRESS || arg == "-c" {
			if mode == "d" {
				fmt.Fprintln(os.Stderr, "both -c and -d were given")
				return _ERR_INVALID_PARAM
			}

			mode = "c"
			continue
		}

		if arg == _ARG_DECOMPRESS || arg == "-d" {
			if mode == "c" {
				fmt.Fprintln(os.Stderr, "both -c and -d were given")
				return _ERR_INVALID_PARAM
			}

			mode = "d"
			continue
		}

		if arg == "-h" || arg == "--help" {
			printUsage()
			return 0
		}

		// A bare value following a short flag that wants one.
		switch ctx {
		case "input":
			inputName = arg
		case "output":
			outputName = arg
		case "algorithm":
			algorithm = arg
		case "verbose":
			v, err := strconv.ParseUint(arg, 10, 8)

			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid verbosity level: %s\n", arg)
				return _ERR_INVALID_PARAM
			}

			verbosity = v
		default:
			fmt.Fprintf(os.Stderr, "unrecognized argument: %s\n", arg)
			return _ERR_INVALID_PARAM
		}

		ctx = ""
	}

	if mode != "c" && mode != "d" {
		printUsage()
		return _ERR_INVALID_PARAM
	}

	alg, ok := algorithmsByName[algorithm]

	if !ok {
		fmt.Fprintf(os.Stderr, "unknown or missing algorithm: %q (want one of huffman-static, huffman-adaptive, arith-static, arith-adaptive)\n", algorithm)
		return _ERR_INVALID_PARAM
	}

	log := entrolog.New(os.Stderr, entrolog.Level(verbosity))

	in, closeIn, err := openInput(inputName)

	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open input: %v\n", err)
		return _ERR_OPEN_INPUT
	}

	defer closeIn()

	out, closeOut, err := createOutput(outputName)

	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output: %v\n", err)
		return _ERR_CREATE_OUTPUT
	}

	defer closeOut()

	bufOut := bufio.NewWriter(out)

	op := "dump"
	start := time.Now()
	var opErr error

	if mode == "c" {
		log.Infof("compressing %s -> %s (%s)", displayName(inputName), displayName(outputName), algorithm)
		opErr = codec.Dump(alg, in, bufOut)
	} else {
		op = "load"
		log.Infof("decompressing %s -> %s (%s)", displayName(inputName), displayName(outputName), algorithm)
		opErr = codec.Load(alg, in, bufOut)
	}

	if opErr != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", op, opErr)
		return _ERR_PROCESSING
	}

	if err := bufOut.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to flush output: %v\n", err)
		return _ERR_PROCESSING
	}

	inBytes, outBytes := sizeOf(inputName), sizeOf(outputName)
	log.LogResult(op, entrolog.Result{
		Algorithm:   algorithm,
		InputBytes:  inBytes,
		OutputBytes: outBytes,
		Elapsed:     time.Since(start),
	})

	return 0
}

func displayName(name string) string {
	if name == "" || name == "-" {
		return "<stdio>"
	}

	return name
}

func openInput(name string) (*os.File, func(), error) {
	if name == "" || name == "-" {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(name)

	if err != nil {
		return nil, nil, err
	}

	return f, func() { f.Close() }, nil
}

func createOutput(name string) (*os.File, func(), error) {
	if name == "" || name == "-" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(name)

	if err != nil {
		return nil, nil, err
	}

	return f, func() { f.Close() }, nil
}

func sizeOf(name string) int64 {
	if name == "" || name == "-" {
		return 0
	}

	fi, err := os.Stat(name)

	if err != nil {
		return 0
	}

	return fi.Size()
}

func printUsage() {
	fmt.Println("entrocodec - entropy-code a byte stream")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  entrocodec -c -a <algorithm> -i <input> -o <output> [-v <0-2>]")
	fmt.Println("  entrocodec -d -a <algorithm> -i <input> -o <output> [-v <0-2>]")
	fmt.Println()
	fmt.Println("Algorithms: huffman-static, huffman-adaptive, arith-static, arith-adaptive")
	fmt.Println("Use - for <input>/<output> to read/write stdin/stdout.")
}
