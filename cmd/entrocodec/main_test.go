package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunCompressDecompressRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	enc := filepath.Join(dir, "enc.bin")
	out := filepath.Join(dir, "out.txt")

	want := "The quick brown fox jumps over the lazy dog."

	if err := os.WriteFile(in, []byte(want), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	args := []string{"entrocodec", "-c", "-a", "huffman-adaptive", "-i", in, "-o", enc, "-v", "0"}

	if code := run(args); code != 0 {
		t.Fatalf("compress run() = %d, want 0", code)
	}

	args = []string{"entrocodec", "-d", "-a", "huffman-adaptive", "-i", enc, "-o", out, "-v", "0"}

	if code := run(args); code != 0 {
		t.Fatalf("decompress run() = %d, want 0", code)
	}

	got, err := os.ReadFile(out)

	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if string(got) != want {
		t.Fatalf("round trip = %q, want %q", got, want)
	}
}

func TestRunMissingModeIsInvalidParam(t *testing.T) {
	if code := run([]string{"entrocodec", "-a", "huffman-static", "-i", "-", "-o", "-"}); code != _ERR_INVALID_PARAM {
		t.Fatalf("run() = %d, want %d", code, _ERR_INVALID_PARAM)
	}
}

func TestRunBothModesIsInvalidParam(t *testing.T) {
	if code := run([]string{"entrocodec", "-c", "-d", "-a", "huffman-static"}); code != _ERR_INVALID_PARAM {
		t.Fatalf("run() = %d, want %d", code, _ERR_INVALID_PARAM)
	}
}

func TestRunUnknownAlgorithmIsInvalidParam(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")

	if err := os.WriteFile(in, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	args := []string{"entrocodec", "-c", "-a", "no-such-algorithm", "-i", in, "-o", filepath.Join(dir, "out.bin")}

	if code := run(args); code != _ERR_INVALID_PARAM {
		t.Fatalf("run() = %d, want %d", code, _ERR_INVALID_PARAM)
	}
}

func TestRunEqualsFormAlgorithmFlag(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	enc := filepath.Join(dir, "enc.bin")

	if err := os.WriteFile(in, []byte("abc"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	args := []string{"entrocodec", "--compress", "--algorithm=arith-static", "--input=" + in, "--output=" + enc}

	if code := run(args); code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
}
