package diffx

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestDecode_CompressedRoundTrip(t *testing.T) {
	comps := []Compression{CompNone, CompGzip, CompZstd, CompLZ4, CompBrotli}
	want := mustParse(t, sampleInput())
	for _, comp := range comps {
		t.Run(comp.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, want, WithCompression(comp)); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			var opts []ReadOption
			if comp == CompBrotli {
				// No magic bytes; must be selected explicitly.
				opts = append(opts, WithReadCompression(CompBrotli))
			}
			got, err := Decode(bytes.NewReader(buf.Bytes()), opts...)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(want, got) {
				t.Fatalf("round-trip mismatch for %s", comp)
			}
		})
	}
}

func TestDetectCompression(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want Compression
	}{
		{"plain document", []byte("#diffx:\n"), CompNone},
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, CompGzip},
		{"zstd", []byte{0x28, 0xb5, 0x2f, 0xfd, 0x00}, CompZstd},
		{"lz4", []byte{0x04, 0x22, 0x4d, 0x18, 0x00}, CompLZ4},
		{"empty", nil, CompNone},
		{"short", []byte{0x1f}, CompNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := detectCompression(tc.in); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDecode_ForcedNoneSkipsDetection(t *testing.T) {
	doc := mustParse(t, sampleInput())
	var buf bytes.Buffer
	if err := Encode(&buf, doc, WithCompression(CompGzip)); err != nil {
		t.Fatal(err)
	}
	// Forcing CompNone hands the gzip frame straight to the parser, which
	// must reject it at offset 0.
	_, err := Decode(bytes.NewReader(buf.Bytes()), WithReadCompression(CompNone))
	if !errors.Is(err, ErrMissingSeparator) {
		t.Fatalf("expected ErrMissingSeparator, got %v", err)
	}
}

func TestDecode_DecompressionBombLimited(t *testing.T) {
	// A large but highly compressible document.
	doc := &Document{
		Title: "big",
		Root: &Section{
			Encoding: EncodingBinary,
			Content:  RawData(bytes.Repeat([]byte{'a'}, 1<<16)),
		},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, doc, WithCompression(CompZstd)); err != nil {
		t.Fatal(err)
	}
	_, err := Decode(bytes.NewReader(buf.Bytes()), WithReadLimits(Limits{MaxUncompressedLen: 1 << 10}))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestDecode_CorruptCompressedStream(t *testing.T) {
	corrupt := append([]byte{}, magicZstd...)
	corrupt = append(corrupt, 0xde, 0xad)
	if _, err := Decode(bytes.NewReader(corrupt)); err == nil {
		t.Fatal("expected error")
	}
}
