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

package entropy

import (
	"bytes"
	"math/rand"
	"testing"
)

func roundTrip(t *testing.T, in []byte) []byte {
	t.Helper()

	need := Encode(nil, in)
	enc := make([]byte, need)
	got := Encode(enc, in)

	if got != need {
		t.Fatalf("sizing idempotence: dry run reported %d, real call reported %d", need, got)
	}

	needOut := Decode(nil, enc)
	out := make([]byte, needOut)
	gotOut := Decode(out, enc)

	if gotOut != needOut {
		t.Fatalf("sizing idempotence (decode): dry run reported %d, real call reported %d", needOut, gotOut)
	}

	return out
}

func TestEncodeEmpty(t *testing.T) {
	if n := Encode(nil, nil); n != 0 {
		t.Fatalf("Encode(\"\") = %d, want 0", n)
	}

	if n := Encode(make([]byte, 16), []byte{}); n != 0 {
		t.Fatalf("Encode(\"\") = %d, want 0", n)
	}
}

func TestEncodeSingleByte(t *testing.T) {
	in := []byte{0x41}
	want := []byte{0x01, 0x01, 0x01, 0x41}

	enc := make([]byte, Encode(nil, in))
	Encode(enc, in)

	if !bytes.Equal(enc, want) {
		t.Fatalf("Encode(%q) = % x, want % x", in, enc, want)
	}

	out := roundTrip(t, in)

	if !bytes.Equal(out, in) {
		t.Fatalf("round trip = %q, want %q", out, in)
	}
}

func TestEncodeRunLength(t *testing.T) {
	in := bytes.Repeat([]byte{0x41}, 8)
	want := []byte{0x01, 0x08, 0x01, 0x41}

	enc := make([]byte, Encode(nil, in))
	Encode(enc, in)

	if !bytes.Equal(enc, want) {
		t.Fatalf("Encode(%q) = % x, want % x", in, enc, want)
	}

	out := roundTrip(t, in)

	if !bytes.Equal(out, in) {
		t.Fatalf("round trip = %q, want %q", out, in)
	}
}

func TestEncodeAllDistinctOctetsFallsBackToRaw(t *testing.T) {
	in := make([]byte, 256)

	for i := range in {
		in[i] = byte(i)
	}

	want := append([]byte{0x02, 0x01, 0x00, 0x00}, in...)

	enc := make([]byte, Encode(nil, in))
	Encode(enc, in)

	if !bytes.Equal(enc, want) {
		t.Fatalf("Encode(256 distinct octets) = % x, want % x", enc, want)
	}

	out := roundTrip(t, in)

	if !bytes.Equal(out, in) {
		t.Fatalf("round trip mismatch on 256 distinct octets")
	}
}

func TestEncodeSmallAlphabetCompresses(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	in := make([]byte, 1000)

	for i := range in {
		in[i] = byte(r.Intn(4))
	}

	enc := make([]byte, Encode(nil, in))
	produced := Encode(enc, in)

	if produced >= len(in) {
		t.Fatalf("never-larger: encode(1000 octets from {0,1,2,3}) produced %d bytes, want < %d", produced, len(in))
	}

	out := roundTrip(t, in)

	if !bytes.Equal(out, in) {
		t.Fatalf("round trip mismatch on small-alphabet input")
	}
}

func TestEncodeAbracadabra(t *testing.T) {
	in := []byte("abracadabra")

	enc1 := make([]byte, Encode(nil, in))
	Encode(enc1, in)

	enc2 := make([]byte, Encode(nil, in))
	Encode(enc2, in)

	if !bytes.Equal(enc1, enc2) {
		t.Fatalf("canonical determinism: two encodes of the same input disagree")
	}

	out := roundTrip(t, in)

	if !bytes.Equal(out, in) {
		t.Fatalf("round trip = %q, want %q", out, in)
	}
}

func TestNeverLarger(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	sizes := []int{1, 2, 3, 17, 100, 5000}

	for _, size := range sizes {
		in := make([]byte, size)
		r.Read(in)

		produced := Encode(make([]byte, 4096+size), in)

		if produced > size+10 {
			t.Fatalf("never-larger: Encode(%d random bytes) produced %d, want <= %d", size, produced, size+10)
		}
	}
}

func TestRoundTripRandomInputs(t *testing.T) {
	r := rand.New(rand.NewSource(3))

	for trial := 0; trial < 32; trial++ {
		size := r.Intn(2000) + 1
		in := make([]byte, size)

		switch trial % 3 {
		case 0:
			r.Read(in)
		case 1:
			for i := range in {
				in[i] = byte(r.Intn(8))
			}
		case 2:
			for i := range in {
				in[i] = byte(trial)
			}
		}

		out := roundTrip(t, in)

		if !bytes.Equal(out, in) {
			t.Fatalf("trial %d: round trip mismatch for %d-byte input", trial, size)
		}
	}
}

func TestDecodeTruncatedHeaderReturnsZero(t *testing.T) {
	in := []byte("abracadabra")
	enc := make([]byte, Encode(nil, in))
	Encode(enc, in)

	// Cut the stream inside the header: keep only the length prefix (count
	// byte and one length byte), dropping the layout tag byte and the rest.
	truncated := enc[:2]

	if n := Decode(make([]byte, len(in)), truncated); n != 0 {
		t.Fatalf("Decode(truncated header) = %d, want 0", n)
	}
}

func TestDecodeTruncatedBodyReturnsPartialCount(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	in := make([]byte, 500)

	for i := range in {
		in[i] = byte(r.Intn(6))
	}

	enc := make([]byte, Encode(nil, in))
	produced := Encode(enc, in)
	enc = enc[:produced]

	truncated := enc[:len(enc)-2]
	n := Decode(make([]byte, len(in)), truncated)

	if n < 0 || n > len(in) {
		t.Fatalf("Decode(truncated body) = %d, out of range [0, %d]", n, len(in))
	}

	if n > 0 {
		full := make([]byte, len(in))
		Decode(full, enc)

		if !bytes.Equal(full[:n], in[:n]) {
			t.Fatalf("partial decode diverges from full decode in the prefix that was recovered")
		}
	}
}

func TestEncodeOutputTooSmallIsRetryable(t *testing.T) {
	in := []byte("abracadabra")
	need := Encode(nil, in)

	small := make([]byte, 1)
	got := Encode(small, in)

	if got != need {
		t.Fatalf("Encode with undersized buffer reported %d, want %d (same as dry run)", got, need)
	}

	full := make([]byte, need)
	Encode(full, in)
	out := make([]byte, len(in))
	Decode(out, full)

	if !bytes.Equal(out, in) {
		t.Fatalf("round trip after undersized-buffer retry failed")
	}
}
