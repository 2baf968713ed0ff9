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

// Layout tags for the octet following the length prefix.
const (
	tagRaw = 0
	tagRLE = 1
)

// maxLengthBytes bounds the length prefix's count byte: L is Go's int,
// whose width never exceeds 8 bytes on any platform this module targets.
const maxLengthBytes = 8

// splitLength returns the minimal big-endian encoding of n: k is the
// number of non-zero-trimmed bytes (0 for n == 0) and buf holds them
// right-justified in its low k bytes.
func splitLength(n int) (k int, buf [maxLengthBytes]byte) {
	v := uint64(n)

	for i := maxLengthBytes - 1; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}

	k = maxLengthBytes

	for k > 0 && buf[maxLengthBytes-k] == 0 {
		k--
	}

	return k, buf
}

// writeLengthPrefix writes the count byte and its k big-endian length
// bytes. The length prefix precedes the tripwire-protected region (per the
// design note, only the X byte onward is ever rewound), so it is written
// straight to the span rather than through a bitWriter.
func writeLengthPrefix(sw *spanWriter, n int) {
	k, buf := splitLength(n)
	sw.writeByte(byte(k))

	for i := maxLengthBytes - k; i < maxLengthBytes; i++ {
		sw.writeByte(buf[i])
	}
}

// parseLengthPrefix reads the length prefix starting at in[pos]. ok is
// false if the header is truncated or claims more length bytes than this
// build's L supports.
func parseLengthPrefix(in []byte, pos int) (n, next int, ok bool) {
	if pos >= len(in) {
		return 0, pos, false
	}

	k := int(in[pos])
	pos++

	if k > maxLengthBytes || pos+k > len(in) {
		return 0, pos, false
	}

	for i := 0; i < k; i++ {
		n = n<<8 | int(in[pos])
		pos++
	}

	return n, pos, true
}

// writeFullHeader emits the X byte and the per-length bit-length count
// table of the full-Huffman layout (the decode table itself is implicit:
// the decoder rebuilds it from this same table). Returns false the moment
// the bitWriter's tripwire fires.
func writeFullHeader(bw *bitWriter, bucket [][]int, maxLen int) bool {
	if !bw.writeRawByte(byte(maxLen)) {
		return false
	}

	for length := 1; length <= maxLen; length++ {
		symbols := bucket[length]

		if !bw.writeRawByte(byte(len(symbols))) {
			return false
		}

		for _, s := range symbols {
			if !bw.writeRawByte(byte(s)) {
				return false
			}
		}
	}

	return true
}

// parseFullHeader reads the per-length bit-length count table following an
// already-consumed X byte (maxLen == X, X >= 2) and returns the per-length
// symbol buckets in the same shape bucketByLength produces, ready for
// buildDecodeTable.
func parseFullHeader(in []byte, pos, maxLen int) (bucket [][]int, next int, ok bool) {
	bucket = make([][]int, maxLen+1)

	for length := 1; length <= maxLen; length++ {
		if pos >= len(in) {
			return nil, pos, false
		}

		count := int(in[pos])
		pos++

		if pos+count > len(in) {
			return nil, pos, false
		}

		syms := make([]int, count)

		for i := 0; i < count; i++ {
			syms[i] = int(in[pos])
			pos++
		}

		bucket[length] = syms
	}

	return bucket, pos, true
}
