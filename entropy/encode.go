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

// Encode compresses in into out, choosing whichever of the three wire
// layouts (raw, single-symbol RLE, full canonical Huffman) is smallest,
// and returns the number of bytes the encoding occupies. That count is
// returned even when it exceeds len(out): the caller is expected to retry
// with a buffer of at least that size, mirroring every other in-place
// codec in this codebase. Encoding an empty input returns 0; this is the
// one case produced_len == 0 does not signal truncation on the output
// side, and callers are expected to know in_len to tell the two apart.
func Encode(out []byte, in []byte) int {
	n := len(in)

	if n == 0 {
		return 0
	}

	freqs, distinct := countFrequencies(in)

	sw := &spanWriter{out: out}
	writeLengthPrefix(sw, n)
	prefixLen := sw.n

	if distinct == 1 {
		sw.writeByte(tagRLE)
		sw.writeByte(in[0])
		return sw.n
	}

	if prefixLen+2+distinct+n/8 >= n {
		writeRaw(sw, in)
		return sw.n
	}

	ring, root := buildTree(n, &freqs)
	lens, minLen, maxLen := assignLengths(ring, root)

	if minLen >= 8 {
		writeRaw(sw, in)
		return sw.n
	}

	bucket := bucketByLength(&lens, maxLen)
	codes := assignCodes(bucket, minLen)

	fallbackCursor, fallbackN := sw.cursor, sw.n
	bw := &bitWriter{sw: sw, limit: n}

	if encodeFullHuffman(bw, in, bucket, maxLen, &lens, &codes) {
		return sw.n
	}

	sw.rewind(fallbackCursor, fallbackN)
	writeRaw(sw, in)
	return sw.n
}

// encodeFullHuffman writes the full-Huffman header and body through bw,
// returning false the instant the tripwire fires (produced length reaching
// the input length). The caller is responsible for rewinding and falling
// back to raw on a false return.
func encodeFullHuffman(bw *bitWriter, in []byte, bucket [][]int, maxLen int, lens *[alphabetSize]byte, codes *[alphabetSize]uint64) bool {
	if !writeFullHeader(bw, bucket, maxLen) {
		return false
	}

	for _, b := range in {
		if !bw.writeBits(codes[b], uint(lens[b])) {
			return false
		}
	}

	return bw.flush()
}

// writeRaw emits the raw-fallback layout: tag byte 0 followed by the input
// verbatim. Used both when the cheap size projection rules out Huffman
// ahead of time and when the tripwire aborts a full-Huffman attempt
// mid-stream.
func writeRaw(sw *spanWriter, in []byte) {
	sw.writeByte(tagRaw)

	for _, b := range in {
		sw.writeByte(b)
	}
}

// countFrequencies counts symbol occurrences in one pass, unrolled by 16
// to cut loop overhead, and reports how many distinct symbols occurred.
func countFrequencies(in []byte) (freqs [alphabetSize]int, distinct int) {
	i, end := 0, len(in)

	for ; i+16 <= end; i += 16 {
		freqs[in[i]]++
		freqs[in[i+1]]++
		freqs[in[i+2]]++
		freqs[in[i+3]]++
		freqs[in[i+4]]++
		freqs[in[i+5]]++
		freqs[in[i+6]]++
		freqs[in[i+7]]++
		freqs[in[i+8]]++
		freqs[in[i+9]]++
		freqs[in[i+10]]++
		freqs[in[i+11]]++
		freqs[in[i+12]]++
		freqs[in[i+13]]++
		freqs[in[i+14]]++
		freqs[in[i+15]]++
	}

	for ; i < end; i++ {
		freqs[in[i]]++
	}

	for _, f := range freqs {
		if f > 0 {
			distinct++
		}
	}

	return freqs, distinct
}
