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

// Decode reverses Encode's three layouts and returns the number of bytes
// the decoded output occupies, following the same dry-run sizing contract
// as Encode: the returned count is correct even when len(out) is smaller,
// and the caller is expected to retry with a larger buffer. A truncated
// header (length prefix, tag byte, bit-length counts, or symbol list
// running past the end of in) returns 0. A body that runs out of input
// before all symbols are decoded returns the count of symbols fully
// decoded before that point, not 0.
func Decode(out []byte, in []byte) int {
	n, pos, ok := parseLengthPrefix(in, 0)

	if !ok || n == 0 {
		return 0
	}

	if pos >= len(in) {
		return 0
	}

	x := in[pos]
	pos++

	switch {
	case x == tagRaw:
		return decodeRaw(out, in, pos, n)
	case x == tagRLE:
		return decodeRLE(out, in, pos, n)
	default:
		return decodeHuffman(out, in, pos, n, int(x))
	}
}

// decodeRaw copies up to n bytes verbatim starting at in[pos]. Running out
// of input here is body truncation, not a header error, so the partial
// count is returned rather than 0.
func decodeRaw(out []byte, in []byte, pos, n int) int {
	avail := len(in) - pos

	if avail < n {
		n = avail
	}

	sw := &spanWriter{out: out}

	for i := 0; i < n; i++ {
		sw.writeByte(in[pos+i])
	}

	return sw.n
}

// decodeRLE expands the single repeated symbol n times. The symbol octet
// is logically part of the header (the body carries no further bits), so
// a missing symbol byte is a truncated header and returns 0.
func decodeRLE(out []byte, in []byte, pos, n int) int {
	if pos >= len(in) {
		return 0
	}

	sym := in[pos]
	sw := &spanWriter{out: out}

	for i := 0; i < n; i++ {
		sw.writeByte(sym)
	}

	return sw.n
}

// decodeHuffman parses the bit-length count table, rebuilds the decode
// table and canonical symbol order, and streams n symbols out of the
// bit-packed body.
func decodeHuffman(out []byte, in []byte, pos, n, maxLen int) int {
	if maxLen < 2 || maxLen > alphabetSize-1 {
		return 0
	}

	bucket, bodyPos, ok := parseFullHeader(in, pos, maxLen)

	if !ok {
		return 0
	}

	table, symbols := buildDecodeTable(bucket)
	br := &bitReader{buf: in[bodyPos:]}
	sw := &spanWriter{out: out}

	for i := 0; i < n; i++ {
		sym, ok := decodeOne(br, table, symbols)

		if !ok {
			return sw.n
		}

		sw.writeByte(byte(sym))
	}

	return sw.n
}

// decodeOne consumes one code from br: it scans table in ascending bits
// order for the first entry whose first_code exceeds the candidate value
// at that entry's width, then steps back one (the entry that didn't
// exceed is the match), per the canonical first-code/offset recurrence.
// Exhausting the input before a full code is available is reported via
// ok == false, distinct from a code that simply decodes to a valid symbol.
func decodeOne(br *bitReader, table []tableEntry, symbols []int) (symbol int, ok bool) {
	if len(table) == 0 {
		return 0, false
	}

	i := 0

	for i < len(table) {
		v := br.peek(uint(table[i].bits))

		if table[i].firstCode > v {
			break
		}

		i++
	}

	if i == 0 {
		return 0, false
	}

	entry := table[i-1]

	if br.avail < uint(entry.bits) {
		return 0, false
	}

	v := br.peek(uint(entry.bits))
	idx := int(v) - int(entry.offset)

	if idx < 0 || idx >= len(symbols) {
		return 0, false
	}

	br.advance(uint(entry.bits))
	return symbols[idx], true
}
