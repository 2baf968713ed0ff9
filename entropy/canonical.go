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

// bucketByLength groups symbols by their assigned bit length, each bucket
// listing its symbols in ascending numeric order (guaranteed because sym
// ranges over 0..alphabetSize-1 in order). bucket[i] holds every symbol of
// length i; bucket[0] is always empty.
func bucketByLength(lens *[alphabetSize]byte, maxLen int) [][]int {
	bucket := make([][]int, maxLen+1)

	for sym, l := range lens {
		if l > 0 {
			bucket[l] = append(bucket[l], sym)
		}
	}

	return bucket
}

// canonicalWalk applies the classical canonical-code recurrence to a set
// of per-length symbol buckets: within a length, codes are consecutive
// integers; between lengths, the running counter doubles. visit is called
// once per length in [start, len(bucket)-1], including lengths with no
// symbols, since the counter must still double across the gap. The code
// passed to visit is the code of the first symbol at that length (only
// meaningful when the bucket at that length is non-empty).
func canonicalWalk(bucket [][]int, start int, visit func(length int, firstCode uint64, symbols []int)) {
	code := uint64(0)

	for length := start; length < len(bucket); length++ {
		symbols := bucket[length]
		visit(length, code, symbols)
		code += uint64(len(symbols))
		code <<= 1
	}
}

// assignCodes runs canonicalWalk over bucket and returns the per-symbol
// canonical code. Only entries for symbols with bucket membership (i.e.
// lens[sym] > 0) are meaningful.
func assignCodes(bucket [][]int, minLen int) [alphabetSize]uint64 {
	var codes [alphabetSize]uint64

	canonicalWalk(bucket, minLen, func(_ int, firstCode uint64, symbols []int) {
		code := firstCode

		for _, s := range symbols {
			codes[s] = code
			code++
		}
	})

	return codes
}

// tableEntry is one row of the decoder's compact first-code table: every
// code of the given bit length maps to symbols[v-offset], where v is the
// value of those bits read MSB-first.
type tableEntry struct {
	firstCode uint64
	offset    uint64
	bits      uint8
}

// buildDecodeTable runs canonicalWalk over bucket (here, the per-length
// symbol lists parsed straight off the wire) and produces the decode
// table and the canonical symbol ordering described in the Decode table
// section of the data model: entries ordered by ascending bits, with
// offset chosen so that v-offset indexes directly into symbols.
func buildDecodeTable(bucket [][]int) (table []tableEntry, symbols []int) {
	canonicalWalk(bucket, 1, func(length int, firstCode uint64, syms []int) {
		if len(syms) == 0 {
			return
		}

		table = append(table, tableEntry{
			firstCode: firstCode,
			offset:    firstCode - uint64(len(symbols)),
			bits:      uint8(length),
		})

		symbols = append(symbols, syms...)
	})

	return table, symbols
}
