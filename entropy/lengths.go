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

// assignLengths walks the tree built by buildTree, using the ring itself
// as the DFS stack: each node's visited marker and parent index replace an
// explicit recursion stack. Returns the per-symbol bit length (0 for
// absent symbols) and the shortest/longest length assigned.
func assignLengths(ring *[alphabetSize]node, root int) (lens [alphabetSize]byte, minLen, maxLen int) {
	i := root
	depth := 1
	minLen = alphabetSize

	record := func(symbol, d int) {
		lens[symbol] = byte(d)

		if d < minLen {
			minLen = d
		}

		if d > maxLen {
			maxLen = d
		}
	}

	for {
		p := &ring[i]

		if p.visited == 0 {
			p.visited = 1

			if p.leftIsLeaf {
				record(p.left, depth)
			} else {
				i = p.left
				depth++
				continue
			}
		}

		if p.visited == 1 {
			p.visited = 2

			if p.rightIsLeaf {
				record(p.right, depth)
			} else {
				i = p.right
				depth++
				continue
			}
		}

		depth--

		if depth == 0 {
			break
		}

		i = p.parent
	}

	return lens, minLen, maxLen
}
