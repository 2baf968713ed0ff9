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

// Package entropy implements a self-describing canonical Huffman codec
// over a 256-symbol byte alphabet.
//
// Encode and Decode are pure functions: they read one caller-provided
// span and write another, never retaining state between calls and never
// allocating more than O(256) words of working memory. Callers size
// their output buffer the same way the rest of this codebase sizes
// buffers for in-place codecs: call once, and if the returned length
// exceeds the buffer's capacity, reallocate and call again with the
// buffer the call reports it needs.
package entropy
