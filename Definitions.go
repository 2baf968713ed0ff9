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

// Package chuffman implements a self-describing canonical Huffman codec
// over a 256-symbol byte alphabet, plus the ambient diagnostics events and
// CLI error codes shared by its command-line front ends.
//
// The codec itself lives in the entropy sub-package. This package holds
// the top-level Event/Listener pattern used to report progress and the
// ERR_* exit codes returned by cmd/chuff.
package chuffman

const (
	ERR_MISSING_PARAM  = 1
	ERR_OUTPUT_IS_DIR  = 2
	ERR_OVERWRITE_FILE = 3
	ERR_CREATE_FILE    = 4
	ERR_OPEN_FILE      = 5
	ERR_READ_FILE      = 6
	ERR_WRITE_FILE     = 7
	ERR_INVALID_FILE   = 8
	ERR_INVALID_PARAM  = 9
	ERR_RESERVED_NAME  = 10
	ERR_UNKNOWN        = 127
)
