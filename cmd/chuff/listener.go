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

package main

import (
	"bufio"
	"fmt"
	"sync"

	chuffman "github.com/flanglet/chuffman"
)

// Printer a buffered printer (required in concurrent code)
type Printer struct {
	os *bufio.Writer
}

// Println concurrently safe version (order wise) of Println
func (this *Printer) Println(msg string, printFlag bool) {
	if !printFlag {
		return
	}

	mutex.Lock()

	if w, _ := this.os.Write([]byte(msg + "\n")); w > 0 {
		_ = this.os.Flush()
	}

	mutex.Unlock()
}

// progressListener reports start, header-decoded, end and per-file batch
// events. The CLI raises only start, end and batch events; nothing in it
// raises EVT_AFTER_HEADER_DECODING, so that case never prints. Unlike the block
// codec this CLI is descended from, there is no per-block timeline to
// track, so the listener is a thin line-printer gated by verbosity level.
type progressListener struct {
	writer *Printer
	level  uint
	lock   sync.Mutex
}

func newProgressListener(writer *Printer, level uint) *progressListener {
	return &progressListener{writer: writer, level: level}
}

// ProcessEvent receives an event and writes a log record to the internal writer
func (this *progressListener) ProcessEvent(evt *chuffman.Event) {
	this.lock.Lock()
	defer this.lock.Unlock()

	switch evt.Type() {
	case chuffman.EVT_COMPRESSION_START, chuffman.EVT_DECOMPRESSION_START:
		if this.level >= 2 {
			this.writer.Println(evt.String(), true)
		}

	case chuffman.EVT_AFTER_HEADER_DECODING:
		if this.level >= 3 {
			this.writer.Println(evt.String(), true)
		}

	case chuffman.EVT_BLOCK_INFO:
		if this.level >= 1 {
			this.writer.Println(evt.String(), true)
		}

	case chuffman.EVT_COMPRESSION_END, chuffman.EVT_DECOMPRESSION_END:
		if this.level >= 1 {
			msg := evt.String()

			if evt.HashType() != chuffman.EVT_HASH_NONE {
				msg = fmt.Sprintf("%s (checksum %016x)", msg, evt.Hash())
			}

			this.writer.Println(msg, true)
		}
	}
}
