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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	chuffman "github.com/flanglet/chuffman"
	"github.com/flanglet/chuffman/entropy"
	"github.com/flanglet/chuffman/internal"
)

// runBatch walks cfg.input, filters the resulting file list by the
// include/exclude glob patterns, and fans each surviving file out to the
// same single-file codec path runSingle uses, bounded to cfg.jobs
// concurrent workers. File order is made deterministic before the fan-out
// so repeated runs over the same tree give each file the same event id
// regardless of how many workers ran them; with more than one worker the
// order in which those events are reported is not fixed.
func runBatch(cfg *config, listener *progressListener) int {
	fileList, err := internal.CreateFileList(cfg.input, nil, cfg.recursive, false, true)

	if err != nil {
		fmt.Printf("Failed to list '%v': %v\n", cfg.input, err)
		return chuffman.ERR_OPEN_FILE
	}

	filtered := fileList[:0]

	for _, fd := range fileList {
		incOK, err := internal.MatchesAnyPattern(fd.Name, cfg.includes)

		if err != nil {
			fmt.Printf("Invalid --include pattern: %v\n", err)
			return chuffman.ERR_INVALID_PARAM
		}

		excOK, err := internal.MatchesAnyPattern(fd.Name, cfg.excludes)

		if err != nil {
			fmt.Printf("Invalid --exclude pattern: %v\n", err)
			return chuffman.ERR_INVALID_PARAM
		}

		if incOK && (len(cfg.excludes) == 0 || !excOK) {
			filtered = append(filtered, fd)
		}
	}

	internal.SortFileData(filtered, false)

	var g errgroup.Group
	g.SetLimit(cfg.jobs)
	failures := make([]int32, len(filtered))

	for i, fd := range filtered {
		i, fd := i, fd

		g.Go(func() error {
			failures[i] = batchOne(cfg, listener, int32(i), fd)
			return nil
		})
	}

	_ = g.Wait()
	code := 0

	for _, f := range failures {
		if f != 0 {
			code = int(f)
		}
	}

	return code
}

// batchOne processes a single file of a batch run, reporting its own
// start/end events tagged with its position in the (now deterministic)
// file list instead of the single-file path's fixed id of 0.
func batchOne(cfg *config, listener *progressListener, id int32, fd internal.FileData) int32 {
	in, err := os.ReadFile(fd.FullPath)

	if err != nil {
		listener.ProcessEvent(chuffman.NewEventFromString(chuffman.EVT_BLOCK_INFO, int(id),
			fmt.Sprintf("skip %v: %v", fd.FullPath, err), time.Time{}))
		return chuffman.ERR_READ_FILE
	}

	var out []byte
	var produced int
	var evtStart, evtEnd int
	var outPath string

	if cfg.mode == "e" {
		evtStart, evtEnd = chuffman.EVT_COMPRESSION_START, chuffman.EVT_COMPRESSION_END
		out, produced = runWithRetry(len(in), func(buf []byte) int { return entropy.Encode(buf, in) })
		outPath = fd.FullPath + ".chf"
	} else {
		evtStart, evtEnd = chuffman.EVT_DECOMPRESSION_START, chuffman.EVT_DECOMPRESSION_END
		out, produced = runWithRetry(2*len(in), func(buf []byte) int { return entropy.Decode(buf, in) })

		if len(fd.FullPath) > 4 && fd.FullPath[len(fd.FullPath)-4:] == ".chf" {
			outPath = fd.FullPath[:len(fd.FullPath)-4]
		} else {
			outPath = fd.FullPath + ".out"
		}
	}

	listener.ProcessEvent(chuffman.NewEvent(evtStart, int(id), int64(len(in)), 0, chuffman.EVT_HASH_NONE, time.Time{}))

	if produced == 0 && len(in) > 0 {
		listener.ProcessEvent(chuffman.NewEventFromString(chuffman.EVT_BLOCK_INFO, int(id),
			fmt.Sprintf("skip %v: malformed or unsupported input", fd.FullPath), time.Time{}))
		return chuffman.ERR_INVALID_FILE
	}

	out = out[:produced]

	if internal.IsReservedName(strings.TrimSuffix(filepath.Base(outPath), filepath.Ext(outPath))) {
		listener.ProcessEvent(chuffman.NewEventFromString(chuffman.EVT_BLOCK_INFO, int(id),
			fmt.Sprintf("skip %v: reserved output name", outPath), time.Time{}))
		return chuffman.ERR_RESERVED_NAME
	}

	if !cfg.force {
		if _, err := os.Stat(outPath); err == nil {
			listener.ProcessEvent(chuffman.NewEventFromString(chuffman.EVT_BLOCK_INFO, int(id),
				fmt.Sprintf("skip %v: output exists", outPath), time.Time{}))
			return chuffman.ERR_OVERWRITE_FILE
		}
	}

	if err := os.WriteFile(outPath, out, 0644); err != nil {
		listener.ProcessEvent(chuffman.NewEventFromString(chuffman.EVT_BLOCK_INFO, int(id),
			fmt.Sprintf("failed to write %v: %v", outPath, err), time.Time{}))
		return chuffman.ERR_WRITE_FILE
	}

	var hash uint64
	hashType := chuffman.EVT_HASH_NONE

	if cfg.checksum {
		hash = xxhash.Sum64(out)
		hashType = chuffman.EVT_HASH_64BITS
	}

	listener.ProcessEvent(chuffman.NewEvent(evtEnd, int(id), int64(len(out)), hash, hashType, time.Time{}))
	return 0
}
