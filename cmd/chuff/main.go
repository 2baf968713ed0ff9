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
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	chuffman "github.com/flanglet/chuffman"
	"github.com/flanglet/chuffman/entropy"
	"github.com/flanglet/chuffman/internal"
)

const (
	_APP_HEADER = "chuff 1.0 (c) Frederic Langlet"

	_ARG_ENCODE    = "--encode"
	_ARG_DECODE    = "--decode"
	_ARG_INPUT     = "--input="
	_ARG_OUTPUT    = "--output="
	_ARG_VERBOSE   = "--verbose="
	_ARG_CHECKSUM  = "--checksum"
	_ARG_RECURSIVE = "--recursive"
	_ARG_JOBS      = "--jobs="
	_ARG_INCLUDE   = "--include="
	_ARG_EXCLUDE   = "--exclude="
	_ARG_FORCE     = "--force"
)

var (
	mutex sync.Mutex
	log   = Printer{os: bufio.NewWriter(os.Stdout)}
)

// config holds the parsed command line.
type config struct {
	mode      string // "e" or "d"
	input     string
	output    string
	verbosity uint
	checksum  bool
	recursive bool
	force     bool
	jobs      int
	includes  []string
	excludes  []string
}

func main() {
	cfg, status := processCommandLine(os.Args)

	if status != 0 {
		if status < 0 {
			os.Exit(0)
		}

		os.Exit(status)
	}

	if cfg == nil {
		os.Exit(0)
	}

	runtime.GOMAXPROCS(runtime.NumCPU())
	listener := newProgressListener(&log, cfg.verbosity)

	fi, err := os.Stat(cfg.input)

	if err != nil {
		fmt.Printf("Cannot access input '%v': %v\n", cfg.input, err)
		os.Exit(chuffman.ERR_OPEN_FILE)
	}

	var code int

	if fi.IsDir() {
		code = runBatch(cfg, listener)
	} else {
		code = runSingle(cfg, listener)
	}

	os.Exit(code)
}

func processCommandLine(args []string) (*config, int) {
	cfg := &config{verbosity: 1, jobs: 1}
	showHeader := true

	for i, arg := range args {
		if i == 0 {
			continue
		}

		arg = strings.TrimSpace(arg)

		switch {
		case arg == _ARG_ENCODE:
			if cfg.mode == "d" {
				fmt.Println("Both --encode and --decode were provided.")
				return nil, chuffman.ERR_INVALID_PARAM
			}

			cfg.mode = "e"

		case arg == _ARG_DECODE:
			if cfg.mode == "e" {
				fmt.Println("Both --encode and --decode were provided.")
				return nil, chuffman.ERR_INVALID_PARAM
			}

			cfg.mode = "d"

		case strings.HasPrefix(arg, _ARG_INPUT):
			cfg.input = arg[len(_ARG_INPUT):]

		case strings.HasPrefix(arg, _ARG_OUTPUT):
			cfg.output = arg[len(_ARG_OUTPUT):]

		case strings.HasPrefix(arg, _ARG_VERBOSE):
			v, err := strconv.ParseUint(arg[len(_ARG_VERBOSE):], 10, 32)

			if err != nil {
				fmt.Printf("Invalid verbosity level: %v\n", arg[len(_ARG_VERBOSE):])
				return nil, chuffman.ERR_INVALID_PARAM
			}

			cfg.verbosity = uint(v)

		case arg == _ARG_CHECKSUM:
			cfg.checksum = true

		case arg == _ARG_RECURSIVE:
			cfg.recursive = true

		case arg == _ARG_FORCE:
			cfg.force = true

		case strings.HasPrefix(arg, _ARG_JOBS):
			j, err := strconv.Atoi(arg[len(_ARG_JOBS):])

			if err != nil || j < 1 {
				fmt.Printf("Invalid number of jobs: %v\n", arg[len(_ARG_JOBS):])
				return nil, chuffman.ERR_INVALID_PARAM
			}

			cfg.jobs = j

		case strings.HasPrefix(arg, _ARG_INCLUDE):
			cfg.includes = append(cfg.includes, arg[len(_ARG_INCLUDE):])

		case strings.HasPrefix(arg, _ARG_EXCLUDE):
			cfg.excludes = append(cfg.excludes, arg[len(_ARG_EXCLUDE):])

		case arg == "-h" || arg == "--help":
			showHeader = false
			printUsage()
			return nil, 0

		default:
			fmt.Printf("Ignoring invalid argument: %v\n", arg)
		}
	}

	if showHeader && cfg.verbosity > 0 {
		fmt.Println(_APP_HEADER)
	}

	if cfg.mode == "" {
		fmt.Println("Missing --encode or --decode: try --help")
		return nil, chuffman.ERR_MISSING_PARAM
	}

	if cfg.input == "" {
		fmt.Println("Missing --input=")
		return nil, chuffman.ERR_MISSING_PARAM
	}

	return cfg, 0
}

func printUsage() {
	fmt.Println(_APP_HEADER)
	fmt.Println()
	fmt.Println("Usage: chuff --encode|--decode --input=<path> [--output=<path>]")
	fmt.Println("             [--verbose=<level>] [--checksum] [--force]")
	fmt.Println("             [--recursive] [--jobs=<n>] [--include=<glob>]* [--exclude=<glob>]*")
}

// runSingle encodes or decodes one file, following the allocate-guess,
// retry-on-overflow convention shared by the reference encoder/decoder
// test harnesses this codec was built against.
func runSingle(cfg *config, listener *progressListener) int {
	in, err := os.ReadFile(cfg.input)

	if err != nil {
		fmt.Printf("Failed to read '%v': %v\n", cfg.input, err)
		return chuffman.ERR_READ_FILE
	}

	var out []byte
	var produced int
	var evtStart, evtEnd int

	if cfg.mode == "e" {
		evtStart, evtEnd = chuffman.EVT_COMPRESSION_START, chuffman.EVT_COMPRESSION_END
		out, produced = runWithRetry(len(in), func(buf []byte) int { return entropy.Encode(buf, in) })
	} else {
		evtStart, evtEnd = chuffman.EVT_DECOMPRESSION_START, chuffman.EVT_DECOMPRESSION_END
		out, produced = runWithRetry(2*len(in), func(buf []byte) int { return entropy.Decode(buf, in) })
	}

	listener.ProcessEvent(chuffman.NewEvent(evtStart, 0, int64(len(in)), 0, chuffman.EVT_HASH_NONE, timeZero()))

	if produced == 0 && len(in) > 0 {
		fmt.Printf("Failed to %s '%v': malformed or unsupported input\n", modeVerb(cfg.mode), cfg.input)
		return chuffman.ERR_INVALID_FILE
	}

	out = out[:produced]
	outPath := outputPath(cfg)

	if internal.IsReservedName(strings.TrimSuffix(filepath.Base(outPath), filepath.Ext(outPath))) {
		fmt.Printf("Output file '%v' has a reserved name\n", outPath)
		return chuffman.ERR_RESERVED_NAME
	}

	if !cfg.force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Printf("Output file '%v' already exists (use --force to overwrite)\n", outPath)
			return chuffman.ERR_OVERWRITE_FILE
		}
	}

	if err := os.WriteFile(outPath, out, 0644); err != nil {
		fmt.Printf("Failed to write '%v': %v\n", outPath, err)
		return chuffman.ERR_WRITE_FILE
	}

	var hash uint64
	hashType := chuffman.EVT_HASH_NONE

	if cfg.checksum {
		hash = xxhash.Sum64(out)
		hashType = chuffman.EVT_HASH_64BITS
	}

	listener.ProcessEvent(chuffman.NewEvent(evtEnd, 0, int64(len(out)), hash, hashType, timeZero()))
	return 0
}

// runWithRetry calls fn with a buffer sized guess, then with a buffer
// sized exactly to fn's reported produced_len if that exceeds the guess.
func runWithRetry(guess int, fn func(buf []byte) int) ([]byte, int) {
	if guess < 1 {
		guess = 1
	}

	buf := make([]byte, guess)
	produced := fn(buf)

	if produced > len(buf) {
		buf = make([]byte, produced)
		produced = fn(buf)
	}

	return buf, produced
}

func timeZero() time.Time {
	return time.Time{}
}

func modeVerb(mode string) string {
	if mode == "e" {
		return "encode"
	}

	return "decode"
}

func outputPath(cfg *config) string {
	if cfg.output != "" {
		return cfg.output
	}

	if cfg.mode == "e" {
		return cfg.input + ".chf"
	}

	if strings.HasSuffix(cfg.input, ".chf") {
		return cfg.input[:len(cfg.input)-len(".chf")]
	}

	return cfg.input + ".out"
}
