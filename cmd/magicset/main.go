// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Binary magicset rewrites a Datalog program with the Magic Set method
// and prints the rewritten program to standard output.
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/golang/glog"

	"github.com/google/magicset/parse"
	"github.com/google/magicset/rewrite"
)

var (
	programPath = flag.String("program", "", "path to the Datalog program file to rewrite")
	greedy      = flag.Bool("greedy", false, "apply the greedy binding-order heuristic before adornment")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: magicset -program <file.dl> [-greedy]\n\n")
		fmt.Fprintf(os.Stderr, "Rewrites a Datalog program with the Magic Set method.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExit codes:\n")
		fmt.Fprintf(os.Stderr, "  0  rewrite succeeded, printed to stdout\n")
		fmt.Fprintf(os.Stderr, "  1  file could not be read, or the program could not be parsed\n")
	}
	flag.Parse()

	if *programPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	src, err := os.ReadFile(*programPath)
	if err != nil {
		log.Exitf("reading %s: %v", *programPath, err)
	}

	program, err := parse.Program(src)
	if err != nil {
		log.Exitf("parsing %s: %v", *programPath, err)
	}

	log.V(1).Infof("adorning program from %s (greedy=%v)", *programPath, *greedy)
	rewritten := rewrite.Transform(program, rewrite.Options{GreedyBindingOrder: *greedy})

	fmt.Println(rewritten.String())
}
