// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

/*
varda-load-var loads a variant input file into fresh in-memory SNV, MNV,
and sequence-dictionary tables under a single sample id.
*/

import (
	"flag"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/varda-db/varda/driver"
	"github.com/varda-db/varda/table"
)

var (
	varFile         = flag.String("var", "", "Input variant file")
	sampleID        = flag.Int("sample-id", 0, "Sample identifier to load under")
	refCapacity     = flag.Uint64("ref-capacity", 1<<16, "Max distinct reference names")
	refCharCapacity = flag.Uint64("ref-char-capacity", 1<<20, "Max total bytes across all reference names")
	treeCapacity    = flag.Uint64("tree-capacity", 1<<24, "Max entries per per-reference tree")
	seqCharCapacity = flag.Uint64("seq-char-capacity", 1<<22, "Max total bytes across all interned alleles")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if *varFile == "" {
		log.Fatalf("-var is required")
	}
	if *sampleID < 0 {
		log.Fatalf("-sample-id must be non-negative")
	}

	snv, err := table.NewSNVTable(*refCapacity, *refCharCapacity, *treeCapacity)
	if err != nil {
		log.Fatalf("varda-load-var: %v", err)
	}
	defer snv.Destroy()

	mnv, err := table.NewMNVTable(*refCapacity, *refCharCapacity, *treeCapacity)
	if err != nil {
		log.Fatalf("varda-load-var: %v", err)
	}
	defer mnv.Destroy()

	seq, err := table.NewSequenceTable(*seqCharCapacity)
	if err != nil {
		log.Fatalf("varda-load-var: %v", err)
	}
	defer seq.Destroy()

	ctx := vcontext.Background()
	n, err := driver.VariantsFromFile(ctx, *varFile, uint32(*sampleID), snv, mnv, seq)
	if err != nil {
		log.Fatalf("varda-load-var: %v (loaded %d records)", err, n)
	}
	log.Printf("varda-load-var: loaded %d records from %s", n, *varFile)
}
