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
varda-load-cov loads a coverage input file into a fresh in-memory
coverage table under a single sample id, and reports the diagnostic
"<len>\t<reference>" dump of every reference the table holds afterward.
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
	covFile         = flag.String("cov", "", "Input coverage file")
	sampleID        = flag.Int("sample-id", 0, "Sample identifier to load under")
	refCapacity     = flag.Uint64("ref-capacity", 1<<16, "Max distinct reference names")
	refCharCapacity = flag.Uint64("ref-char-capacity", 1<<20, "Max total bytes across all reference names")
	treeCapacity    = flag.Uint64("tree-capacity", 1<<24, "Max entries per per-reference tree")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if *covFile == "" {
		log.Fatalf("-cov is required")
	}
	if *sampleID < 0 {
		log.Fatalf("-sample-id must be non-negative")
	}

	cov, err := table.NewCoverageTable(*refCapacity, *refCharCapacity, *treeCapacity)
	if err != nil {
		log.Fatalf("varda-load-cov: %v", err)
	}
	defer cov.Destroy()

	ctx := vcontext.Background()
	n, err := driver.CoverageFromFile(ctx, *covFile, uint32(*sampleID), cov)
	if err != nil {
		log.Fatalf("varda-load-cov: %v (loaded %d records)", err, n)
	}
	log.Printf("varda-load-cov: loaded %d records from %s", n, *covFile)

	cov.Dump(func(length int, reference string) {
		log.Printf("%d\t%s", length, reference)
	})
}
