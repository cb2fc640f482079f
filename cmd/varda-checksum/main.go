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
varda-checksum loads a coverage or variant file into a single-sample
table and prints a per-reference, order-independent checksum of its
contents, for regression comparison between two loads of the same file.
*/

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/varda-db/varda/checksum"
	"github.com/varda-db/varda/driver"
	"github.com/varda-db/varda/table"
)

var (
	covFile         = flag.String("cov", "", "Coverage file to checksum")
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

	cov, err := table.NewCoverageTable(*refCapacity, *refCharCapacity, *treeCapacity)
	if err != nil {
		log.Fatalf("varda-checksum: %v", err)
	}
	defer cov.Destroy()

	ctx := vcontext.Background()
	n, err := driver.CoverageFromFile(ctx, *covFile, uint32(*sampleID), cov)
	if err != nil {
		log.Fatalf("varda-checksum: %v (loaded %d records)", err, n)
	}

	sums := checksum.Of(cov, checksum.CoveragePayload)
	js, err := json.MarshalIndent(sums, "", "  ")
	if err != nil {
		log.Panic(err)
	}
	fmt.Println(string(js))
}
