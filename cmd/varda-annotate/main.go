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
varda-annotate loads a cohort's coverage and variant files, then
annotates a candidate-variant file against them, emitting a num:den
population-frequency column per record.
*/

import (
	"flag"
	"strconv"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/varda-db/varda/driver"
	"github.com/varda-db/varda/interval"
	"github.com/varda-db/varda/ssi"
	"github.com/varda-db/varda/table"
)

var (
	covFiles        = flag.String("cov", "", "Comma-separated path:sample_id pairs of coverage files to load")
	varFiles        = flag.String("var", "", "Comma-separated path:sample_id pairs of variant files to load")
	inFile          = flag.String("in", "", "Annotation input file")
	outFile         = flag.String("out", "", "Annotation output file")
	subsetIDs       = flag.String("subset", "", "Comma-separated sample ids to restrict the query to; empty means every loaded sample")
	region          = flag.String("region", "", "Restrict annotation to this region, e.g. chr1:100-200; empty means no restriction")
	refCapacity     = flag.Uint64("ref-capacity", 1<<16, "Max distinct reference names")
	refCharCapacity = flag.Uint64("ref-char-capacity", 1<<20, "Max total bytes across all reference names")
	treeCapacity    = flag.Uint64("tree-capacity", 1<<24, "Max entries per per-reference tree")
	seqCharCapacity = flag.Uint64("seq-char-capacity", 1<<22, "Max total bytes across all interned alleles")
)

// pathSampleID parses one "path:sample_id" token.
func pathSampleID(tok string) (path string, sampleID uint32, err error) {
	i := strings.LastIndexByte(tok, ':')
	if i < 0 {
		log.Fatalf("varda-annotate: expected path:sample_id, got %q", tok)
	}
	v, perr := strconv.ParseUint(tok[i+1:], 10, 32)
	if perr != nil {
		log.Fatalf("varda-annotate: invalid sample_id in %q: %v", tok, perr)
	}
	return tok[:i], uint32(v), nil
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if *inFile == "" || *outFile == "" {
		log.Fatalf("-in and -out are required")
	}

	cov, err := table.NewCoverageTable(*refCapacity, *refCharCapacity, *treeCapacity)
	if err != nil {
		log.Fatalf("varda-annotate: %v", err)
	}
	defer cov.Destroy()
	snv, err := table.NewSNVTable(*refCapacity, *refCharCapacity, *treeCapacity)
	if err != nil {
		log.Fatalf("varda-annotate: %v", err)
	}
	defer snv.Destroy()
	mnv, err := table.NewMNVTable(*refCapacity, *refCharCapacity, *treeCapacity)
	if err != nil {
		log.Fatalf("varda-annotate: %v", err)
	}
	defer mnv.Destroy()
	seq, err := table.NewSequenceTable(*seqCharCapacity)
	if err != nil {
		log.Fatalf("varda-annotate: %v", err)
	}
	defer seq.Destroy()

	ctx := vcontext.Background()
	for _, tok := range splitNonEmpty(*covFiles) {
		path, sampleID, _ := pathSampleID(tok)
		n, err := driver.CoverageFromFile(ctx, path, sampleID, cov)
		if err != nil {
			log.Fatalf("varda-annotate: loading %s: %v", path, err)
		}
		log.Printf("varda-annotate: loaded %d coverage records from %s", n, path)
	}
	for _, tok := range splitNonEmpty(*varFiles) {
		path, sampleID, _ := pathSampleID(tok)
		n, err := driver.VariantsFromFile(ctx, path, sampleID, snv, mnv, seq)
		if err != nil {
			log.Fatalf("varda-annotate: loading %s: %v", path, err)
		}
		log.Printf("varda-annotate: loaded %d variant records from %s", n, path)
	}

	var subset *ssi.Set
	if ids := splitNonEmpty(*subsetIDs); len(ids) > 0 {
		subset, err = ssi.New(uint64(len(ids)))
		if err != nil {
			log.Fatalf("varda-annotate: %v", err)
		}
		for _, id := range ids {
			v, perr := strconv.ParseUint(id, 10, 32)
			if perr != nil {
				log.Fatalf("varda-annotate: invalid -subset id %q: %v", id, perr)
			}
			if err := subset.Insert(uint32(v)); err != nil {
				log.Fatalf("varda-annotate: %v", err)
			}
		}
	}

	var regionEntry *interval.Entry
	if *region != "" {
		e, rerr := interval.ParseRegionString(*region)
		if rerr != nil {
			log.Fatalf("varda-annotate: -region: %v", rerr)
		}
		regionEntry = &e
	}

	n, err := driver.AnnotateFromFile(ctx, *outFile, *inFile, cov, snv, mnv, seq, subset, regionEntry)
	if err != nil {
		log.Fatalf("varda-annotate: %v (annotated %d records)", err, n)
	}
	log.Printf("varda-annotate: annotated %d records, wrote %s", n, *outFile)
}
