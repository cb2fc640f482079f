// Package interval defines a genomic region type and a helper for parsing
// human-readable region strings such as "chr1:100-200", used by package
// driver and cmd/varda-annotate for region filtering. Package itree keeps
// its own uint32 PosType for stored intervals.
//
// Unlike the teacher package this one is descended from, it does not
// itself store or merge interval sets -- that is the job of package itree,
// which needs dynamic insert/remove and sample-subset filtering that a
// static sorted-endpoint union cannot provide.
package interval
