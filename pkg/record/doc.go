// Package record defines the structured output of artifact parsing.
//
// A Record is one flat mapping from field name to Reading and describes a
// single entity, such as the lscpu description of one node. A Table is an
// ordered sequence of Records parsed from a single multi-record artifact,
// such as a scontrol node snapshot with one row per node.
//
// Field names are the literal keys found in the source text ("CPU(s)",
// "Thread(s) per core", "NodeName", "CoresPerSocket"). They are never
// normalized because downstream statistics match on them verbatim.
//
// Readings keep the trimmed source text. Numeric coercion happens at the
// point of use:
//
//	mhz, err := rec.Float("CPU max MHz")
package record
