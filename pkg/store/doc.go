// Package store implements the file system backed record store.
//
// A database instance lives in <root>/<name>/ and holds one directory per
// category:
//
//	<root>/<name>/
//	  cpu/<NodeName>.txt      one raw lscpu descriptor per covered node
//	  node/<any-filename>.txt exactly one raw scontrol node snapshot
//
// Artifacts are written verbatim by Insert and parsed on every Query with
// the Format bound to their category. The category to format table is fixed
// when the Store is built:
//
//	st, err := store.New("cluster", "", store.WithFormat(store.CategoryNode, parser.Scontrol{Preprocess: true}))
//	if err != nil {
//	    return err
//	}
//	ratio, err := st.Coverage()
//
// # CPU Naming Contract
//
// A node named N counts as covered when cpu/N.txt exists. Collectors must
// therefore name cpu artifacts after the NodeName reported by scontrol.
// WithStrictCPUNames enforces the contract at Insert time.
//
// # Concurrency
//
// A Store assumes a single writer process per instance. Concurrent Insert or
// Remove calls for the same filename race and the last write wins. Create
// and Delete are short sequences of file system calls; IsEmpty and
// CheckIntegrity report a half built or half deleted instance on next use.
package store
