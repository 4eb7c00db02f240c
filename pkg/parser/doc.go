// Package parser converts raw cluster tool output into records.
//
// Two text formats are supported, each implemented as a Format:
//
//   - Lscpu: colon delimited single record text as printed by lscpu.
//     Each "Key:   Value" line becomes one field of a record.Record.
//   - Scontrol: blank line separated blocks of Key=Value tokens as printed
//     by "scontrol show node". Each block becomes one row of a record.Table.
//
// A Parser holds the currently selected Format and parses files with it.
// Switching formats only swaps the reference:
//
//	p := parser.New(parser.Lscpu{})
//	cpu, err := p.ParseFile("cpu/n1.txt")
//
//	p.SetFormat(parser.Scontrol{Preprocess: true})
//	nodes, err := p.ParseFile("node/node_info.txt")
//
// Parsed values are kept as trimmed strings. Callers coerce numbers where
// they need arithmetic, see record.Record.Float.
//
// All failures are *errors.StructuredError values: ErrCodeNotFound for a
// missing file, ErrCodeMalformedArtifact for text that cannot be parsed.
package parser
