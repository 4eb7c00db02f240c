package serializer

import (
	"path/filepath"
	"strings"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// StdoutURI is the special path selecting stdout.
const StdoutURI = "-"

// SupportedFormats returns the known formats.
func SupportedFormats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTable}
}

// IsUnknown reports whether f is not a supported format.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	}
	return true
}

// FormatFromPath infers a format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".txt", ".table":
		return FormatTable
	default:
		return FormatJSON
	}
}
