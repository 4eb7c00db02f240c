package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/NVIDIA/slurmdocs/pkg/defaults"
	"github.com/NVIDIA/slurmdocs/pkg/errors"
	"github.com/NVIDIA/slurmdocs/pkg/record"
)

// Format converts the raw bytes of one artifact into a parse result.
// Implementations must be stateless so a single value can be shared.
type Format interface {
	// Name identifies the format in logs and errors.
	Name() string

	// Parse converts data into a record.Record or a *record.Table.
	Parse(data []byte) (record.Parsed, error)
}

// CheckArtifact rejects input that cannot be tool output: data larger than
// defaults.MaxArtifactSize or not valid UTF-8. Stores also run it before
// writing.
func CheckArtifact(format string, data []byte) error {
	if len(data) > defaults.MaxArtifactSize {
		return errors.New(errors.ErrCodeMalformedArtifact,
			fmt.Sprintf("%s artifact exceeds maximum size of %d bytes", format, defaults.MaxArtifactSize))
	}
	if !utf8.Valid(data) {
		return errors.New(errors.ErrCodeMalformedArtifact,
			fmt.Sprintf("%s artifact contains invalid UTF-8", format))
	}
	return nil
}

// splitLines splits text on newlines and drops carriage returns.
func splitLines(data []byte) []string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(text, "\n")
}
