package parser

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/NVIDIA/slurmdocs/pkg/errors"
	"github.com/NVIDIA/slurmdocs/pkg/record"
)

// Parser parses artifacts with the currently selected Format.
// It holds no state beyond the Format reference.
type Parser struct {
	format Format
}

// New returns a Parser using format.
func New(format Format) *Parser {
	return &Parser{format: format}
}

// SetFormat selects the Format used by subsequent calls.
func (p *Parser) SetFormat(format Format) {
	p.format = format
}

// Format returns the selected Format.
func (p *Parser) Format() Format {
	return p.format
}

// Parse parses data with the selected Format.
func (p *Parser) Parse(data []byte) (record.Parsed, error) {
	if p.format == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "parser has no format selected")
	}
	return p.format.Parse(data)
}

// ParseFile reads path and parses it with the selected Format.
func (p *Parser) ParseFile(path string) (record.Parsed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, fmt.Sprintf("artifact %q not found", path), err)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to read artifact %q", path), err)
	}

	res, err := p.Parse(data)
	if err != nil {
		return nil, err
	}

	slog.Debug("parsed artifact",
		slog.String("path", path),
		slog.String("format", p.format.Name()),
		slog.Int("rows", len(res.Rows())),
	)
	return res, nil
}
