package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/NVIDIA/slurmdocs/pkg/record"

	"gopkg.in/yaml.v3"
)

// Serializer writes a value to an output.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Closer is implemented by serializers holding an open file.
type Closer interface {
	Close() error
}

// Writer serializes values in one Format to an io.Writer.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter returns a Writer for w. Unknown formats fall back to JSON.
func NewWriter(format Format, w io.Writer) *Writer {
	if format.IsUnknown() {
		slog.Warn("unknown output format, using json", slog.String("format", string(format)))
		format = FormatJSON
	}
	if w == nil {
		w = os.Stdout
	}
	return &Writer{format: format, output: w}
}

// NewStdoutWriter returns a Writer for stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a Writer for path, or for stdout when path
// is empty or "-".
func NewFileWriterOrStdout(format Format, path string) (Serializer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == StdoutURI {
		return NewStdoutWriter(format), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Close closes the underlying file, if any. It is safe to call repeatedly.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

// Serialize writes v in the writer's format.
func (w *Writer) Serialize(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch w.format {
	case FormatYAML:
		enc := yaml.NewEncoder(w.output)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return w.writeTable(v)
	default:
		enc := json.NewEncoder(w.output)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		return nil
	}
}

func (w *Writer) writeTable(v any) error {
	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)

	switch t := v.(type) {
	case *record.Table:
		fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
		for _, r := range t.Records {
			cells := make([]string, len(t.Columns))
			for i, c := range t.Columns {
				if val, ok := r[c]; ok {
					cells[i] = val.String()
				} else {
					cells[i] = "-"
				}
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
	case record.Record:
		fmt.Fprintln(tw, "FIELD\tVALUE")
		for _, k := range t.Keys() {
			fmt.Fprintf(tw, "%s\t%s\n", k, t[k])
		}
	default:
		flat, err := flatten(v)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(flat))
		for k := range flat {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(tw, "FIELD\tVALUE")
		for _, k := range keys {
			fmt.Fprintf(tw, "%s\t%s\n", k, flat[k])
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

// flatten converts v to dotted field paths via its JSON form.
func flatten(v any) (map[string]string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize to table: %w", err)
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return nil, fmt.Errorf("failed to serialize to table: %w", err)
	}

	out := make(map[string]string)
	var walk func(prefix string, n any)
	walk = func(prefix string, n any) {
		switch n := n.(type) {
		case map[string]any:
			for k, child := range n {
				p := k
				if prefix != "" {
					p = prefix + "." + k
				}
				walk(p, child)
			}
		case []any:
			for i, child := range n {
				walk(fmt.Sprintf("%s[%d]", prefix, i), child)
			}
		case nil:
			out[prefix] = ""
		default:
			out[prefix] = fmt.Sprint(n)
		}
	}
	walk("", generic)
	return out, nil
}
