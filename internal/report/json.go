package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nao1215/logmetrics/internal/model"
)

// JSONWriter outputs reports in JSON format.
// HTML escaping is disabled so run names and log text are written verbatim.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in JSON format followed by a newline.
func (w *JSONWriter) Write(report *model.Report) (int, error) {
	data, err := w.marshal(report)
	if err != nil {
		return 0, err
	}
	return w.output.Write(data)
}

// marshal encodes v with the writer's settings.
func (w *JSONWriter) marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.indent {
		enc.SetIndent(w.indentPrefix, w.indentString)
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return buf.Bytes(), nil
}

// Marshal returns the pretty-printed JSON encoding of report, exactly as
// written to data.json.
func Marshal(report *model.Report) ([]byte, error) {
	return NewJSONWriter(io.Discard, WithPrettyPrint()).marshal(report)
}

// ReadJSON decodes a report previously written by JSONWriter.
func ReadJSON(r io.Reader) (*model.Report, error) {
	var report model.Report
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}

// ReadJSONFile decodes the report stored at path.
func ReadJSONFile(path string) (*model.Report, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided report path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	return ReadJSON(f)
}
