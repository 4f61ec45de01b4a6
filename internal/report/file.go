package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/logmetrics/internal/model"
)

// filePerm is the permission of written report files. Reports are served
// to the dashboard, so they are readable by everyone.
const filePerm = 0644

// WriterFactory creates a Writer for the given destination.
type WriterFactory func(output io.Writer) Writer

// JSONFile is the WriterFactory for data.json.
func JSONFile(output io.Writer) Writer {
	return NewJSONWriter(output, WithPrettyPrint())
}

// MarkdownFile is the WriterFactory for Markdown summaries.
func MarkdownFile(output io.Writer) Writer {
	return NewMarkdownWriter(output)
}

// WriteFile renders report with the writer from factory and stores it at
// path, replacing any existing file. Missing parent directories are created.
// The content is written to a temporary file first and renamed into place,
// so readers never observe a partially written report.
func WriteFile(path string, report *model.Report, factory WriterFactory) (int, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return 0, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpPath)
	}()

	n, err := factory(tmp).Write(report)
	if err != nil {
		_ = tmp.Close()
		return n, fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return n, fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		return n, fmt.Errorf("failed to set report permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return n, fmt.Errorf("failed to move report into place: %w", err)
	}
	return n, nil
}
