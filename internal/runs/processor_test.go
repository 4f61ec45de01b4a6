package runs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleLog = `2025-03-14 09:26:53 - pico-train - INFO - d_model: 512
2025-03-14 09:26:53 - pico-train - INFO - lr: 3e-4
2025-03-14 09:27:00 - pico-train - INFO - Step 100 -- 🔄 Training Metrics
2025-03-14 09:27:00 - pico-train - INFO - ├── Loss: 2.5
2025-03-14 09:27:00 - pico-train - INFO - ├── Learning Rate: 3e-4
2025-03-14 09:27:00 - pico-train - INFO - └── Inf/NaN count: 0
2025-03-14 09:27:01 - pico-train - INFO - Step 100 -- 📊 Evaluation Results
2025-03-14 09:27:01 - pico-train - INFO - └── paloma: 7.25
`

const evalOnlyLog = `2025-03-14 09:26:53 - pico-train - INFO - max_steps: 1000
2025-03-14 09:27:01 - pico-train - INFO - Step 100 -- 📊 Evaluation Results
2025-03-14 09:27:01 - pico-train - INFO - └── paloma: 7.25
`

// writeLog creates runDir/logs/name with content and the given modification time.
func writeLog(t *testing.T, runDir, name, content string, modTime time.Time) {
	t.Helper()

	logDir := filepath.Join(runDir, DefaultLogDir)
	if err := os.MkdirAll(logDir, 0750); err != nil {
		t.Fatalf("failed to create log dir: %v", err)
	}
	path := filepath.Join(logDir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write log: %v", err)
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("failed to set mtime: %v", err)
	}
}

func TestProcessorProcess(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("builds record from log", func(t *testing.T) {
		t.Parallel()

		runDir := filepath.Join(t.TempDir(), "run-a")
		writeLog(t, runDir, "train.log", sampleLog, base)

		record, err := NewProcessor().Process(context.Background(), runDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record == nil {
			t.Fatal("expected a record")
		}
		if record.RunName != "run-a" {
			t.Errorf("expected run name 'run-a', got %q", record.RunName)
		}
		if record.LogFile != "train.log" {
			t.Errorf("expected log file 'train.log', got %q", record.LogFile)
		}
		if len(record.TrainingMetrics) != 1 || record.TrainingMetrics[0].Step != 100 {
			t.Errorf("unexpected training metrics: %+v", record.TrainingMetrics)
		}
		if len(record.EvaluationResults) != 1 || record.EvaluationResults[0].Paloma != 7.25 {
			t.Errorf("unexpected evaluation results: %+v", record.EvaluationResults)
		}
		if len(record.Config) != 2 || record.Config["d_model"].Int() != 512 {
			t.Errorf("unexpected config: %v", record.Config)
		}
	})

	t.Run("uses most recently modified log", func(t *testing.T) {
		t.Parallel()

		runDir := filepath.Join(t.TempDir(), "run-b")
		writeLog(t, runDir, "new.log", sampleLog, base.Add(time.Hour))
		writeLog(t, runDir, "old.log", sampleLog, base)

		record, err := NewProcessor().Process(context.Background(), runDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record == nil || record.LogFile != "new.log" {
			t.Errorf("expected new.log to be selected, got %+v", record)
		}
	})

	t.Run("newest log without training data discards run", func(t *testing.T) {
		t.Parallel()

		runDir := filepath.Join(t.TempDir(), "run-c")
		writeLog(t, runDir, "old.log", sampleLog, base)
		writeLog(t, runDir, "new.log", evalOnlyLog, base.Add(time.Hour))

		record, err := NewProcessor().Process(context.Background(), runDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record != nil {
			t.Errorf("expected no record, got %+v", record)
		}
	})

	t.Run("missing log directory is no data", func(t *testing.T) {
		t.Parallel()

		runDir := t.TempDir()
		record, err := NewProcessor().Process(context.Background(), runDir)
		if err != nil || record != nil {
			t.Errorf("expected (nil, nil), got (%+v, %v)", record, err)
		}
	})

	t.Run("log directory that is a file is no data", func(t *testing.T) {
		t.Parallel()

		runDir := t.TempDir()
		if err := os.WriteFile(filepath.Join(runDir, DefaultLogDir), []byte(sampleLog), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		record, err := NewProcessor().Process(context.Background(), runDir)
		if err != nil || record != nil {
			t.Errorf("expected (nil, nil), got (%+v, %v)", record, err)
		}
	})

	t.Run("no files with log extension is no data", func(t *testing.T) {
		t.Parallel()

		runDir := t.TempDir()
		writeLog(t, runDir, "train.txt", sampleLog, base)
		if err := os.MkdirAll(filepath.Join(runDir, DefaultLogDir, "nested.log"), 0750); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}

		record, err := NewProcessor().Process(context.Background(), runDir)
		if err != nil || record != nil {
			t.Errorf("expected (nil, nil), got (%+v, %v)", record, err)
		}
	})

	t.Run("custom layout", func(t *testing.T) {
		t.Parallel()

		runDir := filepath.Join(t.TempDir(), "run-d")
		logDir := filepath.Join(runDir, "output")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(logDir, "run.txt"), []byte(sampleLog), 0600); err != nil {
			t.Fatalf("failed to write log: %v", err)
		}

		p := NewProcessor(WithLogDir("output"), WithLogExtension(".txt"))
		record, err := p.Process(context.Background(), runDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record == nil || record.LogFile != "run.txt" {
			t.Errorf("expected run.txt to be selected, got %+v", record)
		}
	})

	t.Run("invalid UTF-8 is an error", func(t *testing.T) {
		t.Parallel()

		runDir := t.TempDir()
		writeLog(t, runDir, "bad.log", sampleLog+"\xff\xfe\n", base)

		_, err := NewProcessor().Process(context.Background(), runDir)
		if !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("expected ErrInvalidEncoding, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		runDir := t.TempDir()
		writeLog(t, runDir, "train.log", sampleLog, base)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewProcessor().Process(ctx, runDir)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestSelectLatest(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		if _, ok := SelectLatest(nil); ok {
			t.Error("expected no selection for empty input")
		}
	})

	t.Run("newest wins", func(t *testing.T) {
		t.Parallel()
		got, ok := SelectLatest([]LogFile{
			{Name: "b.log", ModTime: base},
			{Name: "a.log", ModTime: base.Add(time.Second)},
			{Name: "c.log", ModTime: base.Add(-time.Second)},
		})
		if !ok || got.Name != "a.log" {
			t.Errorf("expected a.log, got %+v", got)
		}
	})

	t.Run("ties are broken by name", func(t *testing.T) {
		t.Parallel()
		forward, _ := SelectLatest([]LogFile{{Name: "a.log", ModTime: base}, {Name: "b.log", ModTime: base}})
		reverse, _ := SelectLatest([]LogFile{{Name: "b.log", ModTime: base}, {Name: "a.log", ModTime: base}})
		if forward.Name != "b.log" || reverse.Name != "b.log" {
			t.Errorf("expected b.log in both orders, got %q and %q", forward.Name, reverse.Name)
		}
	})
}
