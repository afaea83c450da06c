// Package worker renders queued statement requests to XLSX files on disk.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finpro/internal/amqp"
	"finpro/internal/core"
	"finpro/internal/report"
	"finpro/internal/store"
)

// StatementWorker consumes statement requests and writes one workbook per
// request into the export directory.
type StatementWorker struct {
	loader    store.TransactionLoader
	exportDir string
	now       func() time.Time
}

func NewStatementWorker(loader store.TransactionLoader, exportDir string) *StatementWorker {
	return &StatementWorker{
		loader:    loader,
		exportDir: exportDir,
		now:       time.Now,
	}
}

// HandleStatementRequest renders one request. A returned error makes the
// consumer requeue the message, so only transient failures should bubble up;
// a malformed period is dropped with a log line instead.
func (w *StatementWorker) HandleStatementRequest(msg *amqp.StatementRequestMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	period := core.Period{Year: msg.Year, Month: time.Month(msg.Month)}
	if msg.Year < 1 || msg.Month < 1 || msg.Month > 12 {
		slog.Warn("Dropping statement request with invalid period",
			"component", "worker",
			"user", msg.UserKey,
			"year", msg.Year,
			"month", msg.Month)
		return nil
	}

	txs, err := w.loader.Load(ctx, msg.UserKey)
	if err != nil {
		return fmt.Errorf("load transactions for %s: %w", msg.UserKey, err)
	}

	rep, err := report.Assemble(core.FilterByPeriod(txs, &period), period.Label(), w.now())
	if err != nil {
		return fmt.Errorf("assemble statement %s %s: %w", msg.UserKey, period, err)
	}

	if err := os.MkdirAll(w.exportDir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	name := fmt.Sprintf("laporan-%s-%s.xlsx", msg.UserKey, period)
	path := filepath.Join(w.exportDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create statement file: %w", err)
	}
	defer f.Close()

	if err := report.WriteXLSX(f, rep); err != nil {
		// Remove the partial file so a retry starts clean.
		os.Remove(path)
		return fmt.Errorf("render statement %s: %w", path, err)
	}

	slog.Info("Statement rendered",
		"component", "worker",
		"operation", "export",
		"user", msg.UserKey,
		"period", period.String(),
		"path", path,
		"rows", len(rep.Rows))
	return nil
}

// SweepOldExports deletes rendered statements older than retention. Runs on
// every tick until ctx is done.
func (w *StatementWorker) SweepOldExports(ctx context.Context, interval, retention time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed, err := w.sweepOnce(retention)
			if err != nil {
				slog.Warn("Export sweep failed",
					"component", "worker",
					"export_dir", w.exportDir,
					"error", err)
				continue
			}
			if removed > 0 {
				slog.Info("Swept old exports",
					"component", "worker",
					"export_dir", w.exportDir,
					"removed", removed)
			}
		}
	}
}

func (w *StatementWorker) sweepOnce(retention time.Duration) (int, error) {
	entries, err := os.ReadDir(w.exportDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read export directory: %w", err)
	}

	cutoff := w.now().Add(-retention)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".xlsx" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(w.exportDir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
