package export

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/matst80/slask-dashboard/pkg/types"
)

const FileName = "report.csv"

type ReportSource interface {
	ReportCsv(ctx context.Context, filters types.ReportFilters, w io.Writer) (int64, error)
}

// Exporter downloads the CSV report for the filters selected at call time.
type Exporter struct {
	Source ReportSource
}

// Export writes <dir>/report.csv and returns its path and size. A partial
// file is removed when the download fails.
func (e *Exporter) Export(ctx context.Context, state *types.FilterState, dir string) (string, int64, error) {
	filters := state.Report()
	path := filepath.Join(dir, FileName)
	tmp, err := os.CreateTemp(dir, FileName+".*")
	if err != nil {
		return "", 0, fmt.Errorf("create report file: %w", err)
	}
	n, err := e.Source.ReportCsv(ctx, filters, tmp)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", 0, fmt.Errorf("download report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", 0, err
	}
	log.Printf("export: wrote %d bytes to %s", n, path)
	return path, n, nil
}
