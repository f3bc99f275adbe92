package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/timereport/internal/domain"
	"github.com/alexanderramin/timereport/internal/export"
	"github.com/alexanderramin/timereport/internal/repository"
)

type exportService struct {
	reports   repository.ReportRepo
	items     repository.ItemRepo
	compiler  PDFCompiler
	exportDir func() string
	logger    *slog.Logger
	observer  UseCaseObserver
}

// NewExportService creates an ExportService writing files below the
// directory returned by exportDir.
func NewExportService(reports repository.ReportRepo, items repository.ItemRepo, compiler PDFCompiler, exportDir func() string, logger *slog.Logger, observers ...UseCaseObserver) ExportService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &exportService{
		reports:   reports,
		items:     items,
		compiler:  compiler,
		exportDir: exportDir,
		logger:    logger,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *exportService) load(ctx context.Context, reportID int64) (*domain.Report, []*domain.Row, error) {
	r, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.items.ListByReport(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}
	return r, rows, nil
}

func (s *exportService) WriteCSV(ctx context.Context, reportID int64, w io.Writer) error {
	_, rows, err := s.load(ctx, reportID)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, rows)
}

func (s *exportService) WriteLaTeX(ctx context.Context, reportID int64, w io.Writer) error {
	r, rows, err := s.load(ctx, reportID)
	if err != nil {
		return err
	}
	return export.RenderLaTeX(w, domain.Summarize(*r, rows))
}

func (s *exportService) Check(ctx context.Context, reportID int64) ([]RowWarning, error) {
	_, rows, err := s.load(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return checkRows(rows), nil
}

func checkRows(rows []*domain.Row) []RowWarning {
	var out []RowWarning
	for _, r := range rows {
		for _, msg := range domain.CheckRow(r) {
			out = append(out, RowWarning{Row: r, Message: msg})
		}
	}
	return out
}

func (s *exportService) PDF(ctx context.Context, reportID int64) (path string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"report_id": reportID}
	defer func() { observe(ctx, s.observer, "export-pdf", startedAt, err, fields) }()

	r, rows, err := s.load(ctx, reportID)
	if err != nil {
		return "", err
	}
	for _, w := range checkRows(rows) {
		s.logger.WarnContext(ctx, "suspicious row",
			"report_id", reportID,
			"item_id", w.Row.ID,
			"name", w.Row.Name,
			"day", domain.FormatDate(w.Row.Date),
			"warning", w.Message,
		)
	}

	outDir := s.exportDir()
	if err = os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	stem := r.FileStem()

	if err = writeFile(filepath.Join(outDir, stem+".csv"), func(w io.Writer) error {
		return export.WriteCSV(w, rows)
	}); err != nil {
		return "", err
	}

	tmp, err := os.MkdirTemp("", "timereport-pdf-")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	texPath := filepath.Join(tmp, stem+".tex")
	if err = writeFile(texPath, func(w io.Writer) error {
		return export.RenderLaTeX(w, domain.Summarize(*r, rows))
	}); err != nil {
		return "", err
	}

	built, err := s.compiler.Compile(ctx, texPath)
	if err != nil {
		return "", err
	}
	path = filepath.Join(outDir, stem+".pdf")
	if err = export.CopyFile(built, path); err != nil {
		return "", err
	}
	if err = s.reports.SetPDFGenerated(ctx, reportID, true); err != nil {
		return "", err
	}
	fields["path"] = path
	return path, nil
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	return nil
}
