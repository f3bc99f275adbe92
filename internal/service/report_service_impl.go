package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timereport/internal/domain"
	"github.com/alexanderramin/timereport/internal/repository"
)

type reportService struct {
	reports  repository.ReportRepo
	items    repository.ItemRepo
	window   func() TimeWindow
	observer UseCaseObserver
	today    func() time.Time
}

// NewReportService creates a ReportService. window is consulted on every
// Globals call so configuration reloads take effect immediately.
func NewReportService(reports repository.ReportRepo, items repository.ItemRepo, window func() TimeWindow, observers ...UseCaseObserver) ReportService {
	return &reportService{
		reports:  reports,
		items:    items,
		window:   window,
		observer: useCaseObserverOrNoop(observers),
		today:    func() time.Time { return domain.Day(time.Now()) },
	}
}

func (s *reportService) List(ctx context.Context) ([]*domain.Report, error) {
	return s.reports.List(ctx)
}

func (s *reportService) Get(ctx context.Context, id int64) (*domain.Report, error) {
	return s.reports.GetByID(ctx, id)
}

func (s *reportService) Active(ctx context.Context) (*domain.Report, error) {
	return s.reports.Latest(ctx)
}

func (s *reportService) Add(ctx context.Context, r *domain.Report) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "add-report", startedAt, err, map[string]any{"title": r.Title})
	}()

	if err = validateReport(r); err != nil {
		return err
	}
	return s.reports.Create(ctx, r)
}

func (s *reportService) Update(ctx context.Context, r *domain.Report) error {
	if err := validateReport(r); err != nil {
		return err
	}
	return s.reports.Update(ctx, r)
}

func validateReport(r *domain.Report) error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return fmt.Errorf("%w: report title is empty", domain.ErrMissingValue)
	}
	if r.StartDate.IsZero() {
		return fmt.Errorf("%w: report start date is missing", domain.ErrInvalidDate)
	}
	if !r.EndDate.IsZero() && r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("%w: end %s before start %s", domain.ErrInvalidDate,
			domain.FormatDate(r.EndDate), domain.FormatDate(r.StartDate))
	}
	return nil
}

func (s *reportService) Template(ctx context.Context) (*domain.Report, error) {
	last, ok, err := s.reports.MaxEndDate(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		last = domain.FirstReportStart
	}
	return &domain.Report{
		StartDate: last.AddDate(0, 0, 1),
		EndDate:   s.today(),
	}, nil
}

func (s *reportService) CreateFromTitle(ctx context.Context, title string) (*domain.Report, error) {
	tmpl, err := s.Template(ctx)
	if err != nil {
		return nil, err
	}
	r := &domain.Report{Title: title, StartDate: tmpl.StartDate}
	if err := s.Add(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *reportService) MarkPDFGenerated(ctx context.Context, id int64) error {
	return s.reports.SetPDFGenerated(ctx, id, true)
}

func (s *reportService) Summary(ctx context.Context, id int64) (*domain.ReportSummary, error) {
	r, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.items.ListByReport(ctx, id)
	if err != nil {
		return nil, err
	}
	sum := domain.Summarize(*r, rows)
	return &sum, nil
}

func (s *reportService) Globals(ctx context.Context) (domain.Globals, error) {
	w := s.window()
	g := domain.Globals{MinTime: w.Min, MaxTime: w.Max}

	r, err := s.reports.Latest(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return g, nil
	}
	if err != nil {
		return domain.Globals{}, err
	}
	g.ReportID = r.ID
	g.Title = r.Title
	g.MinDate = r.StartDate
	g.MaxDate = r.EndDate
	return g, nil
}
