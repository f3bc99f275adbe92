// Package worksheet holds the rows and bounds of one report while they are
// being edited, and writes changes back through the REST client.
package worksheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timereport/internal/domain"
)

var (
	// ErrNoReport indicates there is no report to load rows for.
	ErrNoReport = errors.New("no report")

	// ErrIndex indicates a row index outside the sheet.
	ErrIndex = errors.New("row index out of range")
)

// Backend is the part of the REST client a Sheet needs. Rows and NewRow
// serve the active report; Items and Template serve a report by id.
type Backend interface {
	Rows(ctx context.Context) ([]*domain.Row, error)
	NewRow(ctx context.Context) (*domain.Row, error)
	Globals(ctx context.Context) (domain.Globals, error)
	Report(ctx context.Context, id int64) (*domain.Report, error)
	Items(ctx context.Context, reportID int64) ([]*domain.Row, error)
	Template(ctx context.Context, reportID int64) (*domain.Row, error)
	PutItem(ctx context.Context, row *domain.Row) (int64, error)
	PatchItem(ctx context.Context, row *domain.Row) error
	DeleteItem(ctx context.Context, reportID, id int64) error
}

// Sheet owns the rows of one report. It is not safe for concurrent use.
type Sheet struct {
	backend  Backend
	reportID int64
	// active follows the most recent report instead of a fixed id.
	active bool
	globals  domain.Globals
	rows     []*domain.Row

	// touched holds rows whose untracked fields changed.
	touched map[*domain.Row]bool
}

// New creates an empty sheet for reportID. Zero selects the active report
// on Load.
func New(backend Backend, reportID int64) *Sheet {
	return &Sheet{
		backend:  backend,
		reportID: reportID,
		active:   reportID == 0,
		touched:  map[*domain.Row]bool{},
	}
}

// Load fetches globals and rows. On failure the sheet keeps its previous
// contents.
func (s *Sheet) Load(ctx context.Context) error {
	g, err := s.backend.Globals(ctx)
	if err != nil {
		return fmt.Errorf("loading globals: %w", err)
	}
	var rows []*domain.Row
	id := s.reportID
	if s.active {
		if id = g.ReportID; id == 0 {
			return ErrNoReport
		}
		rows, err = s.backend.Rows(ctx)
	} else {
		if id != g.ReportID {
			rep, err := s.backend.Report(ctx, id)
			if err != nil {
				return fmt.Errorf("loading report %d: %w", id, err)
			}
			g.ReportID, g.Title = rep.ID, rep.Title
			g.MinDate, g.MaxDate = rep.StartDate, rep.EndDate
		}
		rows, err = s.backend.Items(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("loading rows: %w", err)
	}
	for _, r := range rows {
		r.ReportID = id
		r.MarkSaved()
	}

	s.reportID = id
	s.globals = g
	s.rows = rows
	s.touched = map[*domain.Row]bool{}
	return nil
}

func (s *Sheet) ReportID() int64 { return s.reportID }

func (s *Sheet) Globals() domain.Globals { return s.globals }

func (s *Sheet) Len() int { return len(s.rows) }

// Rows returns the rows in display order. The slice is a copy; the rows are
// not.
func (s *Sheet) Rows() []*domain.Row {
	out := make([]*domain.Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Row returns the row at index.
func (s *Sheet) Row(index int) (*domain.Row, error) {
	if index < 0 || index >= len(s.rows) {
		return nil, fmt.Errorf("%w: %d", ErrIndex, index)
	}
	return s.rows[index], nil
}

// Add appends the backend's template for the next row, flagged as new, and
// returns its index.
func (s *Sheet) Add(ctx context.Context) (int, error) {
	if s.reportID == 0 {
		return 0, ErrNoReport
	}
	var row *domain.Row
	var err error
	if s.active {
		row, err = s.backend.NewRow(ctx)
	} else {
		row, err = s.backend.Template(ctx, s.reportID)
	}
	if err != nil {
		return 0, fmt.Errorf("fetching new row: %w", err)
	}
	row.ID = 0
	row.ReportID = s.reportID
	row.MarkNew()
	s.rows = append(s.rows, row)
	return len(s.rows) - 1, nil
}

// Edit parses value into the tracked field and flags it. Invalid input
// leaves the row unchanged.
func (s *Sheet) Edit(index int, field domain.Field, value string) error {
	row, err := s.Row(index)
	if err != nil {
		return err
	}
	return row.Set(field, value)
}

func (s *Sheet) SetRemark(index int, remark string) error {
	row, err := s.Row(index)
	if err != nil {
		return err
	}
	row.Remark = remark
	s.touched[row] = true
	return nil
}

func (s *Sheet) SetWeek(index int, w domain.Week) error {
	row, err := s.Row(index)
	if err != nil {
		return err
	}
	if !w.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidWeek, int(w))
	}
	row.Week = w
	s.touched[row] = true
	return nil
}

func (s *Sheet) needsSave(r *domain.Row) bool {
	return r.NeedsSave() || s.touched[r]
}

// Dirty returns the number of rows with unsaved changes.
func (s *Sheet) Dirty() int {
	n := 0
	for _, r := range s.rows {
		if s.needsSave(r) {
			n++
		}
	}
	return n
}

// Save writes every changed row in order: new rows whole, existing rows as
// a patch of their flagged fields. It stops at the first failure; rows
// saved before it stay saved.
func (s *Sheet) Save(ctx context.Context) error {
	for i, r := range s.rows {
		if !s.needsSave(r) {
			continue
		}
		if err := r.ValidateForSave(); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		if r.IsNew() {
			id, err := s.backend.PutItem(ctx, r)
			if err != nil {
				return fmt.Errorf("saving row %d: %w", i+1, err)
			}
			r.ID = id
		} else if err := s.backend.PatchItem(ctx, r); err != nil {
			return fmt.Errorf("saving row %d: %w", i+1, err)
		}
		r.MarkSaved()
		delete(s.touched, r)
	}
	return nil
}

// Remove deletes the row at index, on the backend too when it was stored.
func (s *Sheet) Remove(ctx context.Context, index int) error {
	row, err := s.Row(index)
	if err != nil {
		return err
	}
	if !row.IsNew() {
		if err := s.backend.DeleteItem(ctx, s.reportID, row.ID); err != nil {
			return fmt.Errorf("deleting row %d: %w", index+1, err)
		}
	}
	delete(s.touched, row)
	s.rows = append(s.rows[:index], s.rows[index+1:]...)
	return nil
}

// Warnings lists rows outside the sheet's date or time bounds.
func (s *Sheet) Warnings() []string {
	var out []string
	for i, r := range s.rows {
		if !r.Date.IsZero() && !s.globals.AllowsDate(r.Date) {
			out = append(out, fmt.Sprintf("row %d: %s outside %s..%s", i+1,
				domain.FormatDate(r.Date), domain.FormatDate(s.globals.MinDate), domain.FormatDate(s.globals.MaxDate)))
		}
		if !s.globals.AllowsTime(r.Start) || !s.globals.AllowsTime(r.End) {
			out = append(out, fmt.Sprintf("row %d: %s-%s outside %s-%s", i+1,
				r.Start, r.End, s.globals.MinTime, s.globals.MaxTime))
		}
	}
	return out
}

// Total sums the worked time of all rows.
func (s *Sheet) Total() time.Duration {
	var d time.Duration
	for _, r := range s.rows {
		d += r.Duration()
	}
	return d
}
