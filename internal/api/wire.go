package api

import (
	"fmt"

	"github.com/alexanderramin/timereport/internal/domain"
	"github.com/alexanderramin/timereport/internal/service"
)

// Row is the wire form of a table row. Times are HH:MM; decoding also
// accepts HH:MM:SS and drops the seconds.
type Row struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Day        string `json:"day"`
	TypeOfWeek int    `json:"type_of_week"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Remark     string `json:"remark"`
}

// RowPatch carries the changed fields of an existing row. Absent fields
// stay unchanged.
type RowPatch struct {
	Name       *string `json:"name,omitempty"`
	Day        *string `json:"day,omitempty"`
	Start      *string `json:"start,omitempty"`
	End        *string `json:"end,omitempty"`
	TypeOfWeek *int    `json:"type_of_week,omitempty"`
	Remark     *string `json:"remark,omitempty"`
}

type Report struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	WasPDFGenerated bool   `json:"was_pdf_generated"`
}

type Globals struct {
	ReportID int64  `json:"report_id"`
	Title    string `json:"title"`
	MinDate  string `json:"mindate"`
	MaxDate  string `json:"maxdate"`
	MinTime  string `json:"mintime"`
	MaxTime  string `json:"maxtime"`
}

type Employee struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	SortKey string `json:"sort_key,omitempty"`
}

type Holiday struct {
	Date  string `json:"date"`
	Title string `json:"title"`
}

type SummaryItem struct {
	Date       string `json:"date"`
	TypeOfWeek string `json:"type_of_week"`
	Hours      int    `json:"hours"`
	Minutes    int    `json:"minutes"`
	Remark     string `json:"remark"`
}

type EmployeeSummary struct {
	Name    string        `json:"name"`
	Hours   int           `json:"hours"`
	Minutes int           `json:"minutes"`
	Items   []SummaryItem `json:"items"`
}

type Summary struct {
	Title        string            `json:"title"`
	Employees    []EmployeeSummary `json:"employees"`
	TotalMinutes int               `json:"total_minutes"`
}

// IDResponse answers requests that create something.
type IDResponse struct {
	ID int64 `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func RowFromDomain(r *domain.Row) Row {
	return Row{
		ID:         r.ID,
		Name:       r.Name,
		Day:        domain.FormatDate(r.Date),
		TypeOfWeek: int(r.Week),
		Start:      r.Start.String(),
		End:        r.End.String(),
		Remark:     r.Remark,
	}
}

// ToDomain parses the wire row. The result carries no modification flags.
func (w Row) ToDomain(reportID int64) (*domain.Row, error) {
	day, err := domain.ParseDate(w.Day)
	if err != nil {
		return nil, err
	}
	start, err := domain.ParseClock(w.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := domain.ParseClock(w.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	week := domain.Week(w.TypeOfWeek)
	if !week.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidWeek, w.TypeOfWeek)
	}
	return &domain.Row{
		ID:       w.ID,
		ReportID: reportID,
		Name:     w.Name,
		Date:     day,
		Week:     week,
		Start:    start,
		End:      end,
		Remark:   w.Remark,
	}, nil
}

// ToService parses the supplied fields.
func (p RowPatch) ToService() (service.RowPatch, error) {
	var out service.RowPatch
	out.Name = p.Name
	out.Remark = p.Remark
	if p.Day != nil {
		d, err := domain.ParseDate(*p.Day)
		if err != nil {
			return out, err
		}
		out.Date = &d
	}
	if p.Start != nil {
		c, err := domain.ParseClock(*p.Start)
		if err != nil {
			return out, fmt.Errorf("start: %w", err)
		}
		out.Start = &c
	}
	if p.End != nil {
		c, err := domain.ParseClock(*p.End)
		if err != nil {
			return out, fmt.Errorf("end: %w", err)
		}
		out.End = &c
	}
	if p.TypeOfWeek != nil {
		w := domain.Week(*p.TypeOfWeek)
		if !w.Valid() {
			return out, fmt.Errorf("%w: %d", domain.ErrInvalidWeek, *p.TypeOfWeek)
		}
		out.Week = &w
	}
	return out, nil
}

func ReportFromDomain(r *domain.Report) Report {
	return Report{
		ID:              r.ID,
		Title:           r.Title,
		StartDate:       domain.FormatDate(r.StartDate),
		EndDate:         domain.FormatDate(r.EndDate),
		WasPDFGenerated: r.PDFGenerated,
	}
}

func (w Report) ToDomain() (*domain.Report, error) {
	start, err := domain.ParseDate(w.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDate(w.EndDate)
	if err != nil {
		return nil, err
	}
	return &domain.Report{
		ID:           w.ID,
		Title:        w.Title,
		StartDate:    start,
		EndDate:      end,
		PDFGenerated: w.WasPDFGenerated,
	}, nil
}

func GlobalsFromDomain(g domain.Globals) Globals {
	return Globals{
		ReportID: g.ReportID,
		Title:    g.Title,
		MinDate:  domain.FormatDate(g.MinDate),
		MaxDate:  domain.FormatDate(g.MaxDate),
		MinTime:  g.MinTime.String(),
		MaxTime:  g.MaxTime.String(),
	}
}

// ToDomain parses the wire globals, truncating any seconds.
func (w Globals) ToDomain() (domain.Globals, error) {
	var g domain.Globals
	var err error
	g.ReportID, g.Title = w.ReportID, w.Title
	if g.MinDate, err = domain.ParseDate(w.MinDate); err != nil {
		return g, err
	}
	if g.MaxDate, err = domain.ParseDate(w.MaxDate); err != nil {
		return g, err
	}
	if g.MinTime, err = domain.ParseClock(w.MinTime); err != nil {
		return g, fmt.Errorf("mintime: %w", err)
	}
	if g.MaxTime, err = domain.ParseClock(w.MaxTime); err != nil {
		return g, fmt.Errorf("maxtime: %w", err)
	}
	return g, nil
}

func SummaryFromDomain(s *domain.ReportSummary) Summary {
	out := Summary{Title: s.Report.Title, TotalMinutes: s.TotalMinutes(), Employees: []EmployeeSummary{}}
	for _, e := range s.Employees {
		es := EmployeeSummary{Name: e.Name, Hours: e.Hours, Minutes: e.Minutes}
		for _, l := range e.Lines {
			es.Items = append(es.Items, SummaryItem{
				Date:       domain.FormatDate(l.Date),
				TypeOfWeek: l.Week.String(),
				Hours:      l.Hours,
				Minutes:    l.Minutes,
				Remark:     l.Remark,
			})
		}
		out.Employees = append(out.Employees, es)
	}
	return out
}
