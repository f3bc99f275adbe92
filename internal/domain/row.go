package domain

import (
	"fmt"
	"strings"
	"time"
)

// Default working hours for a blank row.
var (
	DefaultStart = NewClock(13, 0)
	DefaultEnd   = NewClock(15, 30)
)

// Row is one billable attendance record: who worked on which day, from when to when.
// Modified tracks which of the name/date/start/end fields changed since the row
// was loaded or last saved. Week and Remark are not tracked.
type Row struct {
	ID         int64
	ReportID   int64
	EmployeeID int64
	Name       string
	Date       time.Time
	Week       Week
	Start      Clock
	End        Clock
	Remark     string

	Modified Modifications
}

// NewRow returns a blank, unsaved row. Every tracked field is flagged since
// nothing of it has been persisted yet.
func NewRow(reportID int64) *Row {
	r := &Row{ReportID: reportID}
	r.MarkNew()
	return r
}

// TemplateRow returns the row offered when a report has no rows yet.
func TemplateRow(reportID int64, day time.Time, week Week) *Row {
	return &Row{
		ReportID: reportID,
		Date:     day,
		Week:     week,
		Start:    DefaultStart,
		End:      DefaultEnd,
	}
}

// MarkNew flags every tracked field, forcing a full write.
func (r *Row) MarkNew() { r.Modified.SetAll() }

// MarkSaved clears every flag after the caller confirmed a durable save.
func (r *Row) MarkSaved() { r.Modified.ClearAll() }

// IsNew reports whether the row has never been stored.
func (r *Row) IsNew() bool { return r.ID == 0 }

// NeedsSave reports whether the row has anything to write back.
func (r *Row) NeedsSave() bool { return r.IsNew() || r.Modified.Any() }

func (r *Row) SetName(name string) {
	r.Name = strings.TrimSpace(name)
	r.Modified[FieldName] = true
}

func (r *Row) SetDate(day time.Time) {
	r.Date = day
	r.Modified[FieldDate] = true
}

func (r *Row) SetStart(c Clock) {
	r.Start = c
	r.Modified[FieldStart] = true
}

func (r *Row) SetEnd(c Clock) {
	r.End = c
	r.Modified[FieldEnd] = true
}

// Set parses value for field f and stores it. Invalid input leaves the row
// and its flags untouched.
func (r *Row) Set(f Field, value string) error {
	switch f {
	case FieldName:
		r.SetName(value)
	case FieldDate:
		d, err := ParseDate(value)
		if err != nil {
			return err
		}
		r.SetDate(d)
	case FieldStart:
		c, err := ParseClock(value)
		if err != nil {
			return err
		}
		r.SetStart(c)
	case FieldEnd:
		c, err := ParseClock(value)
		if err != nil {
			return err
		}
		r.SetEnd(c)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidField, f)
	}
	return nil
}

// SetByName is Set for a field given by its wire name.
func (r *Row) SetByName(name, value string) error {
	f, err := ParseField(name)
	if err != nil {
		return err
	}
	return r.Set(f, value)
}

// Value renders the current value of field f.
func (r *Row) Value(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldDate:
		return FormatDate(r.Date)
	case FieldStart:
		return r.Start.String()
	case FieldEnd:
		return r.End.String()
	}
	return ""
}

// Duration is the worked time, or zero when a bound is missing or reversed.
func (r *Row) Duration() time.Duration {
	d := r.End.Sub(r.Start)
	if d < 0 {
		return 0
	}
	return d
}

// ValidateForSave checks the fields storage requires.
func (r *Row) ValidateForSave() error {
	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Date.IsZero() {
		missing = append(missing, "date")
	}
	if r.Start.IsZero() {
		missing = append(missing, "start")
	}
	if r.End.IsZero() {
		missing = append(missing, "end")
	}
	if !r.Week.Valid() {
		return fmt.Errorf("%w: week %d", ErrInvalidWeek, int(r.Week))
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteRow, strings.Join(missing, ", "))
	}
	return nil
}

// Clone returns a copy of r including its flags.
func (r *Row) Clone() *Row {
	c := *r
	return &c
}
