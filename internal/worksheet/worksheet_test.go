package worksheet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/timereport/internal/domain"
)

var errDown = errors.New("backend down")

type fakeBackend struct {
	globals  domain.Globals
	reports  map[int64]*domain.Report
	items    map[int64][]*domain.Row
	template *domain.Row
	nextID   int64

	failGlobals bool
	failItems   bool
	failPutAt   int

	puts    []domain.Row
	patches []domain.Row
	deleted []int64
	calls   []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		globals: domain.Globals{
			ReportID: 1, Title: "Januar",
			MinDate: day("2018-01-08"), MaxDate: day("2018-02-28"),
			MinTime: domain.MustClock("12:30"), MaxTime: domain.MustClock("16:00"),
		},
		reports: map[int64]*domain.Report{
			1: {ID: 1, Title: "Januar", StartDate: day("2018-01-08"), EndDate: day("2018-02-28")},
			2: {ID: 2, Title: "Dezember", StartDate: day("2017-12-02"), EndDate: day("2018-01-07")},
		},
		items: map[int64][]*domain.Row{
			1: {
				{ID: 10, Name: "Jane Doe", Date: day("2018-01-10"), Start: domain.MustClock("13:00"), End: domain.MustClock("15:30")},
				{ID: 11, Name: "John Roe", Date: day("2018-01-11"), Start: domain.MustClock("13:00"), End: domain.MustClock("14:00")},
			},
			2: {
				{ID: 5, Name: "Jane Doe", Date: day("2017-12-04"), Start: domain.MustClock("13:00"), End: domain.MustClock("15:00")},
			},
		},
		template: &domain.Row{Name: "John Roe", Date: day("2018-01-12"), Week: domain.WeekB,
			Start: domain.MustClock("13:00"), End: domain.MustClock("14:00")},
		nextID: 100,
	}
}

func day(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (f *fakeBackend) Globals(context.Context) (domain.Globals, error) {
	if f.failGlobals {
		return domain.Globals{}, errDown
	}
	return f.globals, nil
}

func (f *fakeBackend) Report(_ context.Context, id int64) (*domain.Report, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, errDown
	}
	return r, nil
}

func (f *fakeBackend) Rows(context.Context) ([]*domain.Row, error) {
	f.calls = append(f.calls, "rows")
	return f.list(f.globals.ReportID)
}

func (f *fakeBackend) NewRow(context.Context) (*domain.Row, error) {
	f.calls = append(f.calls, "new_row")
	return f.template.Clone(), nil
}

func (f *fakeBackend) Items(_ context.Context, reportID int64) ([]*domain.Row, error) {
	f.calls = append(f.calls, "items")
	return f.list(reportID)
}

func (f *fakeBackend) list(reportID int64) ([]*domain.Row, error) {
	if f.failItems {
		return nil, errDown
	}
	var out []*domain.Row
	for _, r := range f.items[reportID] {
		out = append(out, r.Clone())
	}
	return out, nil
}

func (f *fakeBackend) Template(context.Context, int64) (*domain.Row, error) {
	f.calls = append(f.calls, "template")
	return f.template.Clone(), nil
}

func (f *fakeBackend) PutItem(_ context.Context, row *domain.Row) (int64, error) {
	if f.failPutAt > 0 && len(f.puts)+1 == f.failPutAt {
		return 0, errDown
	}
	f.puts = append(f.puts, *row)
	f.nextID++
	return f.nextID, nil
}

func (f *fakeBackend) PatchItem(_ context.Context, row *domain.Row) error {
	f.patches = append(f.patches, *row)
	return nil
}

func (f *fakeBackend) DeleteItem(_ context.Context, _, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func loaded(t *testing.T, b *fakeBackend, reportID int64) *Sheet {
	t.Helper()
	s := New(b, reportID)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestLoad_ActiveReport(t *testing.T) {
	s := loaded(t, newFakeBackend(), 0)

	assert.Equal(t, int64(1), s.ReportID())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 0, s.Dirty())
	assert.Equal(t, "Januar", s.Globals().Title)
	for _, r := range s.Rows() {
		assert.Equal(t, int64(1), r.ReportID)
	}
}

func TestLoad_OtherReportUsesItsBounds(t *testing.T) {
	s := loaded(t, newFakeBackend(), 2)

	g := s.Globals()
	assert.Equal(t, "Dezember", g.Title)
	assert.Equal(t, "2017-12-02", domain.FormatDate(g.MinDate))
	assert.Equal(t, "12:30", g.MinTime.String())
	assert.Equal(t, 1, s.Len())
}

func TestLoad_FailureKeepsPreviousState(t *testing.T) {
	b := newFakeBackend()
	s := loaded(t, b, 0)
	require.NoError(t, s.Edit(0, domain.FieldEnd, "16:00"))

	b.failItems = true
	err := s.Load(context.Background())
	require.ErrorIs(t, err, errDown)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Dirty(), "pending edit survives a failed reload")
	row, err := s.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "16:00", row.End.String())

	b.failItems = false
	b.failGlobals = true
	require.ErrorIs(t, s.Load(context.Background()), errDown)
	assert.Equal(t, "Januar", s.Globals().Title)
}

func TestLoad_NoReport(t *testing.T) {
	b := newFakeBackend()
	b.globals = domain.Globals{MinTime: domain.MustClock("12:30")}

	s := New(b, 0)
	assert.ErrorIs(t, s.Load(context.Background()), ErrNoReport)
	_, err := s.Add(context.Background())
	assert.ErrorIs(t, err, ErrNoReport)
}

func TestAdd_AppendsNewRow(t *testing.T) {
	s := loaded(t, newFakeBackend(), 0)

	idx, err := s.Add(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	row, err := s.Row(idx)
	require.NoError(t, err)
	assert.True(t, row.IsNew())
	for _, f := range domain.Fields() {
		ok, err := row.Modified.IsModified(f)
		require.NoError(t, err)
		assert.True(t, ok, f.String())
	}
	assert.Equal(t, 1, s.Dirty())
}

func TestActiveReportUsesRowsAndNewRow(t *testing.T) {
	b := newFakeBackend()
	s := loaded(t, b, 0)
	_, err := s.Add(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, []string{"rows", "new_row", "rows"}, b.calls)
	assert.Equal(t, int64(1), s.ReportID())
}

func TestReportByIDUsesItemsAndTemplate(t *testing.T) {
	b := newFakeBackend()
	s := loaded(t, b, 2)
	_, err := s.Add(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"items", "template"}, b.calls)
}

func TestEdit(t *testing.T) {
	s := loaded(t, newFakeBackend(), 0)

	require.NoError(t, s.Edit(1, domain.FieldDate, "2018-01-12"))
	row, _ := s.Row(1)
	assert.Equal(t, []domain.Field{domain.FieldDate}, row.Modified.Changed())

	assert.ErrorIs(t, s.Edit(1, domain.FieldStart, "99:00"), domain.ErrInvalidClock)
	assert.ErrorIs(t, s.Edit(7, domain.FieldStart, "13:00"), ErrIndex)
	assert.Equal(t, []domain.Field{domain.FieldDate}, row.Modified.Changed())
	assert.Equal(t, "13:00", row.Start.String())
}

func TestSave_PutsNewAndPatchesExisting(t *testing.T) {
	b := newFakeBackend()
	s := loaded(t, b, 0)

	require.NoError(t, s.Edit(0, domain.FieldEnd, "16:00"))
	require.NoError(t, s.SetRemark(1, "Ausflug"))
	idx, err := s.Add(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background()))

	require.Len(t, b.patches, 2)
	assert.Equal(t, int64(10), b.patches[0].ID)
	assert.Equal(t, []domain.Field{domain.FieldEnd}, b.patches[0].Modified.Changed())
	assert.Equal(t, "Ausflug", b.patches[1].Remark)
	assert.False(t, b.patches[1].Modified.Any())

	require.Len(t, b.puts, 1)
	row, _ := s.Row(idx)
	assert.Equal(t, int64(101), row.ID)
	assert.Equal(t, 0, s.Dirty())
	assert.False(t, row.Modified.Any())
}

func TestSave_StopsAtFirstFailure(t *testing.T) {
	b := newFakeBackend()
	b.failPutAt = 2
	s := loaded(t, b, 0)

	first, err := s.Add(context.Background())
	require.NoError(t, err)
	second, err := s.Add(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Edit(1, domain.FieldName, "Jane Doe"))

	err = s.Save(context.Background())
	require.ErrorIs(t, err, errDown)

	r1, _ := s.Row(first)
	r2, _ := s.Row(second)
	assert.False(t, r1.IsNew(), "row saved before the failure keeps its id")
	assert.True(t, r2.IsNew())
	assert.True(t, r2.Modified.Any())
	assert.Len(t, b.patches, 1, "existing row before the failure was patched")
	assert.Equal(t, 1, s.Dirty())
}

func TestSave_IncompleteRow(t *testing.T) {
	b := newFakeBackend()
	b.template = &domain.Row{Date: day("2018-01-12")}
	s := loaded(t, b, 0)
	_, err := s.Add(context.Background())
	require.NoError(t, err)

	assert.ErrorIs(t, s.Save(context.Background()), domain.ErrIncompleteRow)
	assert.Empty(t, b.puts)
}

func TestRemove(t *testing.T) {
	b := newFakeBackend()
	s := loaded(t, b, 0)
	idx, err := s.Add(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Remove(context.Background(), idx))
	assert.Empty(t, b.deleted, "unsaved rows are dropped locally")

	require.NoError(t, s.Remove(context.Background(), 0))
	assert.Equal(t, []int64{10}, b.deleted)
	assert.Equal(t, 1, s.Len())
}

func TestWarningsAndTotal(t *testing.T) {
	s := loaded(t, newFakeBackend(), 0)
	require.NoError(t, s.Edit(1, domain.FieldEnd, "17:00"))
	require.NoError(t, s.Edit(0, domain.FieldDate, "2018-03-05"))

	w := s.Warnings()
	require.Len(t, w, 2)
	assert.Contains(t, w[0], "row 1")
	assert.Contains(t, w[1], "row 2")

	assert.Equal(t, 2*time.Hour+30*time.Minute+4*time.Hour, s.Total())
}
