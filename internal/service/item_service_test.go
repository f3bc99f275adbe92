package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/timereport/internal/domain"
	"github.com/alexanderramin/timereport/internal/repository"
	"github.com/alexanderramin/timereport/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItemService(env *testEnv, obs ...UseCaseObserver) *itemService {
	return NewItemService(env.items, env.calendar, testutil.NewTestUoW(env.db), nil, obs...).(*itemService)
}

func TestItemService_SaveInsertsThenReplaces(t *testing.T) {
	env := newTestEnv(t)
	obs := &recordingObserver{}
	svc := newItemService(env, obs)
	ctx := context.Background()
	rep := env.report(t, "Januar")

	row := testutil.NewTestRow(rep.ID, "Jane Doe", testutil.WithWeek(domain.WeekC))
	id, err := svc.Save(ctx, row)
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, id, row.ID)

	emp, err := env.employees.GetByName(ctx, "Jane Doe")
	require.NoError(t, err, "saving a row creates its employee")
	assert.Equal(t, emp.ID, row.EmployeeID)

	label, err := env.weeks.Get(ctx, domain.ISOWeekOf(row.Date))
	require.NoError(t, err)
	assert.Equal(t, domain.WeekC, label)

	row.Remark = "geändert"
	again, err := svc.Save(ctx, row)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	rows, err := svc.List(ctx, rep.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "geändert", rows[0].Remark)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "save-item", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
}

func TestItemService_SaveRejectsIncompleteRow(t *testing.T) {
	env := newTestEnv(t)
	svc := newItemService(env)
	rep := env.report(t, "Januar")

	row := domain.NewRow(rep.ID)
	_, err := svc.Save(context.Background(), row)
	require.ErrorIs(t, err, domain.ErrIncompleteRow)
	assert.Contains(t, err.Error(), "name, date, start, end")
}

func TestItemService_SaveRollsBackOnItemFailure(t *testing.T) {
	env := newTestEnv(t)
	rep := env.report(t, "Januar")

	// The employee is created in the same transaction before the item insert fails.
	failUoW := &testutil.FailingUoW{DB: env.db, Match: "INSERT INTO items", Err: errors.New("injected item failure")}
	svc := NewItemService(env.items, env.calendar, failUoW, nil)

	_, err := svc.Save(context.Background(), testutil.NewTestRow(rep.ID, "Jane Doe"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected item failure")

	_, err = env.employees.GetByName(context.Background(), "Jane Doe")
	assert.ErrorIs(t, err, repository.ErrNotFound, "employee insert is rolled back")
}

func TestItemService_PatchAppliesOnlySuppliedFields(t *testing.T) {
	env := newTestEnv(t)
	svc := newItemService(env)
	ctx := context.Background()
	rep := env.report(t, "Januar")

	row := testutil.NewTestRow(rep.ID, "Jane Doe", testutil.WithHours("13:00", "15:30"))
	_, err := svc.Save(ctx, row)
	require.NoError(t, err)

	end := domain.MustClock("16:00")
	patched, err := svc.Patch(ctx, rep.ID, row.ID, RowPatch{End: &end})
	require.NoError(t, err)
	assert.Equal(t, "13:00", patched.Start.String())
	assert.Equal(t, "16:00", patched.End.String())
	assert.Equal(t, "Jane Doe", patched.Name)
	assert.False(t, patched.Modified.Any())

	stored, err := env.items.GetByID(ctx, rep.ID, row.ID)
	require.NoError(t, err)
	assert.Equal(t, "16:00", stored.End.String())
}

func TestItemService_PatchRenamesEmployee(t *testing.T) {
	env := newTestEnv(t)
	svc := newItemService(env)
	ctx := context.Background()
	rep := env.report(t, "Januar")

	row := testutil.NewTestRow(rep.ID, "Jane Doe")
	_, err := svc.Save(ctx, row)
	require.NoError(t, err)

	name := "Max Mustermann"
	patched, err := svc.Patch(ctx, rep.ID, row.ID, RowPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Max Mustermann", patched.Name)
	assert.NotEqual(t, row.EmployeeID, patched.EmployeeID)
}

func TestItemService_PatchUnknownItem(t *testing.T) {
	env := newTestEnv(t)
	svc := newItemService(env)
	rep := env.report(t, "Januar")

	remark := "x"
	_, err := svc.Patch(context.Background(), rep.ID, 404, RowPatch{Remark: &remark})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestItemService_TemplateWithoutRows(t *testing.T) {
	env := newTestEnv(t)
	svc := newItemService(env)
	svc.today = fixedDay("2018-01-13") // Saturday
	rep := env.report(t, "Januar")

	tmpl, err := svc.Template(context.Background(), rep.ID)
	require.NoError(t, err)
	assert.Zero(t, tmpl.ID)
	assert.Equal(t, "2018-01-15", domain.FormatDate(tmpl.Date))
	assert.Equal(t, "13:00", tmpl.Start.String())
	assert.Equal(t, "15:30", tmpl.End.String())
}

func TestItemService_TemplateAdvancesToNextSchoolDay(t *testing.T) {
	env := newTestEnv(t)
	svc := newItemService(env)
	ctx := context.Background()
	rep := env.report(t, "Januar")

	_, err := env.holidays.InsertIgnore(ctx, []domain.Holiday{{Date: testutil.Date("2018-01-15"), Title: "Brückentag"}})
	require.NoError(t, err)

	last := testutil.NewTestRow(rep.ID, "Jane Doe",
		testutil.WithDay("2018-01-12"), // Friday
		testutil.WithHours("12:45", "15:00"),
		testutil.WithWeek(domain.WeekD))
	_, err = svc.Save(ctx, last)
	require.NoError(t, err)

	tmpl, err := svc.Template(ctx, rep.ID)
	require.NoError(t, err)
	assert.Zero(t, tmpl.ID)
	assert.Equal(t, "2018-01-16", domain.FormatDate(tmpl.Date))
	assert.Equal(t, "Jane Doe", tmpl.Name)
	assert.Equal(t, "12:45", tmpl.Start.String())
	assert.Equal(t, domain.WeekA, tmpl.Week, "an unmapped new week continues the rotation")
}

func TestItemService_Delete(t *testing.T) {
	env := newTestEnv(t)
	svc := newItemService(env)
	ctx := context.Background()
	rep := env.report(t, "Januar")

	row := testutil.NewTestRow(rep.ID, "Jane Doe")
	_, err := svc.Save(ctx, row)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, rep.ID, row.ID))
	assert.ErrorIs(t, svc.Delete(ctx, rep.ID, row.ID), repository.ErrNotFound)
}

func TestItemService_TemplateUsesConfiguredDefaults(t *testing.T) {
	env := newTestEnv(t)
	svc := NewItemService(env.items, env.calendar, testutil.NewTestUoW(env.db), func() RowDefaults {
		return RowDefaults{Start: domain.MustClock("12:45"), End: domain.MustClock("15:45")}
	}).(*itemService)
	svc.today = fixedDay("2018-01-10")
	rep := env.report(t, "Januar")

	tmpl, err := svc.Template(context.Background(), rep.ID)
	require.NoError(t, err)
	assert.Equal(t, "2018-01-10", domain.FormatDate(tmpl.Date))
	assert.Equal(t, "12:45", tmpl.Start.String())
	assert.Equal(t, "15:45", tmpl.End.String())
}
