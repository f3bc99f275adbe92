package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/timereport/internal/domain"
	"github.com/alexanderramin/timereport/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekRepo_UpsertOverwrites(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWeekRepo(db)
	ctx := context.Background()

	wk := domain.ISOWeek{Year: 2018, Week: 2}
	require.NoError(t, repo.Upsert(ctx, WeekMapping{Week: wk, Label: domain.WeekB}))
	require.NoError(t, repo.Upsert(ctx, WeekMapping{Week: wk, Label: domain.WeekD}))

	got, err := repo.Get(ctx, wk)
	require.NoError(t, err)
	assert.Equal(t, domain.WeekD, got)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.Get(ctx, domain.ISOWeek{Year: 2018, Week: 3})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWeekRepo_RejectsInvalidLabel(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWeekRepo(db)

	err := repo.Upsert(context.Background(), WeekMapping{Week: domain.ISOWeek{Year: 2018, Week: 1}, Label: domain.Week(7)})
	assert.ErrorIs(t, err, domain.ErrInvalidWeek)
}

func TestHolidayRepo_InsertIgnoreAndQuery(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteHolidayRepo(db)
	ctx := context.Background()

	holidays := []domain.Holiday{
		{Date: testutil.Date("2018-01-01"), Title: "Neujahrstag"},
		{Date: testutil.Date("2018-03-30"), Title: "Karfreitag"},
	}
	n, err := repo.InsertIgnore(ctx, holidays)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.InsertIgnore(ctx, holidays)
	require.NoError(t, err)
	assert.Zero(t, n, "known dates are skipped")

	ok, err := repo.Exists(ctx, testutil.Date("2018-03-30"))
	require.NoError(t, err)
	assert.True(t, ok)

	between, err := repo.ListBetween(ctx, testutil.Date("2018-03-01"), testutil.Date("2018-03-31"))
	require.NoError(t, err)
	require.Len(t, between, 1)
	assert.Equal(t, "Karfreitag", between[0].Title)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
