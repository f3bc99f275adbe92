package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/timereport/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReportRepo(db)
	ctx := context.Background()

	rep := testutil.NewTestReport("Januar 2018")
	require.NoError(t, repo.Create(ctx, rep))

	got, err := repo.GetByID(ctx, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, "Januar 2018", got.Title)
	assert.Equal(t, "2018-01-08", got.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2018-02-28", got.EndDate.Format("2006-01-02"))
	assert.False(t, got.PDFGenerated)
}

func TestReportRepo_OpenEndDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReportRepo(db)
	ctx := context.Background()

	rep := testutil.NewTestReport("offen", testutil.WithPeriod("2018-03-01", ""))
	require.NoError(t, repo.Create(ctx, rep))

	got, err := repo.GetByID(ctx, rep.ID)
	require.NoError(t, err)
	assert.True(t, got.EndDate.IsZero())

	_, ok, err := repo.MaxEndDate(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReportRepo_LatestAndMaxEndDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReportRepo(db)
	ctx := context.Background()

	_, err := repo.Latest(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	first := testutil.NewTestReport("eins", testutil.WithPeriod("2018-01-01", "2018-03-31"))
	second := testutil.NewTestReport("zwei", testutil.WithPeriod("2018-04-01", "2018-02-01"))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	end, ok, err := repo.MaxEndDate(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2018-03-31", end.Format("2006-01-02"))
}

func TestReportRepo_UpdateAndPDFFlag(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReportRepo(db)
	ctx := context.Background()

	rep := testutil.NewTestReport("alt")
	require.NoError(t, repo.Create(ctx, rep))

	rep.Title = "neu"
	require.NoError(t, repo.Update(ctx, rep))
	require.NoError(t, repo.SetPDFGenerated(ctx, rep.ID, true))

	got, err := repo.GetByID(ctx, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, "neu", got.Title)
	assert.True(t, got.PDFGenerated)

	assert.ErrorIs(t, repo.SetPDFGenerated(ctx, rep.ID+1, true), ErrNotFound)
}

func TestReportRepo_ListOrderedByStart(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReportRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestReport("später", testutil.WithPeriod("2018-05-01", ""))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestReport("früher", testutil.WithPeriod("2018-01-01", "2018-04-30"))))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "früher", all[0].Title)
	assert.Equal(t, "später", all[1].Title)
}
