package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/timereport/internal/domain"
	"github.com/alexanderramin/timereport/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompiler writes the LaTeX source back as the "PDF".
type fakeCompiler struct {
	err error
	tex string
}

func (f *fakeCompiler) Compile(_ context.Context, texPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := os.ReadFile(texPath)
	if err != nil {
		return "", err
	}
	f.tex = string(data)
	pdf := strings.TrimSuffix(texPath, ".tex") + ".pdf"
	return pdf, os.WriteFile(pdf, []byte("%PDF-fake"), 0o644)
}

func seedExport(t *testing.T, env *testEnv) *domain.Report {
	t.Helper()
	rep := env.report(t, "Januar 2018")
	items := newItemService(env)
	for _, r := range []*domain.Row{
		testutil.NewTestRow(rep.ID, "Jane Doe", testutil.WithHours("13:00", "15:30")),
		testutil.NewTestRow(rep.ID, "Max Albrecht", testutil.WithHours("11:00", "16:00"), testutil.WithRemark("")),
	} {
		_, err := items.Save(context.Background(), r)
		require.NoError(t, err)
	}
	return rep
}

func TestExportService_PDF(t *testing.T) {
	env := newTestEnv(t)
	rep := seedExport(t, env)
	dir := t.TempDir()
	var logs bytes.Buffer
	compiler := &fakeCompiler{}
	svc := NewExportService(env.reports, env.items, compiler, func() string { return dir },
		slog.New(slog.NewTextHandler(&logs, nil)))

	path, err := svc.PDF(context.Background(), rep.ID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Januar_2018.pdf"), path)
	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(dir, "Januar_2018.csv"))
	assert.Contains(t, compiler.tex, `\subsection*{Max Albrecht}`)

	got, err := env.reports.GetByID(context.Background(), rep.ID)
	require.NoError(t, err)
	assert.True(t, got.PDFGenerated)

	assert.Contains(t, logs.String(), "more than 4 hours")
	assert.Contains(t, logs.String(), "remark is empty")
}

func TestExportService_PDFCompilerFailureKeepsFlag(t *testing.T) {
	env := newTestEnv(t)
	rep := seedExport(t, env)
	svc := NewExportService(env.reports, env.items, &fakeCompiler{err: errors.New("xelatex exploded")},
		func() string { return t.TempDir() }, nil)

	_, err := svc.PDF(context.Background(), rep.ID)
	require.Error(t, err)

	got, err := env.reports.GetByID(context.Background(), rep.ID)
	require.NoError(t, err)
	assert.False(t, got.PDFGenerated)
}

func TestExportService_WriteCSVAndCheck(t *testing.T) {
	env := newTestEnv(t)
	rep := seedExport(t, env)
	svc := NewExportService(env.reports, env.items, &fakeCompiler{}, os.TempDir, nil)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(ctx, rep.ID, &buf))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))

	warnings, err := svc.Check(ctx, rep.ID)
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, "Max Albrecht", w.Row.Name)
	}

	buf.Reset()
	require.NoError(t, svc.WriteLaTeX(ctx, rep.ID, &buf))
	assert.Contains(t, buf.String(), `\begin{document}`)
}
