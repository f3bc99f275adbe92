package export

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/alexanderramin/timereport/internal/domain"
)

//go:embed report.tex.tmpl
var reportTemplate string

// LaTeX braces clash with the default action delimiters.
var latexTemplate = template.Must(template.New("report").
	Delims("<<", ">>").
	Funcs(template.FuncMap{
		"tex":  EscapeLaTeX,
		"date": latexDate,
	}).
	Parse(reportTemplate))

// RenderLaTeX writes a LaTeX document with one table per employee.
func RenderLaTeX(w io.Writer, s domain.ReportSummary) error {
	if err := latexTemplate.Execute(w, s); err != nil {
		return fmt.Errorf("rendering latex: %w", err)
	}
	return nil
}

var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeLaTeX quotes characters that LaTeX treats as markup.
func EscapeLaTeX(s string) string {
	return latexReplacer.Replace(s)
}

// latexDate renders dd.\,mm.\,yy with thin spaces.
func latexDate(t time.Time) string {
	return t.Format(`02.\,01.\,06`)
}
