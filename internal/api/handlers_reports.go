package api

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/timereport/internal/domain"
)

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.svc.Reports.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]Report, 0, len(reports))
	for _, rep := range reports {
		out = append(out, ReportFromDomain(rep))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleAddReport creates a report. A body without start date opens the
// period following the latest report.
func (s *Server) handleAddReport(w http.ResponseWriter, r *http.Request) {
	var body Report
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	var rep *domain.Report
	var err error
	if body.StartDate == "" {
		rep, err = s.svc.Reports.CreateFromTitle(r.Context(), body.Title)
	} else {
		rep, err = body.ToDomain()
		if err == nil {
			rep.ID = 0
			err = s.svc.Reports.Add(r.Context(), rep)
		}
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ReportFromDomain(rep))
}

func (s *Server) handleReportTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := s.svc.Reports.Template(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ReportFromDomain(tmpl))
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rep, err := s.svc.Reports.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ReportFromDomain(rep))
}

func (s *Server) handlePutReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body Report
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	rep, err := body.ToDomain()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rep.ID = id
	if err := s.svc.Reports.Update(r.Context(), rep); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ReportFromDomain(rep))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sum, err := s.svc.Reports.Summary(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryFromDomain(sum))
}

// handlePDF renders the report and streams the PDF. The filename segment
// only names the download.
func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	path, err := s.svc.Export.PDF(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("reading pdf: %w", err))
		return
	}
	name := r.PathValue("filename")
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name = filepath.Base(path)
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleCSV(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := s.svc.Export.WriteCSV(r.Context(), id, &buf); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
