package api

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/timereport/internal/domain"
	"github.com/alexanderramin/timereport/internal/repository"
)

// handleRows lists the rows of the active report, or none before the first
// report exists.
func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	active, err := s.svc.Reports.Active(r.Context())
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusOK, []Row{})
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeRows(w, r, active.ID)
}

func (s *Server) handleNewRow(w http.ResponseWriter, r *http.Request) {
	active, err := s.svc.Reports.Active(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeTemplate(w, r, active.ID)
}

func (s *Server) handleGlobals(w http.ResponseWriter, r *http.Request) {
	g, err := s.svc.Reports.Globals(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GlobalsFromDomain(g))
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	reportID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.svc.Reports.Get(r.Context(), reportID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeRows(w, r, reportID)
}

func (s *Server) handleItemTemplate(w http.ResponseWriter, r *http.Request) {
	reportID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeTemplate(w, r, reportID)
}

func (s *Server) writeRows(w http.ResponseWriter, r *http.Request, reportID int64) {
	rows, err := s.svc.Items.List(r.Context(), reportID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, RowFromDomain(row))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) writeTemplate(w http.ResponseWriter, r *http.Request, reportID int64) {
	tmpl, err := s.svc.Items.Template(r.Context(), reportID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RowFromDomain(tmpl))
}

// handlePutItem stores a full row. Item id 0 creates a new row.
func (s *Server) handlePutItem(w http.ResponseWriter, r *http.Request) {
	reportID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	itemID, err := pathID(r, "item")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body Row
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	body.ID = itemID
	row, err := body.ToDomain(reportID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	created := row.IsNew()
	if _, err := s.svc.Items.Save(r.Context(), row); err != nil {
		s.writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, RowFromDomain(row))
}

func (s *Server) handlePatchItem(w http.ResponseWriter, r *http.Request) {
	reportID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	itemID, err := pathID(r, "item")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body RowPatch
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	patch, err := body.ToService()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var row *domain.Row
	if row, err = s.svc.Items.Patch(r.Context(), reportID, itemID, patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RowFromDomain(row))
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	reportID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	itemID, err := pathID(r, "item")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Items.Delete(r.Context(), reportID, itemID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
