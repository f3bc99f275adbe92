package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/timereport/internal/domain"
)

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.svc.Employees.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]Employee, 0, len(employees))
	for _, e := range employees {
		out = append(out, Employee{ID: e.ID, Name: e.Name, SortKey: e.SortKey})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	var body Employee
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.svc.Employees.Add(r.Context(), body.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}

func (s *Server) handleRenameEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body Employee
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Employees.Rename(r.Context(), id, body.Name); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Employees.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := s.svc.Calendar.Holidays(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]Holiday, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, Holiday{Date: domain.FormatDate(h.Date), Title: h.Title})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleNextSchoolDay(w http.ResponseWriter, r *http.Request) {
	s.handleSchoolDay(w, r, s.svc.Calendar.NextSchoolDay)
}

func (s *Server) handlePreviousSchoolDay(w http.ResponseWriter, r *http.Request) {
	s.handleSchoolDay(w, r, s.svc.Calendar.PreviousSchoolDay)
}

// handleSchoolDay answers with the date as a JSON string.
func (s *Server) handleSchoolDay(w http.ResponseWriter, r *http.Request, step func(context.Context, time.Time) (time.Time, error)) {
	raw := r.PathValue("day")
	if strings.TrimSpace(raw) == "" {
		s.writeError(w, r, fmt.Errorf("%w: empty day", errBadRequest))
		return
	}
	day, err := domain.ParseDate(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	next, err := step(r.Context(), day)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.FormatDate(next))
}
