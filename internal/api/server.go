// Package api serves the timereport REST interface.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/timereport/internal/service"
)

// Services bundles the use cases the API exposes.
type Services struct {
	Items     service.ItemService
	Reports   service.ReportService
	Employees service.EmployeeService
	Calendar  service.CalendarService
	Export    service.ExportService
}

// Server routes HTTP requests to the services.
type Server struct {
	svc         Services
	logger      *slog.Logger
	frontendDir string
}

// NewServer creates a Server. A non-empty frontendDir is served at /.
func NewServer(svc Services, logger *slog.Logger, frontendDir string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{svc: svc, logger: logger, frontendDir: frontendDir}
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/rows", s.handleRows)
	mux.HandleFunc("GET /api/new_row", s.handleNewRow)
	mux.HandleFunc("GET /api/globals", s.handleGlobals)

	mux.HandleFunc("GET /api/reports", s.handleListReports)
	mux.HandleFunc("POST /api/reports", s.handleAddReport)
	mux.HandleFunc("GET /api/reports/new", s.handleReportTemplate)
	mux.HandleFunc("GET /api/reports/{id}", s.handleGetReport)
	mux.HandleFunc("PUT /api/reports/{id}", s.handlePutReport)
	mux.HandleFunc("GET /api/reports/{id}/summary", s.handleSummary)
	mux.HandleFunc("GET /api/reports/{id}/pdf/{filename}", s.handlePDF)
	mux.HandleFunc("GET /api/reports/{id}/csv", s.handleCSV)

	mux.HandleFunc("GET /api/reports/{id}/items", s.handleListItems)
	mux.HandleFunc("GET /api/reports/{id}/items/template", s.handleItemTemplate)
	mux.HandleFunc("PUT /api/reports/{id}/items/{item}", s.handlePutItem)
	mux.HandleFunc("PATCH /api/reports/{id}/items/{item}", s.handlePatchItem)
	mux.HandleFunc("DELETE /api/reports/{id}/items/{item}", s.handleDeleteItem)

	mux.HandleFunc("GET /api/employees", s.handleListEmployees)
	mux.HandleFunc("POST /api/employees", s.handleAddEmployee)
	mux.HandleFunc("PUT /api/employees/{id}", s.handleRenameEmployee)
	mux.HandleFunc("DELETE /api/employees/{id}", s.handleDeleteEmployee)

	mux.HandleFunc("GET /api/holidays", s.handleHolidays)
	mux.HandleFunc("GET /api/next_schoolday/{day}", s.handleNextSchoolDay)
	mux.HandleFunc("GET /api/previous_schoolday/{day}", s.handlePreviousSchoolDay)

	if s.frontendDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.frontendDir)))
	}

	return s.logRequests(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.status >= 500 {
			level = slog.LevelError
		}
		s.logger.Log(r.Context(), level, "http_request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
