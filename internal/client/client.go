// Package client talks to the timereport REST backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/timereport/internal/api"
	"github.com/alexanderramin/timereport/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Client is a typed REST client. Decoded rows carry no modification flags.
type Client struct {
	base    string
	timeout time.Duration
	http    *http.Client
}

// New creates a client for the API rooted at baseURL, e.g.
// "http://127.0.0.1:8000/api".
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// Rows returns the rows of the active report.
func (c *Client) Rows(ctx context.Context) ([]*domain.Row, error) {
	var wire []api.Row
	if err := c.do(ctx, http.MethodGet, "/rows", nil, &wire); err != nil {
		return nil, err
	}
	return rowsFromWire(wire, 0)
}

// NewRow returns the template for the next row of the active report.
func (c *Client) NewRow(ctx context.Context) (*domain.Row, error) {
	var wire api.Row
	if err := c.do(ctx, http.MethodGet, "/new_row", nil, &wire); err != nil {
		return nil, err
	}
	return decodeRow(wire, 0)
}

func (c *Client) Globals(ctx context.Context) (domain.Globals, error) {
	var wire api.Globals
	if err := c.do(ctx, http.MethodGet, "/globals", nil, &wire); err != nil {
		return domain.Globals{}, err
	}
	g, err := wire.ToDomain()
	if err != nil {
		return domain.Globals{}, fmt.Errorf("%w: globals: %w", ErrRejected, err)
	}
	return g, nil
}

func (c *Client) Reports(ctx context.Context) ([]*domain.Report, error) {
	var wire []api.Report
	if err := c.do(ctx, http.MethodGet, "/reports", nil, &wire); err != nil {
		return nil, err
	}
	out := make([]*domain.Report, 0, len(wire))
	for _, w := range wire {
		r, err := reportFromWire(w)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (c *Client) Report(ctx context.Context, id int64) (*domain.Report, error) {
	var wire api.Report
	if err := c.do(ctx, http.MethodGet, "/reports/"+itoa(id), nil, &wire); err != nil {
		return nil, err
	}
	return reportFromWire(wire)
}

// CreateReport opens a report with the given title following the latest one.
func (c *Client) CreateReport(ctx context.Context, title string) (*domain.Report, error) {
	var wire api.Report
	if err := c.do(ctx, http.MethodPost, "/reports", api.Report{Title: title}, &wire); err != nil {
		return nil, err
	}
	return reportFromWire(wire)
}

func (c *Client) Summary(ctx context.Context, reportID int64) (api.Summary, error) {
	var out api.Summary
	err := c.do(ctx, http.MethodGet, "/reports/"+itoa(reportID)+"/summary", nil, &out)
	return out, err
}

// Items returns the rows of a report.
func (c *Client) Items(ctx context.Context, reportID int64) ([]*domain.Row, error) {
	var wire []api.Row
	if err := c.do(ctx, http.MethodGet, itemsPath(reportID), nil, &wire); err != nil {
		return nil, err
	}
	return rowsFromWire(wire, reportID)
}

// Template returns the template for the next row of a report.
func (c *Client) Template(ctx context.Context, reportID int64) (*domain.Row, error) {
	var wire api.Row
	if err := c.do(ctx, http.MethodGet, itemsPath(reportID)+"/template", nil, &wire); err != nil {
		return nil, err
	}
	return decodeRow(wire, reportID)
}

// PutItem sends the whole row and returns its id. A row with id 0 is
// created.
func (c *Client) PutItem(ctx context.Context, row *domain.Row) (int64, error) {
	var wire api.Row
	if err := c.do(ctx, http.MethodPut, itemsPath(row.ReportID)+"/"+itoa(row.ID), api.RowFromDomain(row), &wire); err != nil {
		return 0, err
	}
	return wire.ID, nil
}

// PatchItem sends the tracked fields flagged as modified. Remark and week
// are untracked and always sent.
func (c *Client) PatchItem(ctx context.Context, row *domain.Row) error {
	patch := PatchFor(row)
	return c.do(ctx, http.MethodPatch, itemsPath(row.ReportID)+"/"+itoa(row.ID), patch, nil)
}

func (c *Client) DeleteItem(ctx context.Context, reportID, id int64) error {
	return c.do(ctx, http.MethodDelete, itemsPath(reportID)+"/"+itoa(id), nil, nil)
}

func (c *Client) Employees(ctx context.Context) ([]*domain.Employee, error) {
	var wire []api.Employee
	if err := c.do(ctx, http.MethodGet, "/employees", nil, &wire); err != nil {
		return nil, err
	}
	out := make([]*domain.Employee, 0, len(wire))
	for _, w := range wire {
		out = append(out, &domain.Employee{ID: w.ID, Name: w.Name, SortKey: w.SortKey})
	}
	return out, nil
}

func (c *Client) AddEmployee(ctx context.Context, name string) (int64, error) {
	var out api.IDResponse
	if err := c.do(ctx, http.MethodPost, "/employees", api.Employee{Name: name}, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) RenameEmployee(ctx context.Context, id int64, name string) error {
	return c.do(ctx, http.MethodPut, "/employees/"+itoa(id), api.Employee{Name: name}, nil)
}

func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/employees/"+itoa(id), nil, nil)
}

// NextSchoolDay asks the backend for the first school day after day.
func (c *Client) NextSchoolDay(ctx context.Context, day time.Time) (time.Time, error) {
	var out string
	if err := c.do(ctx, http.MethodGet, "/next_schoolday/"+domain.FormatDate(day), nil, &out); err != nil {
		return time.Time{}, err
	}
	return domain.ParseDate(out)
}

// PatchFor builds the PATCH body of an existing row from its flags.
func PatchFor(row *domain.Row) api.RowPatch {
	var p api.RowPatch
	for _, f := range domain.Fields() {
		if !row.Modified[f] {
			continue
		}
		v := row.Value(f)
		switch f {
		case domain.FieldName:
			p.Name = &v
		case domain.FieldDate:
			p.Day = &v
		case domain.FieldStart:
			p.Start = &v
		case domain.FieldEnd:
			p.End = &v
		}
	}
	remark := row.Remark
	week := int(row.Week)
	p.Remark = &remark
	p.TypeOfWeek = &week
	return p
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	target, err := url.JoinPath(c.base, path)
	if err != nil {
		return fmt.Errorf("building url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ErrTimeout
		}
		var netErr *net.OpError
		if errors.As(err, &netErr) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrRejected, path, err)
	}
	return nil
}

// statusError wraps the server's error message in the matching sentinel.
func statusError(status int, body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		msg = e.Error
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	return fmt.Errorf("%w: status %d: %s", ErrRejected, status, msg)
}

func decodeRow(w api.Row, reportID int64) (*domain.Row, error) {
	r, err := w.ToDomain(reportID)
	if err != nil {
		return nil, fmt.Errorf("%w: row %d: %w", ErrRejected, w.ID, err)
	}
	return r, nil
}

func reportFromWire(w api.Report) (*domain.Report, error) {
	r, err := w.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: report %d: %w", ErrRejected, w.ID, err)
	}
	return r, nil
}

func rowsFromWire(wire []api.Row, reportID int64) ([]*domain.Row, error) {
	out := make([]*domain.Row, 0, len(wire))
	for _, w := range wire {
		r, err := decodeRow(w, reportID)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func itemsPath(reportID int64) string {
	return "/reports/" + itoa(reportID) + "/items"
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
