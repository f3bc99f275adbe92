// Package holidays fetches public and school holidays of a German state.
package holidays

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/alexanderramin/timereport/internal/domain"
)

// Config selects the holiday APIs and the state whose calendar is used.
type Config struct {
	PublicURL string
	SchoolURL string
	State     string
	Timeout   time.Duration
}

// DefaultConfig returns the public endpoints for North Rhine-Westphalia.
func DefaultConfig() Config {
	return Config{
		PublicURL: "https://feiertage-api.de/api/",
		SchoolURL: "https://ferien-api.de/api/v1/holidays",
		State:     "NW",
		Timeout:   10 * time.Second,
	}
}

// Client downloads holiday calendars over HTTP.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// publicHoliday is one entry of the feiertage-api response, keyed by title.
type publicHoliday struct {
	Date string `json:"datum"`
	Note string `json:"hinweis"`
}

// schoolHoliday is one break of the ferien-api response.
type schoolHoliday struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Name  string `json:"name"`
}

// Fetch returns the public holidays and every day of the school breaks of
// year, ordered by date. A day can appear twice when a public holiday falls
// into a break.
func (c *Client) Fetch(ctx context.Context, year int) ([]domain.Holiday, error) {
	public, err := c.FetchPublic(ctx, year)
	if err != nil {
		return nil, err
	}
	school, err := c.FetchSchool(ctx, year)
	if err != nil {
		return nil, err
	}
	all := append(public, school...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })
	return all, nil
}

func (c *Client) FetchPublic(ctx context.Context, year int) ([]domain.Holiday, error) {
	u, err := url.Parse(c.cfg.PublicURL)
	if err != nil {
		return nil, fmt.Errorf("parsing public holiday url: %w", err)
	}
	q := u.Query()
	q.Set("nur_land", c.cfg.State)
	q.Set("jahr", strconv.Itoa(year))
	u.RawQuery = q.Encode()

	var resp map[string]publicHoliday
	if err := c.getJSON(ctx, u.String(), &resp); err != nil {
		return nil, err
	}

	out := make([]domain.Holiday, 0, len(resp))
	for title, h := range resp {
		d, err := parseDay(h.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: holiday %q: %v", ErrBadResponse, title, err)
		}
		out = append(out, domain.Holiday{Date: d, Title: title})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// FetchSchool expands each school break into one holiday per day, both
// bounds inclusive.
func (c *Client) FetchSchool(ctx context.Context, year int) ([]domain.Holiday, error) {
	u, err := url.JoinPath(c.cfg.SchoolURL, c.cfg.State, strconv.Itoa(year))
	if err != nil {
		return nil, fmt.Errorf("building school holiday url: %w", err)
	}

	var resp []schoolHoliday
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	var out []domain.Holiday
	for _, b := range resp {
		start, err := parseDay(b.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: break %q: %v", ErrBadResponse, b.Name, err)
		}
		end, err := parseDay(b.End)
		if err != nil {
			return nil, fmt.Errorf("%w: break %q: %v", ErrBadResponse, b.Name, err)
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			out = append(out, domain.Holiday{Date: d, Title: b.Name})
		}
	}
	return out, nil
}

// parseDay accepts a plain date or a date with a time suffix such as
// "2018-03-26T00:00".
func parseDay(s string) (time.Time, error) {
	if len(s) < len(domain.DateLayout) {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return time.Parse(domain.DateLayout, s[:len(domain.DateLayout)])
}

func (c *Client) getJSON(ctx context.Context, target string, v any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ErrTimeout
		}
		var netErr *net.OpError
		if errors.As(err, &netErr) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return fmt.Errorf("requesting %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", ErrBadResponse, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}
