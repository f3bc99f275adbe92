package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownRoute indicates a path that names no view.
var ErrUnknownRoute = errors.New("unknown route")

// RouteKind names the three screens of the TUI.
type RouteKind int

const (
	RouteOverview RouteKind = iota
	RouteReport
	RouteEmployees
)

// Route is a parsed navigation path.
type Route struct {
	Kind     RouteKind
	ReportID int64
}

// ParseRoute maps "/" to the overview, "/abrechnung/{id}" to one report,
// "/abrechnung" to the most recent report and "/mitarbeiter" to the employee
// list. A trailing slash is ignored.
func ParseRoute(path string) (Route, error) {
	p := strings.Trim(strings.TrimSpace(path), "/")
	if p == "" {
		return Route{Kind: RouteOverview}, nil
	}
	parts := strings.Split(p, "/")
	switch {
	case len(parts) == 1 && parts[0] == "mitarbeiter":
		return Route{Kind: RouteEmployees}, nil
	case len(parts) == 1 && parts[0] == "abrechnung":
		return Route{Kind: RouteReport}, nil
	case len(parts) == 2 && parts[0] == "abrechnung":
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || id <= 0 {
			return Route{}, fmt.Errorf("%w: report id %q", ErrUnknownRoute, parts[1])
		}
		return Route{Kind: RouteReport, ReportID: id}, nil
	}
	return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, path)
}

func (r Route) String() string {
	switch r.Kind {
	case RouteReport:
		if r.ReportID == 0 {
			return "/abrechnung"
		}
		return "/abrechnung/" + strconv.FormatInt(r.ReportID, 10)
	case RouteEmployees:
		return "/mitarbeiter"
	}
	return "/"
}

// views returns the stack for r, the overview always at the bottom.
func (r Route) views(state *SharedState) []View {
	stack := []View{newOverviewView(state)}
	switch r.Kind {
	case RouteReport:
		stack = append(stack, newReportView(state, r.ReportID))
	case RouteEmployees:
		stack = append(stack, newEmployeesView(state))
	}
	return stack
}
