package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"/", Route{Kind: RouteOverview}},
		{"", Route{Kind: RouteOverview}},
		{"/mitarbeiter", Route{Kind: RouteEmployees}},
		{"mitarbeiter/", Route{Kind: RouteEmployees}},
		{"/abrechnung/12", Route{Kind: RouteReport, ReportID: 12}},
		{" /abrechnung/3/ ", Route{Kind: RouteReport, ReportID: 3}},
		{"/abrechnung", Route{Kind: RouteReport}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParseRoute(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRoute_Invalid(t *testing.T) {
	for _, path := range []string{"/abrechnung/0", "/abrechnung/x", "/projects", "/mitarbeiter/2"} {
		_, err := ParseRoute(path)
		assert.ErrorIs(t, err, ErrUnknownRoute, path)
	}
}

func TestRoute_StringRoundTrip(t *testing.T) {
	for _, r := range []Route{{Kind: RouteOverview}, {Kind: RouteEmployees}, {Kind: RouteReport, ReportID: 5}, {Kind: RouteReport}} {
		got, err := ParseRoute(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
}
