package cli

import "github.com/alexanderramin/timereport/internal/config"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	Backend Backend
	Config  func() config.Config

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
