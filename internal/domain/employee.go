package domain

import "strings"

type Employee struct {
	ID      int64
	Name    string
	SortKey string
}

// NewEmployee derives the sort key from name.
func NewEmployee(name string) *Employee {
	name = strings.TrimSpace(name)
	return &Employee{Name: name, SortKey: SortName(name)}
}

// SortName returns the part of a name used for ordering: the text before the
// first comma ("Doe, Jane"), otherwise the last space-separated word.
func SortName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.Index(name, ","); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
