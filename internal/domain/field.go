package domain

import "fmt"

// Field enumerates the row fields whose modifications are tracked.
type Field int

const (
	FieldName Field = iota
	FieldDate
	FieldStart
	FieldEnd

	numFields
)

var fieldNames = [numFields]string{"name", "date", "start", "end"}

// Fields returns every tracked field in display order.
func Fields() []Field {
	return []Field{FieldName, FieldDate, FieldStart, FieldEnd}
}

func (f Field) Valid() bool {
	return f >= 0 && f < numFields
}

func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField maps a wire/field name to its Field. Unknown names yield ErrInvalidField.
func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidField, name)
}

// Modifications holds one dirty flag per tracked field. The zero value has
// every flag cleared, which is the state of a row freshly loaded from storage.
type Modifications [numFields]bool

// ClearAll marks every field as saved.
func (m *Modifications) ClearAll() {
	*m = Modifications{}
}

// SetAll marks every field as needing a write.
func (m *Modifications) SetAll() {
	for i := range *m {
		(*m)[i] = true
	}
}

// Mark flags a single field. An invalid field leaves the set untouched.
func (m *Modifications) Mark(f Field) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidField, f)
	}
	(*m)[f] = true
	return nil
}

// MarkByName flags the field with the given name.
func (m *Modifications) MarkByName(name string) error {
	f, err := ParseField(name)
	if err != nil {
		return err
	}
	return m.Mark(f)
}

// IsModified reports the flag for f.
func (m Modifications) IsModified(f Field) (bool, error) {
	if !f.Valid() {
		return false, fmt.Errorf("%w: %s", ErrInvalidField, f)
	}
	return m[f], nil
}

// IsModifiedByName reports the flag for the field with the given name.
func (m Modifications) IsModifiedByName(name string) (bool, error) {
	f, err := ParseField(name)
	if err != nil {
		return false, err
	}
	return m[f], nil
}

// Any reports whether at least one field is dirty.
func (m Modifications) Any() bool {
	for _, v := range m {
		if v {
			return true
		}
	}
	return false
}

// Changed lists the dirty fields in display order.
func (m Modifications) Changed() []Field {
	var out []Field
	for _, f := range Fields() {
		if m[f] {
			out = append(out, f)
		}
	}
	return out
}
