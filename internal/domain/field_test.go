package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModifications_ClearAll(t *testing.T) {
	var m Modifications
	m.SetAll()
	m.ClearAll()
	for _, f := range Fields() {
		got, err := m.IsModified(f)
		require.NoError(t, err)
		assert.False(t, got, "field=%s", f)
	}
}

func TestModifications_ClearAllIsIdempotent(t *testing.T) {
	var once, twice Modifications
	once.SetAll()
	twice.SetAll()

	once.ClearAll()
	twice.ClearAll()
	twice.ClearAll()

	assert.Equal(t, once, twice)
}

func TestModifications_SetAll(t *testing.T) {
	var m Modifications
	m.SetAll()
	for _, f := range Fields() {
		got, err := m.IsModified(f)
		require.NoError(t, err)
		assert.True(t, got, "field=%s", f)
	}
}

func TestModifications_MarkLeavesOthersUnchanged(t *testing.T) {
	for _, f := range Fields() {
		t.Run(f.String(), func(t *testing.T) {
			var m Modifications
			require.NoError(t, m.Mark(FieldEnd))
			before := m

			require.NoError(t, m.Mark(f))

			for _, g := range Fields() {
				got, err := m.IsModified(g)
				require.NoError(t, err)
				if g == f {
					assert.True(t, got)
				} else {
					assert.Equal(t, before[g], got, "field=%s", g)
				}
			}
		})
	}
}

func TestModifications_MarkByName(t *testing.T) {
	var m Modifications
	require.NoError(t, m.MarkByName("date"))

	date, err := m.IsModifiedByName("date")
	require.NoError(t, err)
	assert.True(t, date)

	name, err := m.IsModifiedByName("name")
	require.NoError(t, err)
	assert.False(t, name)
}

func TestModifications_UnknownField(t *testing.T) {
	var m Modifications
	require.NoError(t, m.Mark(FieldStart))
	before := m

	err := m.MarkByName("phone")
	assert.ErrorIs(t, err, ErrInvalidField)
	assert.Equal(t, before, m)

	_, err = m.IsModifiedByName("phone")
	assert.ErrorIs(t, err, ErrInvalidField)

	err = m.Mark(Field(9))
	assert.ErrorIs(t, err, ErrInvalidField)
	assert.Equal(t, before, m)

	_, err = m.IsModified(Field(-1))
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestModifications_Changed(t *testing.T) {
	var m Modifications
	assert.False(t, m.Any())
	assert.Empty(t, m.Changed())

	require.NoError(t, m.Mark(FieldEnd))
	require.NoError(t, m.Mark(FieldName))
	assert.True(t, m.Any())
	assert.Equal(t, []Field{FieldName, FieldEnd}, m.Changed())
}

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		got, err := ParseField(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseField("remark")
	assert.ErrorIs(t, err, ErrInvalidField)
}
