package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnIndexFirstOccurrenceWins(t *testing.T) {
	ds := NewDataset([]string{"id", "code", "code"}, nil)

	idx, ok := ds.ColumnIndex("code")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.True(t, ds.HasColumn("id"))
	assert.False(t, ds.HasColumn("Code"))
}

func TestValueShortRow(t *testing.T) {
	ds := NewDataset([]string{"id", "name", "notes"}, nil)

	assert.Equal(t, "alpha", ds.Value([]string{"1", "alpha", "x"}, "name"))
	assert.Equal(t, "", ds.Value([]string{"1"}, "name"))
	assert.Equal(t, "", ds.Value([]string{"1", "alpha"}, "absent"))
}

func TestHasDuplicates(t *testing.T) {
	assert.False(t, (&DuplicateReport{}).HasDuplicates())
	assert.True(t, (&DuplicateReport{ImpactedCount: 2}).HasDuplicates())
}
