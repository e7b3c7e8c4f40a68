package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jihokoo/campus-reservation/internal/catalog"
)

func TestTableFor(t *testing.T) {
	assert.Equal(t, "library_bookings", tableFor(catalog.PartitionLibrary))
	assert.Equal(t, "glab_bookings", tableFor(catalog.PartitionGLab))
	assert.Equal(t, "charger_bookings", tableFor(catalog.PartitionCharger))
}

func TestTableForPanicsOnUnknownPartition(t *testing.T) {
	assert.Panics(t, func() { tableFor(catalog.Partition(99)) })
}

func TestColumnFor(t *testing.T) {
	assert.Equal(t, "room_type", columnFor(catalog.ColumnRoomType))
	assert.Equal(t, "charger_type", columnFor(catalog.ColumnChargerType))
}

func TestConflictColumnOf(t *testing.T) {
	assert.Equal(t, catalog.ColumnRoomType, conflictColumnOf(catalog.PartitionLibrary))
	assert.Equal(t, catalog.ColumnRoomType, conflictColumnOf(catalog.PartitionGLab))
	assert.Equal(t, catalog.ColumnChargerType, conflictColumnOf(catalog.PartitionCharger))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?,?,?", placeholders(3))
}
