package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRooms(t *testing.T) {
	for category, prefix := range map[string]byte{
		"01BLUE": '1', "02GRAY": '2', "03SILVER": '3', "04GOLD": '4',
		"GLAB1": '5', "GLAB2": '6',
	} {
		r, ok := Resolve(category)
		assert.True(t, ok, category)
		assert.Equal(t, prefix, r.Prefix, category)
		assert.Equal(t, []string{category}, r.Instances, category)
		assert.False(t, r.Multi(), category)
	}
}

func TestResolveChargers(t *testing.T) {
	r, ok := Resolve("CHARGER01")
	assert.True(t, ok)
	assert.Equal(t, PartitionCharger, r.Partition)
	assert.Equal(t, ColumnChargerType, r.Column)
	assert.Equal(t, byte('7'), r.Prefix)
	assert.Equal(t, []string{"노트북 충전기 (C-Type 65W) 1", "노트북 충전기 (C-Type 65W) 2"}, r.Instances)
	assert.True(t, r.Multi())
}

func TestResolveUnknown(t *testing.T) {
	_, ok := Resolve("05PINK")
	assert.False(t, ok)
	_, ok = Resolve("")
	assert.False(t, ok)
}

func TestCategoryOf(t *testing.T) {
	r, ok := CategoryOf("스마트폰 충전기 (C-Type) 2")
	assert.True(t, ok)
	assert.Equal(t, "CHARGER02", r.Category)

	r, ok = CategoryOf("GLAB1")
	assert.True(t, ok)
	assert.Equal(t, "GLAB1", r.Category)

	_, ok = CategoryOf("노트북 충전기 (C-Type 65W) 3")
	assert.False(t, ok)
}

func TestPartitionForPrefix(t *testing.T) {
	for prefix, want := range map[byte]Partition{
		'1': PartitionLibrary, '4': PartitionLibrary,
		'5': PartitionGLab, '6': PartitionGLab,
		'7': PartitionCharger,
	} {
		p, ok := PartitionForPrefix(prefix)
		assert.True(t, ok)
		assert.Equal(t, want, p)
	}

	_, ok := PartitionForPrefix('8')
	assert.False(t, ok)
	_, ok = PartitionForPrefix(FallbackPrefix)
	assert.False(t, ok)
}

func TestCodePrefix(t *testing.T) {
	room, _ := Resolve("01BLUE")
	assert.Equal(t, byte('1'), room.CodePrefix())

	charger, _ := Resolve("CHARGER02")
	assert.Equal(t, byte('7'), charger.CodePrefix())

	// Entries without an explicit prefix get the reserved fallback digit.
	assert.Equal(t, FallbackPrefix, Resource{Category: "EXTRA"}.CodePrefix())
}

func TestAuditTypes(t *testing.T) {
	room, _ := Resolve("01BLUE")
	assert.Equal(t, []string{"01BLUE"}, room.AuditTypes())

	charger, _ := Resolve("CHARGER03")
	assert.Equal(t, []string{
		"아이폰 충전기 (8pin)",
		"아이폰 충전기 (8pin) 1",
		"아이폰 충전기 (8pin) 2",
	}, charger.AuditTypes())
}

func TestCategoriesReturnsCopy(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 9)
	assert.Equal(t, "01BLUE", cats[0])

	cats[0] = "mutated"
	assert.Equal(t, "01BLUE", Categories()[0])
}
