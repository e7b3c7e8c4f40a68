// Package catalog holds the static mapping from bookable resource
// identifiers to their storage partition, conflict column and concrete
// instances.  All lookups are deterministic and injection-free: partitions
// and columns are closed enums, never interpolated strings.
package catalog

// Partition identifies the storage group (table) a booking belongs to.
type Partition int

const (
	PartitionLibrary Partition = iota + 1 // new media library study rooms
	PartitionGLab                         // GLAB rehearsal spaces
	PartitionCharger                      // loanable charger items
)

// ConflictColumn selects which column of the partition identifies the
// concrete bookable unit when checking for overlapping bookings.
type ConflictColumn int

const (
	ColumnRoomType ConflictColumn = iota + 1
	ColumnChargerType
)

// FallbackPrefix is the reserved code prefix for categories without an
// explicit mapping.  It never collides with a real category prefix.
const FallbackPrefix byte = '9'

// Resource describes one bookable category: what the user requests, where
// its bookings are stored, and the concrete units that can satisfy a
// request.  Instances are listed in fixed priority order; lower-indexed
// units are always tried first so allocation is deterministic under load.
type Resource struct {
	Category  string         // identifier the user requests, e.g. "01BLUE", "CHARGER01"
	Label     string         // display label written to the audit log
	Partition Partition      // storage partition
	Column    ConflictColumn // conflict column within the partition
	Prefix    byte           // reserve code prefix digit
	Instances []string       // concrete unit identifiers, priority order
}

// Multi reports whether the category maps to more than one physical unit.
func (r Resource) Multi() bool { return len(r.Instances) > 1 }

// CodePrefix returns the reserve code prefix digit for the category.
// Entries without an explicit prefix fall back to the reserved
// FallbackPrefix so code allocation never emits a zero byte.
func (r Resource) CodePrefix() byte {
	if r.Prefix == 0 {
		return FallbackPrefix
	}
	return r.Prefix
}

var resources = []Resource{
	{Category: "01BLUE", Label: "01BLUE", Partition: PartitionLibrary, Column: ColumnRoomType, Prefix: '1', Instances: []string{"01BLUE"}},
	{Category: "02GRAY", Label: "02GRAY", Partition: PartitionLibrary, Column: ColumnRoomType, Prefix: '2', Instances: []string{"02GRAY"}},
	{Category: "03SILVER", Label: "03SILVER", Partition: PartitionLibrary, Column: ColumnRoomType, Prefix: '3', Instances: []string{"03SILVER"}},
	{Category: "04GOLD", Label: "04GOLD", Partition: PartitionLibrary, Column: ColumnRoomType, Prefix: '4', Instances: []string{"04GOLD"}},
	{Category: "GLAB1", Label: "GLAB1", Partition: PartitionGLab, Column: ColumnRoomType, Prefix: '5', Instances: []string{"GLAB1"}},
	{Category: "GLAB2", Label: "GLAB2", Partition: PartitionGLab, Column: ColumnRoomType, Prefix: '6', Instances: []string{"GLAB2"}},
	{
		Category:  "CHARGER01",
		Label:     "노트북 충전기 (C-Type 65W)",
		Partition: PartitionCharger,
		Column:    ColumnChargerType,
		Prefix:    '7',
		Instances: []string{"노트북 충전기 (C-Type 65W) 1", "노트북 충전기 (C-Type 65W) 2"},
	},
	{
		Category:  "CHARGER02",
		Label:     "스마트폰 충전기 (C-Type)",
		Partition: PartitionCharger,
		Column:    ColumnChargerType,
		Prefix:    '7',
		Instances: []string{"스마트폰 충전기 (C-Type) 1", "스마트폰 충전기 (C-Type) 2"},
	},
	{
		Category:  "CHARGER03",
		Label:     "아이폰 충전기 (8pin)",
		Partition: PartitionCharger,
		Column:    ColumnChargerType,
		Prefix:    '7',
		Instances: []string{"아이폰 충전기 (8pin) 1", "아이폰 충전기 (8pin) 2"},
	},
}

var (
	byCategory  = map[string]Resource{}
	byInstance  = map[string]Resource{}
	byPrefix    = map[byte]Partition{}
	categoryIdx []string
)

func init() {
	for _, r := range resources {
		byCategory[r.Category] = r
		byPrefix[r.Prefix] = r.Partition
		categoryIdx = append(categoryIdx, r.Category)
		for _, inst := range r.Instances {
			byInstance[inst] = r
		}
	}
}

// Resolve maps a requested identifier to its resource definition.  Unknown
// identifiers yield ok=false so callers can reject cleanly.
func Resolve(identifier string) (Resource, bool) {
	r, ok := byCategory[identifier]
	return r, ok
}

// CategoryOf performs the reverse lookup from a concrete instance
// identifier to its owning resource.  Booking "노트북 충전기 ... 2" still
// counts against the CHARGER01 category this way.
func CategoryOf(instance string) (Resource, bool) {
	r, ok := byInstance[instance]
	return r, ok
}

// PartitionForPrefix resolves the storage partition from a reserve code's
// first character.  Used by cancellation, which only has the code.
func PartitionForPrefix(prefix byte) (Partition, bool) {
	p, ok := byPrefix[prefix]
	return p, ok
}

// Categories returns all category identifiers in declaration order.
func Categories() []string {
	out := make([]string, len(categoryIdx))
	copy(out, categoryIdx)
	return out
}

// AuditTypes returns every resource_type value the audit log may carry for
// the category: the category label itself plus each concrete instance.
// The same-day duplicate check matches against this set.
func (r Resource) AuditTypes() []string {
	out := make([]string, 0, len(r.Instances)+1)
	out = append(out, r.Label)
	for _, inst := range r.Instances {
		if inst != r.Label {
			out = append(out, inst)
		}
	}
	return out
}
