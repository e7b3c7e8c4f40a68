package booking

import (
	"context"

	"github.com/jihokoo/campus-reservation/internal/catalog"
	"github.com/jihokoo/campus-reservation/internal/model"
)

// Store is the storage dependency of the transaction core.  Each logical
// operation begins one transaction, owns it for its lifetime and releases
// it on every exit path.  The non-transactional reads back auxiliary
// lookups that never mutate state.
type Store interface {
	// Begin opens a transaction.  The context deadline bounds every
	// statement executed within it.
	Begin(ctx context.Context) (Tx, error)

	// IsPayer reports whether (name, student id) exists in the external
	// payer authorization table.
	IsPayer(ctx context.Context, name, studentID string) (bool, error)

	// VerifiedStudent resolves the verified student record for a chat
	// channel identity.  Returns ErrNotFound when none exists.
	VerifiedStudent(ctx context.Context, channelID string) (model.Requester, error)

	// LockerPassword returns the locker password for a concrete charger
	// instance.  Returns ErrNotFound when no locker is configured.
	LockerPassword(ctx context.Context, instance string) (string, error)
}

// Tx is the locked scope of a single booking or cancellation transaction.
// All reads that feed a write decision happen here so that two concurrent
// requests for the same instance and date serialize on the row locks.
type Tx interface {
	// HasSameDayReserve reports whether the channel identity already has a
	// reserve-action audit entry today for any of the given resource types.
	HasSameDayReserve(ctx context.Context, channelID, date string, resourceTypes []string) (bool, error)

	// HasOverlap reports whether any booking for the instance on the date
	// overlaps the half-open window [start, end).  The read takes exclusive
	// row locks so a concurrent writer blocks until this transaction ends.
	HasOverlap(ctx context.Context, p catalog.Partition, col catalog.ConflictColumn, date, instance, start, end string) (bool, error)

	// MaxCodeSequence returns the highest issued sequence number among
	// reserve-action audit entries with the given code prefix, locking the
	// scanned range so concurrent allocations serialize.
	MaxCodeSequence(ctx context.Context, prefix byte) (int, error)

	// GetReserveAudit loads the reserve-action audit entry for a code.
	// Returns ErrNotFound when the code was never issued.
	GetReserveAudit(ctx context.Context, code string) (model.AuditEntry, error)

	// GetBookingForUpdate loads the live booking row by code under an
	// exclusive lock.  Returns ErrNotFound when the row no longer exists.
	GetBookingForUpdate(ctx context.Context, p catalog.Partition, code string) (model.Booking, error)

	InsertBooking(ctx context.Context, p catalog.Partition, col catalog.ConflictColumn, b model.Booking) error
	DeleteBooking(ctx context.Context, p catalog.Partition, code string) error
	InsertAudit(ctx context.Context, e model.AuditEntry) error

	Commit() error
	Rollback() error
}
