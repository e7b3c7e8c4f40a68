package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jihokoo/campus-reservation/internal/booking"
	"github.com/jihokoo/campus-reservation/internal/catalog"
	"github.com/jihokoo/campus-reservation/internal/model"
)

// storeTx implements booking.Tx over one *sql.Tx.  Every locked read uses
// SELECT ... FOR UPDATE so that two concurrent transactions touching the
// same instance and date serialize: the second blocks on the first's row
// locks and re-evaluates after it commits or rolls back.
type storeTx struct {
	tx *sql.Tx
}

func (t *storeTx) Commit() error   { return t.tx.Commit() }
func (t *storeTx) Rollback() error { return t.tx.Rollback() }

// HasSameDayReserve implements the one-per-category-per-day rule.  It
// counts reserve-action audit entries for the channel on the given day
// whose resource_type belongs to the category.
func (t *storeTx) HasSameDayReserve(ctx context.Context, channelID, date string, resourceTypes []string) (bool, error) {
	if len(resourceTypes) == 0 {
		return false, nil
	}
	q := `SELECT COUNT(*) FROM reservation_logs
	      WHERE channel_id = ? AND action = 'reserve' AND DATE(created_at) = ?
	        AND resource_type IN (` + placeholders(len(resourceTypes)) + `)`
	args := make([]interface{}, 0, len(resourceTypes)+2)
	args = append(args, channelID, date)
	for _, rt := range resourceTypes {
		args = append(args, rt)
	}
	var n int
	if err := t.tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// HasOverlap checks the half-open interval intersection rule against the
// bookings of one instance on one day: an existing [s,e) conflicts with
// the requested [start, end) iff s < end AND e > start.  The FOR UPDATE
// locks the matching rows (and the scanned range) for the transaction.
func (t *storeTx) HasOverlap(ctx context.Context, p catalog.Partition, col catalog.ConflictColumn, date, instance, start, end string) (bool, error) {
	q := `SELECT COUNT(*) FROM ` + tableFor(p) + `
	      WHERE reserve_date = ? AND ` + columnFor(col) + ` = ?
	        AND start_time < ? AND end_time > ?
	      FOR UPDATE`
	var n int
	if err := t.tx.QueryRowContext(ctx, q, date, instance, end, start).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// MaxCodeSequence reads the highest sequence number issued under a code
// prefix.  The locked read keeps concurrent allocations in the same
// category from ever producing the same code.
func (t *storeTx) MaxCodeSequence(ctx context.Context, prefix byte) (int, error) {
	const q = `SELECT COALESCE(MAX(CAST(SUBSTRING(reserve_code, 2) AS UNSIGNED)), 0)
	           FROM reservation_logs
	           WHERE action = 'reserve' AND reserve_code LIKE ?
	           FOR UPDATE`
	var highest int
	if err := t.tx.QueryRowContext(ctx, q, string(prefix)+"%").Scan(&highest); err != nil {
		return 0, err
	}
	return highest, nil
}

// GetReserveAudit loads the original reserve entry for a code.  Exactly
// one exists per issued code; the log is append-only.
func (t *storeTx) GetReserveAudit(ctx context.Context, code string) (model.AuditEntry, error) {
	const q = `SELECT reserve_code, resource_type, action, name, student_id, phone, channel_id, created_at
	           FROM reservation_logs
	           WHERE reserve_code = ? AND action = 'reserve'
	           LIMIT 1`
	var e model.AuditEntry
	err := t.tx.QueryRowContext(ctx, q, code).Scan(
		&e.ReserveCode, &e.ResourceType, &e.Action, &e.Name, &e.StudentID, &e.Phone, &e.ChannelID, &e.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.AuditEntry{}, booking.ErrNotFound
	}
	if err != nil {
		return model.AuditEntry{}, err
	}
	return e, nil
}

// GetBookingForUpdate loads the live booking row under an exclusive lock,
// making cancellation and a concurrent re-cancel (or insert of the same
// code) mutually exclusive.
func (t *storeTx) GetBookingForUpdate(ctx context.Context, p catalog.Partition, code string) (model.Booking, error) {
	col := columnFor(conflictColumnOf(p))
	q := `SELECT reserve_code, ` + col + `,
	             DATE_FORMAT(reserve_date, '%Y-%m-%d'),
	             TIME_FORMAT(start_time, '%H:%i'), TIME_FORMAT(end_time, '%H:%i'),
	             masked_name, created_at
	      FROM ` + tableFor(p) + `
	      WHERE reserve_code = ?
	      FOR UPDATE`
	var b model.Booking
	err := t.tx.QueryRowContext(ctx, q, code).Scan(
		&b.ReserveCode, &b.ResourceType, &b.ReserveDate, &b.StartTime, &b.EndTime, &b.MaskedName, &b.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, booking.ErrNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// InsertBooking persists the new booking row into its partition table.
func (t *storeTx) InsertBooking(ctx context.Context, p catalog.Partition, col catalog.ConflictColumn, b model.Booking) error {
	q := `INSERT INTO ` + tableFor(p) + ` (reserve_code, ` + columnFor(col) + `, reserve_date, start_time, end_time, masked_name)
	      VALUES (?, ?, ?, ?, ?, ?)`
	_, err := t.tx.ExecContext(ctx, q, b.ReserveCode, b.ResourceType, b.ReserveDate, b.StartTime, b.EndTime, b.MaskedName)
	return err
}

// DeleteBooking removes the live row; the audit log keeps the history.
func (t *storeTx) DeleteBooking(ctx context.Context, p catalog.Partition, code string) error {
	q := `DELETE FROM ` + tableFor(p) + ` WHERE reserve_code = ?`
	_, err := t.tx.ExecContext(ctx, q, code)
	return err
}

// InsertAudit appends one entry to the reservation log.
func (t *storeTx) InsertAudit(ctx context.Context, e model.AuditEntry) error {
	const q = `INSERT INTO reservation_logs (reserve_code, resource_type, action, name, student_id, phone, channel_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := t.tx.ExecContext(ctx, q, e.ReserveCode, e.ResourceType, string(e.Action), e.Name, e.StudentID, e.Phone, e.ChannelID)
	return err
}
