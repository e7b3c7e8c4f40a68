// Package repository implements the booking store on MySQL via
// database/sql.  Table and column names come from closed mappings over
// the catalog enums; no identifier is ever built from request input.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jihokoo/campus-reservation/internal/booking"
	"github.com/jihokoo/campus-reservation/internal/catalog"
	"github.com/jihokoo/campus-reservation/internal/model"
)

// Store provides transactional and read-only access to the reservation
// tables.  It implements booking.Store.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store bound to the given database handle.
func NewStore(db *sql.DB) *Store {
	if db == nil {
		panic("nil db passed to NewStore")
	}
	return &Store{db: db}
}

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *sql.DB { return s.db }

// tableFor maps a partition to its bookings table.  The switch is
// exhaustive over the catalog enum; an unknown value is a programming
// error, caught by the panic rather than silently writing elsewhere.
func tableFor(p catalog.Partition) string {
	switch p {
	case catalog.PartitionLibrary:
		return "library_bookings"
	case catalog.PartitionGLab:
		return "glab_bookings"
	case catalog.PartitionCharger:
		return "charger_bookings"
	}
	panic("unknown partition")
}

// columnFor maps the conflict column enum to the physical column name.
func columnFor(col catalog.ConflictColumn) string {
	switch col {
	case catalog.ColumnRoomType:
		return "room_type"
	case catalog.ColumnChargerType:
		return "charger_type"
	}
	panic("unknown conflict column")
}

// conflictColumnOf derives the conflict column a partition's table uses.
func conflictColumnOf(p catalog.Partition) catalog.ConflictColumn {
	if p == catalog.PartitionCharger {
		return catalog.ColumnChargerType
	}
	return catalog.ColumnRoomType
}

// Begin opens a transaction for one booking or cancellation operation.
func (s *Store) Begin(ctx context.Context) (booking.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &storeTx{tx: tx}, nil
}

// IsPayer reports whether the (name, student id) pair exists in the
// externally maintained payers table.
func (s *Store) IsPayer(ctx context.Context, name, studentID string) (bool, error) {
	const q = `SELECT COUNT(*) FROM payers WHERE student_id = ? AND name = ?`
	var n int
	if err := s.db.QueryRowContext(ctx, q, studentID, name).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// VerifiedStudent loads the verified student record for a chat channel.
func (s *Store) VerifiedStudent(ctx context.Context, channelID string) (model.Requester, error) {
	const q = `SELECT name, student_id, phone FROM verified_students WHERE channel_id = ?`
	var r model.Requester
	err := s.db.QueryRowContext(ctx, q, channelID).Scan(&r.Name, &r.StudentID, &r.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Requester{}, booking.ErrNotFound
	}
	if err != nil {
		return model.Requester{}, err
	}
	return r, nil
}

// UpsertVerifiedStudent records a completed identity verification for a
// channel, replacing any previous record for the same channel.
func (s *Store) UpsertVerifiedStudent(ctx context.Context, channelID string, r model.Requester) error {
	const q = `INSERT INTO verified_students (channel_id, name, student_id, phone)
	           VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE name = VALUES(name), student_id = VALUES(student_id), phone = VALUES(phone)`
	_, err := s.db.ExecContext(ctx, q, channelID, r.Name, r.StudentID, r.Phone)
	return err
}

// LockerPassword returns the locker password configured for a concrete
// charger instance.
func (s *Store) LockerPassword(ctx context.Context, instance string) (string, error) {
	const q = `SELECT password FROM charger_lockers WHERE charger_type = ?`
	var pwd string
	err := s.db.QueryRowContext(ctx, q, instance).Scan(&pwd)
	if errors.Is(err, sql.ErrNoRows) {
		return "", booking.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return pwd, nil
}

// BookingsByDate lists the bookings of one partition on a calendar day
// whose unit identifier is in resourceTypes, ordered by start time.  The
// daily reservation boards render from this; it never writes.
func (s *Store) BookingsByDate(ctx context.Context, p catalog.Partition, date string, resourceTypes []string) ([]model.Booking, error) {
	if len(resourceTypes) == 0 {
		return []model.Booking{}, nil
	}
	col := columnFor(conflictColumnOf(p))
	q := `SELECT reserve_code, ` + col + `,
	             DATE_FORMAT(reserve_date, '%Y-%m-%d'),
	             TIME_FORMAT(start_time, '%H:%i'), TIME_FORMAT(end_time, '%H:%i'),
	             masked_name, created_at
	      FROM ` + tableFor(p) + `
	      WHERE reserve_date = ? AND ` + col + ` IN (` + placeholders(len(resourceTypes)) + `)
	      ORDER BY start_time, ` + col
	args := make([]interface{}, 0, len(resourceTypes)+1)
	args = append(args, date)
	for _, t := range resourceTypes {
		args = append(args, t)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ReserveCode, &b.ResourceType, &b.ReserveDate, &b.StartTime, &b.EndTime, &b.MaskedName, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, n*2-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, '?')
	}
	return string(out)
}
