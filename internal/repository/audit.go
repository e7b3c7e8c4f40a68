package repository

import (
	"context"

	"github.com/jihokoo/campus-reservation/internal/model"
)

// CodeExists reports whether a reserve code appears anywhere in the audit
// log.  The /reserve/check/reserve_code validation webhook uses this.
func (s *Store) CodeExists(ctx context.Context, code string) (bool, error) {
	const q = `SELECT COUNT(*) FROM reservation_logs WHERE reserve_code = ?`
	var n int
	if err := s.db.QueryRowContext(ctx, q, code).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// RecentLogs returns the newest audit entries for the admin view, newest
// first.  Limit is clamped to a sane range.
func (s *Store) RecentLogs(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const q = `SELECT reserve_code, resource_type, action, name, student_id, phone, channel_id, created_at
	           FROM reservation_logs
	           ORDER BY created_at DESC, id DESC
	           LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.AuditEntry, 0, limit)
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.ReserveCode, &e.ResourceType, &e.Action, &e.Name, &e.StudentID, &e.Phone, &e.ChannelID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
