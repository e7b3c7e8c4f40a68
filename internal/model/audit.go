package model

import "time"

// Action distinguishes the two kinds of audit entries.
type Action string

const (
	ActionReserve Action = "reserve"
	ActionCancel  Action = "cancel"
)

// AuditEntry is one append-only row of the reservation log.  The log is
// the source of truth for code sequencing and for "who booked this code":
// every booking has exactly one prior reserve entry with a matching code,
// and cancellation appends a cancel entry without touching the original.
type AuditEntry struct {
	ReserveCode  string
	ResourceType string // category label, not necessarily the concrete instance
	Action       Action
	Name         string
	StudentID    string
	Phone        string
	ChannelID    string // opaque chat identity used for ownership checks
	CreatedAt    time.Time
}
