package model

import "time"

// Booking is one active reservation of a concrete resource instance.
// A booking exists only while it is live: cancellation deletes the row,
// and the "was cancelled" fact lives solely in the audit log.
//
// Fields:
//  ReserveCode  – primary identifier, "<prefix><5-digit sequence>".
//  ResourceType – concrete bookable unit (room code or "charger label N").
//  ReserveDate  – calendar day the slot belongs to, "YYYY-MM-DD".
//  StartTime    – slot start, "HH:MM" (inclusive).
//  EndTime      – slot end, "HH:MM" (exclusive).
//  MaskedName   – display-safe requester name.
//  CreatedAt    – insertion timestamp.
type Booking struct {
	ReserveCode  string
	ResourceType string
	ReserveDate  string
	StartTime    string
	EndTime      string
	MaskedName   string
	CreatedAt    time.Time
}

// DisplayTime renders the slot the way chat responses show it.
func (b Booking) DisplayTime() string { return b.StartTime + " - " + b.EndTime }
