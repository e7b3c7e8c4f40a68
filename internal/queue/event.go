// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationEvent is published after a reservation or cancellation commits.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database. Action is "reserve" or "cancel".
type ReservationEvent struct {
	ReserveCode  string `json:"reserve_code"`
	Action       string `json:"action"`
	ResourceType string `json:"resource_type"`
	Instance     string `json:"instance,omitempty"`
	ReserveDate  string `json:"reserve_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	MaskedName   string `json:"masked_name"`
	ChannelID    string `json:"channel_id"`
	OccurredAt   string `json:"occurred_at"`
}
