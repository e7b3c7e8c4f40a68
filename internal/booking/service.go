package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/jihokoo/campus-reservation/internal/catalog"
	"github.com/jihokoo/campus-reservation/internal/model"
	"github.com/jihokoo/campus-reservation/internal/policy"
)

// fallbackLockerPassword is returned when no locker row is configured for
// a charger instance, matching what facility staff print on the lockers.
const fallbackLockerPassword = "0000"

// Options toggle the deployment variants of the transaction core.
type Options struct {
	Policy       policy.Config
	PayerCheck   bool          // gate item bookings on the payers table
	VerifiedOnly bool          // resolve requester from verified_students
	TxTimeout    time.Duration // upper bound for one transaction
}

// Service runs the booking and cancellation transactions.  It holds no
// mutable state of its own; concurrency safety comes entirely from the
// store's row locking.
type Service struct {
	store Store
	opts  Options
	log   zerolog.Logger
	now   func() time.Time
}

// NewService wires the transaction core to its storage dependency.
func NewService(store Store, opts Options, log zerolog.Logger) *Service {
	if store == nil {
		panic("nil store passed to NewService")
	}
	if opts.TxTimeout <= 0 {
		opts.TxTimeout = 10 * time.Second
	}
	return &Service{store: store, opts: opts, log: log, now: time.Now}
}

// ReserveRequest is one inbound booking attempt.
type ReserveRequest struct {
	Resource  string // requested category identifier, e.g. "01BLUE", "CHARGER02"
	Start     string // "HH:MM", inclusive
	End       string // "HH:MM", exclusive
	Requester model.Requester
	ChannelID string
}

// ReserveResult reports a committed booking.
type ReserveResult struct {
	Code           string
	Category       string // display label of the category
	Instance       string // concrete unit that was allocated
	Date           string
	Start, End     string
	MaskedName     string
	LockerPassword string // set for item bookings only
}

// DisplayTime renders the slot the way chat responses show it.
func (r ReserveResult) DisplayTime() string { return r.Start + " - " + r.End }

// Reserve validates the request, detects conflicts under lock, allocates a
// reserve code and commits the booking plus its audit entry atomically.
// Validation failures are reported through the sentinel errors in this
// package; any other error means the transaction rolled back with no
// partial state visible.
func (s *Service) Reserve(ctx context.Context, req ReserveRequest) (*ReserveResult, error) {
	res, ok := catalog.Resolve(req.Resource)
	if !ok {
		return nil, ErrUnknownResource
	}

	now := s.now()
	if !s.opts.Policy.WithinBookingWindow(now) {
		return nil, ErrOutsideWindow
	}
	if !s.opts.Policy.ValidDuration(req.Start, req.End) {
		return nil, ErrBadDuration
	}
	date := now.In(s.opts.Policy.Location).Format("2006-01-02")

	requester := req.Requester
	if s.opts.VerifiedOnly {
		verified, err := s.store.VerifiedStudent(ctx, req.ChannelID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrNotVerified
			}
			return nil, err
		}
		requester = verified
	}
	if s.opts.PayerCheck && res.Partition == catalog.PartitionCharger {
		payer, err := s.store.IsPayer(ctx, requester.Name, requester.StudentID)
		if err != nil {
			return nil, err
		}
		if !payer {
			return nil, ErrNotPayer
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.TxTimeout)
	defer cancel()
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	dup, err := tx.HasSameDayReserve(ctx, req.ChannelID, date, res.AuditTypes())
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateCategory
	}

	// Try instances in priority order; commit to the first free one.
	instance := ""
	for _, inst := range res.Instances {
		over, err := tx.HasOverlap(ctx, res.Partition, res.Column, date, inst, req.Start, req.End)
		if err != nil {
			return nil, err
		}
		if !over {
			instance = inst
			break
		}
	}
	if instance == "" {
		if res.Multi() {
			return nil, ErrAllInstancesBusy
		}
		return nil, ErrSlotConflict
	}

	seq, err := tx.MaxCodeSequence(ctx, res.CodePrefix())
	if err != nil {
		return nil, err
	}
	code := FormatCode(res.CodePrefix(), seq+1)

	b := model.Booking{
		ReserveCode:  code,
		ResourceType: instance,
		ReserveDate:  date,
		StartTime:    req.Start,
		EndTime:      req.End,
		MaskedName:   requester.MaskedName(),
	}
	if err := tx.InsertBooking(ctx, res.Partition, res.Column, b); err != nil {
		return nil, err
	}
	if err := tx.InsertAudit(ctx, model.AuditEntry{
		ReserveCode:  code,
		ResourceType: res.Label,
		Action:       model.ActionReserve,
		Name:         requester.Name,
		StudentID:    requester.StudentID,
		Phone:        requester.Phone,
		ChannelID:    req.ChannelID,
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	result := &ReserveResult{
		Code:       code,
		Category:   res.Label,
		Instance:   instance,
		Date:       date,
		Start:      req.Start,
		End:        req.End,
		MaskedName: b.MaskedName,
	}
	if res.Partition == catalog.PartitionCharger {
		pwd, err := s.store.LockerPassword(ctx, instance)
		if err != nil {
			s.log.Warn().Err(err).Str("instance", instance).Msg("locker password lookup failed")
			pwd = fallbackLockerPassword
		}
		result.LockerPassword = pwd
	}
	s.log.Info().Str("code", code).Str("instance", instance).Str("date", date).Msg("reservation committed")
	return result, nil
}

// CancelRequest asks to cancel an existing booking by reserve code.
type CancelRequest struct {
	Code      string
	ChannelID string
}

// CancelResult reports a committed cancellation for confirmation.
type CancelResult struct {
	Code         string
	ResourceType string // category label from the original reserve entry
	Date         string
	Start, End   string
	MaskedName   string
}

// DisplayTime renders the cancelled slot for display.
func (r CancelResult) DisplayTime() string { return r.Start + " - " + r.End }

// Cancel looks up the reserve audit entry for the code, verifies the
// requester owns it, deletes the live booking row under lock and appends a
// cancel audit entry, all in one transaction.  Cancelling an already
// cancelled code yields ErrAlreadyCancelled and writes nothing.
func (s *Service) Cancel(ctx context.Context, req CancelRequest) (*CancelResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.TxTimeout)
	defer cancel()
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	entry, err := tx.GetReserveAudit(ctx, req.Code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	// Reveal nothing about the booking when the identity does not match.
	if entry.ChannelID != req.ChannelID {
		return nil, ErrNotOwner
	}

	prefix, ok := ParseCode(req.Code)
	if !ok {
		return nil, ErrInvalidCode
	}
	partition, ok := catalog.PartitionForPrefix(prefix)
	if !ok {
		return nil, ErrInvalidCode
	}

	b, err := tx.GetBookingForUpdate(ctx, partition, req.Code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrAlreadyCancelled
		}
		return nil, err
	}
	if err := tx.DeleteBooking(ctx, partition, req.Code); err != nil {
		return nil, err
	}
	if err := tx.InsertAudit(ctx, model.AuditEntry{
		ReserveCode:  entry.ReserveCode,
		ResourceType: entry.ResourceType,
		Action:       model.ActionCancel,
		Name:         entry.Name,
		StudentID:    entry.StudentID,
		Phone:        entry.Phone,
		ChannelID:    entry.ChannelID,
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	s.log.Info().Str("code", req.Code).Msg("reservation cancelled")
	return &CancelResult{
		Code:         req.Code,
		ResourceType: entry.ResourceType,
		Date:         b.ReserveDate,
		Start:        b.StartTime,
		End:          b.EndTime,
		MaskedName:   b.MaskedName,
	}, nil
}
