package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jihokoo/campus-reservation/internal/catalog"
	"github.com/jihokoo/campus-reservation/internal/model"
)

// memoryStore serializes transactions the way the row-locked MySQL store
// does: Begin takes a mutex that Commit/Rollback release, so concurrent
// Reserve calls queue and each sees the previous winner's committed rows.
type memoryStore struct {
	mu       sync.Mutex
	bookings map[catalog.Partition][]model.Booking
	audits   []model.AuditEntry
}

func newMemoryStore() *memoryStore {
	return &memoryStore{bookings: map[catalog.Partition][]model.Booking{}}
}

func (s *memoryStore) Begin(ctx context.Context) (Tx, error) {
	s.mu.Lock()
	return &memoryTx{store: s, staged: map[catalog.Partition][]model.Booking{}}, nil
}

func (s *memoryStore) IsPayer(ctx context.Context, name, studentID string) (bool, error) {
	return true, nil
}

func (s *memoryStore) VerifiedStudent(ctx context.Context, channelID string) (model.Requester, error) {
	return model.Requester{}, ErrNotFound
}

func (s *memoryStore) LockerPassword(ctx context.Context, instance string) (string, error) {
	return "0000", nil
}

type memoryTx struct {
	store        *memoryStore
	staged       map[catalog.Partition][]model.Booking
	stagedAudits []model.AuditEntry
	done         bool
}

func (t *memoryTx) HasSameDayReserve(ctx context.Context, channelID, date string, resourceTypes []string) (bool, error) {
	types := map[string]bool{}
	for _, rt := range resourceTypes {
		types[rt] = true
	}
	for _, e := range append(t.store.audits, t.stagedAudits...) {
		if e.ChannelID == channelID && e.Action == model.ActionReserve && types[e.ResourceType] {
			return true, nil
		}
	}
	return false, nil
}

func (t *memoryTx) HasOverlap(ctx context.Context, p catalog.Partition, col catalog.ConflictColumn, date, instance, start, end string) (bool, error) {
	for _, b := range append(t.store.bookings[p], t.staged[p]...) {
		if b.ResourceType == instance && b.ReserveDate == date && b.StartTime < end && b.EndTime > start {
			return true, nil
		}
	}
	return false, nil
}

func (t *memoryTx) MaxCodeSequence(ctx context.Context, prefix byte) (int, error) {
	highest := 0
	for _, e := range append(t.store.audits, t.stagedAudits...) {
		if e.Action != model.ActionReserve || len(e.ReserveCode) != 6 || e.ReserveCode[0] != prefix {
			continue
		}
		if n, err := strconv.Atoi(e.ReserveCode[1:]); err == nil && n > highest {
			highest = n
		}
	}
	return highest, nil
}

func (t *memoryTx) GetReserveAudit(ctx context.Context, code string) (model.AuditEntry, error) {
	for _, e := range t.store.audits {
		if e.ReserveCode == code && e.Action == model.ActionReserve {
			return e, nil
		}
	}
	return model.AuditEntry{}, ErrNotFound
}

func (t *memoryTx) GetBookingForUpdate(ctx context.Context, p catalog.Partition, code string) (model.Booking, error) {
	for _, b := range t.store.bookings[p] {
		if b.ReserveCode == code {
			return b, nil
		}
	}
	return model.Booking{}, ErrNotFound
}

func (t *memoryTx) InsertBooking(ctx context.Context, p catalog.Partition, col catalog.ConflictColumn, b model.Booking) error {
	t.staged[p] = append(t.staged[p], b)
	return nil
}

func (t *memoryTx) DeleteBooking(ctx context.Context, p catalog.Partition, code string) error {
	kept := t.store.bookings[p][:0]
	for _, b := range t.store.bookings[p] {
		if b.ReserveCode != code {
			kept = append(kept, b)
		}
	}
	t.store.bookings[p] = kept
	return nil
}

func (t *memoryTx) InsertAudit(ctx context.Context, e model.AuditEntry) error {
	t.stagedAudits = append(t.stagedAudits, e)
	return nil
}

func (t *memoryTx) Commit() error {
	if t.done {
		return errors.New("transaction already finished")
	}
	t.done = true
	for p, rows := range t.staged {
		t.store.bookings[p] = append(t.store.bookings[p], rows...)
	}
	t.store.audits = append(t.store.audits, t.stagedAudits...)
	t.store.mu.Unlock()
	return nil
}

func (t *memoryTx) Rollback() error {
	if t.done {
		return errors.New("transaction already finished")
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func TestReserveConcurrentSameSlotSingleWinner(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store, Options{})

	const attempts = 16
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.ChannelID = fmt.Sprintf("channel-%02d", i)
			_, err := svc.Reserve(context.Background(), req)
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	wins, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)
	assert.Len(t, store.bookings[catalog.PartitionLibrary], 1)
}

func TestReserveConcurrentCodesUnique(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store, Options{})

	// Two disjoint slots per category; every attempt should succeed and
	// every issued code must be unique, even within the shared '7' prefix.
	slots := [][2]string{{"09:00", "10:00"}, {"10:30", "11:30"}}
	categories := catalog.Categories()
	total := len(categories) * len(slots)

	type outcome struct {
		code string
		err  error
	}
	out := make(chan outcome, total)
	var wg sync.WaitGroup
	id := 0
	for _, cat := range categories {
		for _, slot := range slots {
			id++
			wg.Add(1)
			go func(cat, start, end string, id int) {
				defer wg.Done()
				res, err := svc.Reserve(context.Background(), ReserveRequest{
					Resource:  cat,
					Start:     start,
					End:       end,
					Requester: model.Requester{Name: "김철수", StudentID: "20231234", Phone: "01012345678"},
					ChannelID: fmt.Sprintf("channel-%02d", id),
				})
				if err != nil {
					out <- outcome{err: err}
					return
				}
				out <- outcome{code: res.Code}
			}(cat, slot[0], slot[1], id)
		}
	}
	wg.Wait()
	close(out)

	codes := map[string]bool{}
	for o := range out {
		require.NoError(t, o.err)
		assert.False(t, codes[o.code], "code %s issued twice", o.code)
		codes[o.code] = true
	}
	assert.Len(t, codes, total)
	assert.Len(t, store.audits, total)
}
