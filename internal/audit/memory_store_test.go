package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func seedRecords(t *testing.T, store Store, n int) []*Record {
	t.Helper()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]*Record, n)

	for i := 0; i < n; i++ {
		r := NewRecord("GET", "/items", "127.0.0.1")
		r.StartedAt = base.Add(time.Duration(i) * time.Minute)
		if i%2 == 0 {
			r.UserID = "even"
		}
		if i%3 == 0 {
			r.MarkFailed()
		}
		r.Finish(200, time.Millisecond)

		if err := store.Save(context.Background(), r); err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		records[i] = r
	}

	return records
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	record := NewRecord("POST", "/things", "10.0.0.1")
	record.AppendMessage("Message Logged: nope")

	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, record.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Message != "Message Logged: nope" {
		t.Errorf("Message = %q, want %q", got.Message, "Message Logged: nope")
	}

	// stored copy must not alias the caller's record
	record.AppendMessage(" more")
	got, _ = store.Get(ctx, record.ID)
	if got.Message != "Message Logged: nope" {
		t.Errorf("stored record changed with caller's copy: %q", got.Message)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	_, err := NewMemoryStore(0).Get(context.Background(), uuid.New())
	if err != ErrRecordNotFound {
		t.Errorf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestMemoryStore_SaveTwiceUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	record := NewRecord("GET", "/", "")

	_ = store.Save(ctx, record)
	record.MarkFailed()
	_ = store.Save(ctx, record)

	if store.Len() != 1 {
		t.Fatalf("Len = %d, want 1", store.Len())
	}

	got, _ := store.Get(ctx, record.ID)
	if got.Status != StatusFailed {
		t.Errorf("Status = %s, want FAILED", got.Status)
	}
}

func TestMemoryStore_ListNewestFirstWithPaging(t *testing.T) {
	store := NewMemoryStore(0)
	records := seedRecords(t, store, 5)

	page, total, err := store.List(context.Background(), Query{Offset: 1, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}

	if len(page) != 2 {
		t.Fatalf("len(page) = %d, want 2", len(page))
	}

	if page[0].ID != records[3].ID || page[1].ID != records[2].ID {
		t.Errorf("unexpected order: got %s, %s", page[0].ID, page[1].ID)
	}
}

func TestMemoryStore_ListAscending(t *testing.T) {
	store := NewMemoryStore(0)
	records := seedRecords(t, store, 3)

	page, _, _ := store.List(context.Background(), Query{Ascending: true})

	if len(page) != 3 || page[0].ID != records[0].ID {
		t.Errorf("expected oldest record first")
	}
}

func TestMemoryStore_ListFilters(t *testing.T) {
	store := NewMemoryStore(0)
	seedRecords(t, store, 6)

	_, total, _ := store.List(context.Background(), Query{UserID: "even"})
	if total != 3 {
		t.Errorf("user filter total = %d, want 3", total)
	}

	// indexes 0 and 3 were failed
	failed, total, _ := store.List(context.Background(), Query{Status: StatusFailed})
	if total != 2 {
		t.Errorf("status filter total = %d, want 2", total)
	}

	for _, r := range failed {
		if r.Status != StatusFailed {
			t.Errorf("unexpected status %s", r.Status)
		}
	}
}

func TestMemoryStore_OffsetPastEnd(t *testing.T) {
	store := NewMemoryStore(0)
	seedRecords(t, store, 2)

	page, total, err := store.List(context.Background(), Query{Offset: 10, Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if total != 2 || len(page) != 0 || page == nil {
		t.Errorf("got total=%d len=%d nil=%v, want 2, 0, non-nil", total, len(page), page == nil)
	}
}

func TestMemoryStore_EvictsOldest(t *testing.T) {
	store := NewMemoryStore(3)
	records := seedRecords(t, store, 5)

	if store.Len() != 3 {
		t.Fatalf("Len = %d, want 3", store.Len())
	}

	if _, err := store.Get(context.Background(), records[0].ID); err != ErrRecordNotFound {
		t.Errorf("oldest record should have been evicted")
	}

	if _, err := store.Get(context.Background(), records[4].ID); err != nil {
		t.Errorf("newest record should be kept: %v", err)
	}
}

func TestMemoryStore_ConcurrentSaves(t *testing.T) {
	store := NewMemoryStore(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Save(context.Background(), NewRecord("GET", "/", ""))
		}()
	}
	wg.Wait()

	if store.Len() != 50 {
		t.Errorf("Len = %d, want 50", store.Len())
	}
}
