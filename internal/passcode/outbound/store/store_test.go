package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/loanforge/loanforge/internal/passcode/entity"
	"github.com/loanforge/loanforge/internal/pkg/goerror"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func TestMemory_SaveFind(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	mem := NewMemory(clk, instrument.NewNoop())
	ctx := context.Background()

	pc := entity.Passcode{
		TransactionID: "txn-1",
		Recipient:     "user@example.com",
		Code:          "123456",
		ExpiresAt:     clk.now.Add(10 * time.Minute),
	}

	if err := mem.Save(ctx, pc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := mem.Find(ctx, "txn-1", "  USER@example.com ")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	if got.Code != "123456" {
		t.Fatalf("Find() code = %q, want %q", got.Code, "123456")
	}
}

func TestMemory_FindMissing(t *testing.T) {
	clk := &fakeClock{now: time.Now()}
	mem := NewMemory(clk, instrument.NewNoop())

	_, err := mem.Find(context.Background(), "txn-404", "user@example.com")
	if !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("Find() error = %v, want %v", err, goerror.ErrNotFound)
	}
}

func TestMemory_SaveReplacesExistingCode(t *testing.T) {
	clk := &fakeClock{now: time.Now()}
	mem := NewMemory(clk, instrument.NewNoop())
	ctx := context.Background()

	first := entity.Passcode{
		TransactionID: "txn-1",
		Recipient:     "user@example.com",
		Code:          "111111",
		ExpiresAt:     clk.now.Add(10 * time.Minute),
	}
	second := first
	second.Code = "222222"

	if err := mem.Save(ctx, first); err != nil {
		t.Fatalf("Save(first) error = %v", err)
	}
	if err := mem.Save(ctx, second); err != nil {
		t.Fatalf("Save(second) error = %v", err)
	}

	got, err := mem.Find(ctx, "txn-1", "user@example.com")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	if got.Code != "222222" {
		t.Fatalf("Find() code = %q, want the replacement %q", got.Code, "222222")
	}

	if mem.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after replacement", mem.Len())
	}
}

func TestMemory_ConcurrentSaveFind(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	mem := NewMemory(clk, instrument.NewNoop())
	ctx := context.Background()

	const writers = 8
	const iterations = 100

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(2)

		go func(w int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				pc := entity.Passcode{
					TransactionID: "txn-1",
					Recipient:     "user@example.com",
					Code:          fmt.Sprintf("%03d%03d", w, i),
					ExpiresAt:     clk.now.Add(10 * time.Minute),
				}
				if err := mem.Save(ctx, pc); err != nil {
					t.Errorf("Save() error = %v", err)
					return
				}
			}
		}(w)

		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				got, err := mem.Find(ctx, "txn-1", "user@example.com")
				if errors.Is(err, goerror.ErrNotFound) {
					continue
				}
				if err != nil {
					t.Errorf("Find() error = %v", err)
					return
				}
				if got.TransactionID != "txn-1" || len(got.Code) != 6 {
					t.Errorf("Find() returned inconsistent record %+v", got)
					return
				}
			}
		}()
	}
	wg.Wait()

	if mem.Len() != 1 {
		t.Fatalf("Len() = %d, want 1; every save targets the same pair", mem.Len())
	}
}

func TestMemory_SaveSweepsExpiredEntries(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	mem := NewMemory(clk, instrument.NewNoop())
	ctx := context.Background()

	stale := entity.Passcode{
		TransactionID: "txn-old",
		Recipient:     "old@example.com",
		Code:          "999999",
		ExpiresAt:     clk.now.Add(time.Minute),
	}
	if err := mem.Save(ctx, stale); err != nil {
		t.Fatalf("Save(stale) error = %v", err)
	}

	clk.now = clk.now.Add(5 * time.Minute)

	fresh := entity.Passcode{
		TransactionID: "txn-new",
		Recipient:     "new@example.com",
		Code:          "123456",
		ExpiresAt:     clk.now.Add(10 * time.Minute),
	}
	if err := mem.Save(ctx, fresh); err != nil {
		t.Fatalf("Save(fresh) error = %v", err)
	}

	if mem.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after the expired entry is swept", mem.Len())
	}

	if _, err := mem.Find(ctx, "txn-old", "old@example.com"); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("Find(stale) error = %v, want %v", err, goerror.ErrNotFound)
	}
}
