// Package store keeps issued passcodes in process memory. Codes are
// short-lived, so durability adds nothing; restarting the process simply
// forces a re-issue.
package store

import (
	"context"
	"sync"

	"github.com/loanforge/loanforge/internal/passcode/entity"
	"github.com/loanforge/loanforge/internal/pkg/clock"
	"github.com/loanforge/loanforge/internal/pkg/goerror"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"go.opentelemetry.io/otel/trace"
)

// sweepLimit caps how many expired entries a single Save call removes, so
// the write path stays bounded no matter how much has accumulated.
const sweepLimit = 64

type Memory struct {
	clock clock.Clocker
	ins   instrument.Instrumentation

	mu    sync.Mutex
	items map[string]entity.Passcode
}

func NewMemory(clk clock.Clocker, ins instrument.Instrumentation) *Memory {
	return &Memory{
		clock: clk,
		ins:   ins,
		items: make(map[string]entity.Passcode),
	}
}

func (m *Memory) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return m.ins.Tracer("passcode.outbound.store").Start(ctx, name)
}

// Save stores the passcode under its identity key, replacing any previous
// code for the same pair. It also opportunistically removes a bounded number
// of expired entries.
func (m *Memory) Save(ctx context.Context, pc entity.Passcode) error {
	_, span := m.startSpan(ctx, "Save")
	defer span.End()

	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, item := range m.items {
		if removed >= sweepLimit {
			break
		}

		if item.IsExpired(now) {
			delete(m.items, key)
			removed++
		}
	}

	m.items[pc.Key()] = pc

	return nil
}

// Find returns the passcode stored for the pair, expired or not. Expiry is
// the caller's decision so that a stale code and a missing code can be told
// apart. It returns goerror.ErrNotFound when nothing was ever issued.
func (m *Memory) Find(ctx context.Context, transactionID, recipient string) (*entity.Passcode, error) {
	_, span := m.startSpan(ctx, "Find")
	defer span.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	pc, ok := m.items[entity.IdentityKey(transactionID, recipient)]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	return &pc, nil
}

// Len reports how many entries are currently held, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.items)
}
