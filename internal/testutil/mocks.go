package testutil

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/udisondev/invengine/internal/model"
	"github.com/udisondev/invengine/internal/notify"
)

// MemCatalog — in-memory model.Catalog с подсчётом запросов.
type MemCatalog struct {
	items map[int32]*model.ItemTemplate

	// Delay is applied to every lookup; ctx cancellation cuts it short.
	Delay time.Duration
	// SlowIDs delays only these ids (takes precedence over Delay when set).
	SlowIDs map[int32]time.Duration

	calls atomic.Int64
}

// NewMemCatalog creates a catalog over tpls.
func NewMemCatalog(tpls ...model.ItemTemplate) *MemCatalog {
	c := &MemCatalog{items: make(map[int32]*model.ItemTemplate, len(tpls))}
	for i := range tpls {
		tpl := tpls[i]
		c.items[tpl.ID] = &tpl
	}
	return c
}

// FixtureCatalog returns a MemCatalog holding AllTemplates().
func FixtureCatalog() *MemCatalog {
	return NewMemCatalog(AllTemplates()...)
}

// ItemByID implements model.Catalog.
func (c *MemCatalog) ItemByID(ctx context.Context, itemID int32) (*model.ItemTemplate, error) {
	c.calls.Add(1)

	delay := c.Delay
	if d, ok := c.SlowIDs[itemID]; ok {
		delay = d
	}
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("item %d: %w", itemID, ctx.Err())
		}
	}

	tpl, ok := c.items[itemID]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", itemID, model.ErrItemNotFound)
	}
	return tpl, nil
}

// Calls returns how many lookups reached the catalog.
func (c *MemCatalog) Calls() int64 {
	return c.calls.Load()
}

// RecordingSink — notify.Sink, запоминающий все уведомления.
type RecordingSink struct {
	mu   sync.Mutex
	msgs []notify.Message
}

// Notify implements notify.Sink.
func (s *RecordingSink) Notify(kind notify.Kind, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, notify.Message{Kind: kind, Text: text})
}

// Messages returns a copy of the recorded notifications.
func (s *RecordingSink) Messages() []notify.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notify.Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// Texts returns only the notification texts.
func (s *RecordingSink) Texts() []string {
	msgs := s.Messages()
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Text)
	}
	return out
}

// DenyAll rejects every equip placement.
type DenyAll struct{}

// IsAllowed always returns false.
func (DenyAll) IsAllowed(*model.ItemTemplate, model.SlotID, model.Wearer) bool { return false }

// ContextWithTimeout создаёт context с timeout и отменяет его при завершении теста.
func ContextWithTimeout(t testing.TB, d time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}
