// Package character owns a character's inventory, purse and identity and
// serializes every mutation through a single queue.
//
// Inventory and ledger code is not thread-safe; Holder is the only writer.
// Mutations run in arrival order on one pump goroutine. A mutation that has
// started always runs to completion: the caller's context only bounds
// enqueueing and waiting.
package character

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/udisondev/invengine/internal/model"
)

const defaultQueueSize = 64

// ErrClosed is returned when submitting to a closed holder.
var ErrClosed = errors.New("character holder closed")

// State — изменяемое состояние персонажа. Доступно только внутри мутации.
type State struct {
	Inventory *model.Inventory
	Purse     model.Purse
	Wearer    model.Wearer
}

// Mutation is a unit of work executed on the pump goroutine.
type Mutation func(ctx context.Context, s *State)

type job struct {
	ctx  context.Context
	fn   Mutation
	done chan struct{} // nil for fire-and-forget
}

// Holder владеет State персонажа и очередью мутаций.
type Holder struct {
	id    int64
	state *State

	// mu защищает closed и отправку в queue (RLock на Submit, Lock на Close)
	mu     sync.RWMutex
	closed bool
	queue  chan job

	pumpDone chan struct{}
}

// NewHolder creates a holder for state and starts its pump.
// queueSize <= 0 uses the default capacity.
func NewHolder(id int64, state *State, queueSize int) *Holder {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	h := &Holder{
		id:       id,
		state:    state,
		queue:    make(chan job, queueSize),
		pumpDone: make(chan struct{}),
	}
	go h.pump()
	return h
}

// ID returns the character id.
func (h *Holder) ID() int64 {
	return h.id
}

// pump drains the queue until Close. Jobs queued before Close still run.
func (h *Holder) pump() {
	defer close(h.pumpDone)
	for j := range h.queue {
		j.fn(context.WithoutCancel(j.ctx), h.state)
		if j.done != nil {
			close(j.done)
		}
	}
	slog.Debug("character queue drained", "character", h.id)
}

// Submit enqueues fn without waiting for it to run.
// Blocks while the queue is full, until ctx is done.
func (h *Holder) Submit(ctx context.Context, fn Mutation) error {
	return h.enqueue(ctx, job{ctx: ctx, fn: fn})
}

// Do enqueues fn and waits for it to finish.
//
// If ctx ends after fn was queued, Do returns ctx.Err() but fn still runs.
func (h *Holder) Do(ctx context.Context, fn Mutation) error {
	j := job{ctx: ctx, fn: fn, done: make(chan struct{})}
	if err := h.enqueue(ctx, j); err != nil {
		return err
	}
	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for character %d mutation: %w", h.id, ctx.Err())
	}
}

func (h *Holder) enqueue(ctx context.Context, j job) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return ErrClosed
	}
	select {
	case h.queue <- j:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("queueing character %d mutation: %w", h.id, ctx.Err())
	}
}

// Close stops accepting mutations, runs everything already queued and waits
// for the pump to exit. Safe to call multiple times.
func (h *Holder) Close() {
	h.mu.Lock()
	if !h.closed {
		h.closed = true
		close(h.queue)
	}
	h.mu.Unlock()
	<-h.pumpDone
}

// Snapshot returns copies of the items and purse, read on the pump so the view
// is consistent with every mutation queued before it.
func (h *Holder) Snapshot(ctx context.Context) ([]model.Item, model.Purse, error) {
	var (
		items []model.Item
		purse model.Purse
	)
	err := h.Do(ctx, func(_ context.Context, s *State) {
		items = s.Inventory.Items()
		purse = s.Purse
	})
	return items, purse, err
}
