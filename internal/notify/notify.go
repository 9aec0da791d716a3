// Package notify delivers one-way user-facing messages from the engine
// (inventory full, item sold, item dropped).
package notify

import (
	"log/slog"
	"sync/atomic"
)

// Kind — категория уведомления.
type Kind int32

const (
	KindInfo Kind = iota
	KindWarning
)

// String returns human-readable kind name.
func (k Kind) String() string {
	if k == KindWarning {
		return "warning"
	}
	return "info"
}

// Message is a single notification.
type Message struct {
	Kind Kind
	Text string
}

// Sink принимает уведомления. Реализации не должны блокировать.
type Sink interface {
	Notify(kind Kind, text string)
}

// Log пишет уведомления в slog.
type Log struct {
	Logger *slog.Logger // nil → slog.Default()
}

// Notify implements Sink.
func (l Log) Notify(kind Kind, text string) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if kind == KindWarning {
		logger.Warn("notification", "text", text)
		return
	}
	logger.Info("notification", "text", text)
}

// Chan queues notifications on a buffered channel.
// When the buffer is full the message is dropped and counted.
type Chan struct {
	ch      chan Message
	dropped atomic.Int64
}

// NewChan creates a channel sink with the given buffer size (min 1).
func NewChan(size int) *Chan {
	if size <= 0 {
		size = 1
	}
	return &Chan{ch: make(chan Message, size)}
}

// Notify implements Sink. Never blocks.
func (c *Chan) Notify(kind Kind, text string) {
	select {
	case c.ch <- Message{Kind: kind, Text: text}:
	default:
		c.dropped.Add(1)
		slog.Debug("notification dropped, queue full", "text", text)
	}
}

// C returns the receive side of the queue.
func (c *Chan) C() <-chan Message {
	return c.ch
}

// Dropped returns how many messages were discarded because the queue was full.
func (c *Chan) Dropped() int64 {
	return c.dropped.Load()
}

// Discard drops every notification.
type Discard struct{}

// Notify implements Sink.
func (Discard) Notify(Kind, string) {}
