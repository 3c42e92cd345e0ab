// Package mailbox is the bounded FIFO between the producers and the render engine.
package mailbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/genricoloni/nowplaying/internal/domain"
	"go.uber.org/zap"
)

// Policy decides what Send does when the mailbox is full
type Policy string

const (
	// PolicyBlock parks the producer until there is room
	PolicyBlock Policy = "block"
	// PolicyDrop discards the new event
	PolicyDrop Policy = "drop"
)

// ParsePolicy accepts "block" or "drop"
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyBlock, PolicyDrop:
		return p, nil
	default:
		return "", fmt.Errorf("unknown mailbox policy %q", s)
	}
}

const dropWarningInterval = 5 * time.Second

// Mailbox delivers events in the order they were sent. It never closes;
// consumers stop on their own context.
type Mailbox struct {
	logger *zap.Logger
	policy Policy
	events chan domain.Event

	mu              sync.Mutex
	lastDropWarning time.Time
	dropped         int
}

// New creates a mailbox holding at most size events
func New(logger *zap.Logger, size int, policy Policy) *Mailbox {
	if size < 1 {
		size = 1
	}
	return &Mailbox{
		logger: logger,
		policy: policy,
		events: make(chan domain.Event, size),
	}
}

// Send enqueues ev. Under PolicyBlock it waits for room or ctx; under
// PolicyDrop a full mailbox returns domain.ErrMailboxFull.
func (m *Mailbox) Send(ctx context.Context, ev domain.Event) error {
	if m.policy == PolicyDrop {
		select {
		case m.events <- ev:
			return nil
		default:
			m.logDropWarning(ev)
			return domain.ErrMailboxFull
		}
	}

	select {
	case m.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive returns the delivery channel
func (m *Mailbox) Receive() <-chan domain.Event {
	return m.events
}

// logDropWarning is rate-limited to one line per interval so a stalled
// consumer does not flood the log at scroll-tick rate.
func (m *Mailbox) logDropWarning(ev domain.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dropped++
	now := time.Now()
	if now.Sub(m.lastDropWarning) >= dropWarningInterval {
		m.logger.Warn("Mailbox full, dropping event",
			zap.String("event", fmt.Sprintf("%T", ev)),
			zap.Int("dropped", m.dropped))
		m.lastDropWarning = now
	}
}
