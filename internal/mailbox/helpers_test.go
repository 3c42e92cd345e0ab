package mailbox

import "github.com/genricoloni/nowplaying/internal/domain"

// tryReceive returns the next event without waiting
func (m *Mailbox) tryReceive() (domain.Event, bool) {
	select {
	case ev := <-m.events:
		return ev, true
	default:
		return nil, false
	}
}

func (m *Mailbox) queued() int { return len(m.events) }

func (m *Mailbox) capacity() int { return cap(m.events) }

// droppedCount is the number of events discarded so far
func (m *Mailbox) droppedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}
