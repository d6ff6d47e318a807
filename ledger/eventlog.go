/*
eventlog.go - Append-only, date-ordered event log

CRITICAL INVARIANTS:
  1. APPEND-ONLY: No Update, No Delete. EVER.
  2. ORDERED: iteration order is non-decreasing by date after every append.
  3. STABLE: events with equal dates keep their insertion order.
  4. ISOLATED: reads return copies, never internal storage.

Events with an invalid date sort after all dated events and are excluded
from every cutoff query.
*/
package ledger

import (
	"context"
	"sort"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// EventLog is the in-memory EventStore implementation.
type EventLog struct {
	tracer trace.Tracer
	mu     sync.RWMutex
	events []Event
}

var _ EventStore = (*EventLog)(nil)

func NewEventLog() *EventLog {
	return &EventLog{tracer: otel.Tracer("taxledger/eventlog")}
}

// Append inserts the event at its date position.
func (l *EventLog) Append(ctx context.Context, e Event) {
	_, span := l.tracer.Start(ctx, "taxledger.eventlog.append",
		trace.WithAttributes(attribute.String("event.type", string(e.Type()))),
	)
	defer span.End()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Binary search for the insertion point. Search finds the first event
	// strictly after the new date, so equal dates insert after their
	// predecessors and insertion order is preserved.
	d := e.EventDate()
	i := sort.Search(len(l.events), func(i int) bool {
		return l.events[i].EventDate().After(d)
	})

	l.events = append(l.events, nil)
	copy(l.events[i+1:], l.events[i:])
	l.events[i] = e
}

// EventsUpTo returns events dated at or before cutoff. An invalid cutoff
// matches nothing.
func (l *EventLog) EventsUpTo(ctx context.Context, cutoff Date) []Event {
	_, span := l.tracer.Start(ctx, "taxledger.eventlog.query",
		trace.WithAttributes(attribute.String("cutoff", cutoff.String())),
	)
	defer span.End()

	if !cutoff.Valid {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []Event
	for _, e := range l.events {
		d := e.EventDate()
		if !d.Valid || d.After(cutoff) {
			// Invalid dates sit at the tail, so nothing further matches.
			break
		}
		result = append(result, e)
	}

	span.SetAttributes(attribute.Int("event.count", len(result)))
	return result
}

// AllEvents returns the full history in current order.
func (l *EventLog) AllEvents(ctx context.Context) []Event {
	_, span := l.tracer.Start(ctx, "taxledger.eventlog.scan")
	defer span.End()

	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]Event, len(l.events))
	copy(result, l.events)
	return result
}
