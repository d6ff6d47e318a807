/*
store.go - Store interfaces for events and sale items

PURPOSE:
  Defines the seam between the orchestration layer and the two stores. Both
  stores in this repository are memory-resident for the process lifetime;
  the interfaces exist so a durable backend can be introduced later without
  touching the service or transport.

APPEND-ONLY CONTRACT:
  EventStore has no update or delete. Corrections are recorded as amendment
  events; the amended value is reflected only in the SaleStore.

CONCURRENCY:
  The in-memory implementations serialize access internally with a single
  writer lock per store. Callers get sequential-consistency semantics: each
  write completes before the next is observed.
*/
package ledger

import "context"

// EventStore is the append-only, date-ordered event history.
type EventStore interface {
	// Append inserts the event and re-establishes date order. It never
	// rejects a structurally valid event; validation happens upstream.
	Append(ctx context.Context, e Event)

	// EventsUpTo returns events dated at or before cutoff, in
	// non-decreasing date order. The returned slice is a fresh copy.
	EventsUpTo(ctx context.Context, cutoff Date) []Event

	// AllEvents returns the full history in current order, as a copy.
	AllEvents(ctx context.Context) []Event
}

// SaleStore holds the current version of every sale line item.
type SaleStore interface {
	// AddSale upserts one SaleItem per given item under the invoice.
	AddSale(invoiceID string, items []SaleItem)

	// AmendSale upserts a single item, creating the invoice if absent.
	// This is the only path by which an item with no prior sale enters
	// the index.
	AmendSale(invoiceID string, item SaleItem)

	// SalesUpTo returns items dated at or before cutoff, flattened across
	// invoices in a deterministic order.
	SalesUpTo(cutoff Date) []SaleItem

	// AllSales returns every current item, flattened.
	AllSales() []SaleItem
}
