/*
Package ledger is the core of the tax event service.

PURPOSE:
  Records financial transaction events (sales and tax payments), supports
  retroactive amendment of sale line items, and answers point-in-time tax
  position queries. Two stores cooperate:

  - EventLog:  append-only, date-ordered history of everything that happened.
    Source of truth for aggregation.
  - SaleIndex: current state of every sale line item, keyed by invoice and
    item. Supports amendment without rewriting history.

DESIGN PRINCIPLES:
  1. Immutability: events are never modified once appended. Corrections are
     recorded as amendment events alongside the index upsert.
  2. Precision: monetary amounts are integer minor units (pennies); tax rates
     use decimal.Decimal so owed/paid sums never touch binary floats.
  3. Closed union: Event is a sealed interface. Adding an event kind is a
     compile-time-checked change, not a string-switch edit.

SEE ALSO:
  - eventlog.go:  append-only event history
  - saleindex.go: current-state sale item index
  - position.go:  tax position calculation
  - service.go:   ingestion and amendment orchestration
*/
package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EventID string

// NewEventID returns a fresh random event identifier.
func NewEventID() EventID {
	return EventID(uuid.NewString())
}

// =============================================================================
// EVENT - Closed tagged union of ledger facts
// =============================================================================

type EventType string

const (
	EventSales          EventType = "SALES"
	EventTaxPayment     EventType = "TAX_PAYMENT"
	EventSalesAmendment EventType = "SALES_AMENDMENT"
)

// Event is the closed set of facts the ledger records. Only the three event
// types in this package implement it; a type switch over them is exhaustive.
type Event interface {
	// Type returns the wire tag for this event kind.
	Type() EventType

	// EventDate returns the effective date used for ordering and cutoffs.
	EventDate() Date

	sealed()
}

// Item is one line item within a sale event.
type Item struct {
	ItemID  string
	Cost    int64 // minor currency units
	TaxRate decimal.Decimal
}

// SaleEvent records an invoice with one or more line items.
type SaleEvent struct {
	ID        EventID
	Date      Date
	InvoiceID string
	Items     []Item
}

func (e SaleEvent) Type() EventType { return EventSales }
func (e SaleEvent) EventDate() Date { return e.Date }
func (e SaleEvent) sealed()         {}

// TaxPaymentEvent records a payment of tax to the authority.
type TaxPaymentEvent struct {
	ID     EventID
	Date   Date
	Amount int64 // minor currency units
}

func (e TaxPaymentEvent) Type() EventType { return EventTaxPayment }
func (e TaxPaymentEvent) EventDate() Date { return e.Date }
func (e TaxPaymentEvent) sealed()         {}

// SalesAmendmentEvent is the audit record of a sale item amendment. It is
// never folded into the tax position sums; the amended value lives in the
// sale index.
type SalesAmendmentEvent struct {
	ID        EventID
	Date      Date
	InvoiceID string
	ItemID    string
	Cost      int64
	TaxRate   decimal.Decimal
}

func (e SalesAmendmentEvent) Type() EventType { return EventSalesAmendment }
func (e SalesAmendmentEvent) EventDate() Date { return e.Date }
func (e SalesAmendmentEvent) sealed()         {}

// =============================================================================
// SALE ITEM - Current state of one invoice line item
// =============================================================================

// SaleItem is the latest known cost, tax rate and effective date of one line
// item within one invoice. Held by the SaleIndex; last write wins.
type SaleItem struct {
	ItemID  string
	Cost    int64
	TaxRate decimal.Decimal
	Date    Date
}
