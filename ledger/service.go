/*
service.go - Ingestion and amendment orchestration

PURPOSE:
  The Service owns both stores and is the single write path into them.
  Construct it once at process start and inject it into the transport;
  there is no package-level store state.

WRITE FLOWS:
  Sale ingestion:     validate -> append SaleEvent -> seed SaleIndex
  Payment ingestion:  validate -> append TaxPaymentEvent
  Amendment:          validate -> upsert SaleIndex -> append audit event

  Validation always completes before either store is touched, so a rejected
  request never leaves partial state.

IDEMPOTENCE:
  Re-applying the same amendment yields the same index state. Each
  application appends its own audit event: the log records actions taken,
  not states reached, and is not deduplicated.
*/
package ledger

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Service orchestrates writes across the event log and sale index.
type Service struct {
	events EventStore
	sales  SaleStore
	calc   *Calculator
	log    *slog.Logger
}

func NewService(events EventStore, sales SaleStore, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		events: events,
		sales:  sales,
		calc:   &Calculator{Events: events},
		log:    log,
	}
}

// =============================================================================
// INGESTION
// =============================================================================

// IngestSale records a sale event and seeds the sale index with one item per
// line, each dated with the sale date.
func (s *Service) IngestSale(ctx context.Context, dateStr, invoiceID string, items []Item) error {
	if invoiceID == "" {
		return missingField("invoiceId")
	}
	if len(items) == 0 {
		return missingField("items")
	}
	for _, item := range items {
		if item.ItemID == "" {
			return missingField("itemId")
		}
	}
	date, err := ParseDate(dateStr)
	if err != nil {
		return err
	}

	event := SaleEvent{
		ID:        NewEventID(),
		Date:      date,
		InvoiceID: invoiceID,
		Items:     append([]Item(nil), items...),
	}
	s.events.Append(ctx, event)

	saleItems := make([]SaleItem, len(items))
	for i, item := range items {
		saleItems[i] = SaleItem{ItemID: item.ItemID, Cost: item.Cost, TaxRate: item.TaxRate, Date: date}
	}
	s.sales.AddSale(invoiceID, saleItems)

	s.log.InfoContext(ctx, "recorded sale",
		"eventId", string(event.ID), "invoiceId", invoiceID, "items", len(items), "date", date.String())
	return nil
}

// IngestTaxPayment records a tax payment event.
func (s *Service) IngestTaxPayment(ctx context.Context, dateStr string, amount int64) error {
	date, err := ParseDate(dateStr)
	if err != nil {
		return err
	}

	event := TaxPaymentEvent{ID: NewEventID(), Date: date, Amount: amount}
	s.events.Append(ctx, event)

	s.log.InfoContext(ctx, "recorded tax payment",
		"eventId", string(event.ID), "amount", amount, "date", date.String())
	return nil
}

// =============================================================================
// AMENDMENT
// =============================================================================

// Amendment is a request to overwrite one sale line item. Cost and TaxRate
// are pointers so a missing field is distinguishable from a zero value.
type Amendment struct {
	InvoiceID string
	ItemID    string
	Cost      *int64
	TaxRate   *decimal.Decimal
	Date      string
}

// Amend upserts the sale index entry for (invoiceId, itemId) and appends an
// audit event. The invoice entry is created if absent; no prior sale is
// required.
func (s *Service) Amend(ctx context.Context, a Amendment) error {
	switch {
	case a.InvoiceID == "":
		return missingField("invoiceId")
	case a.ItemID == "":
		return missingField("itemId")
	case a.Cost == nil:
		return missingField("cost")
	case a.TaxRate == nil:
		return missingField("taxRate")
	case a.Date == "":
		return missingField("date")
	}

	date, err := ParseDate(a.Date)
	if err != nil {
		return err
	}

	s.sales.AmendSale(a.InvoiceID, SaleItem{
		ItemID:  a.ItemID,
		Cost:    *a.Cost,
		TaxRate: *a.TaxRate,
		Date:    date,
	})

	event := SalesAmendmentEvent{
		ID:        NewEventID(),
		Date:      date,
		InvoiceID: a.InvoiceID,
		ItemID:    a.ItemID,
		Cost:      *a.Cost,
		TaxRate:   *a.TaxRate,
	}
	s.events.Append(ctx, event)

	s.log.InfoContext(ctx, "amended sale",
		"eventId", string(event.ID), "invoiceId", a.InvoiceID, "itemId", a.ItemID,
		"cost", *a.Cost, "taxRate", a.TaxRate.String(), "date", date.String())
	return nil
}

// =============================================================================
// QUERIES
// =============================================================================

// TaxPositionAt parses the cutoff and returns the tax position as of it.
func (s *Service) TaxPositionAt(ctx context.Context, dateStr string) (int64, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return 0, err
	}
	return s.calc.TaxPosition(ctx, date), nil
}

// Events returns the underlying event store, read-only by convention.
func (s *Service) Events() EventStore { return s.events }

// Sales returns the underlying sale store, read-only by convention.
func (s *Service) Sales() SaleStore { return s.sales }
