package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/tax-ledger/ledger"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func mustDate(t *testing.T, s string) ledger.Date {
	t.Helper()
	d, err := ledger.ParseDate(s)
	require.NoError(t, err)
	return d
}

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sale(date ledger.Date, invoiceID string, items ...ledger.Item) ledger.SaleEvent {
	return ledger.SaleEvent{ID: ledger.NewEventID(), Date: date, InvoiceID: invoiceID, Items: items}
}

func payment(date ledger.Date, amount int64) ledger.TaxPaymentEvent {
	return ledger.TaxPaymentEvent{ID: ledger.NewEventID(), Date: date, Amount: amount}
}

func item(itemID string, cost int64, taxRate string) ledger.Item {
	return ledger.Item{ItemID: itemID, Cost: cost, TaxRate: rate(taxRate)}
}

func eventDates(events []ledger.Event) []ledger.Date {
	dates := make([]ledger.Date, len(events))
	for i, e := range events {
		dates[i] = e.EventDate()
	}
	return dates
}

// =============================================================================
// ORDERING TESTS
// =============================================================================

func TestEventLog_Append_KeepsDateOrder(t *testing.T) {
	// GIVEN: Events appended out of date order
	// WHEN: Reading the full log
	// THEN: Events come back in non-decreasing date order

	ctx := context.Background()
	log := ledger.NewEventLog()

	log.Append(ctx, payment(ledger.NewDate(2024, time.March, 1), 10))
	log.Append(ctx, payment(ledger.NewDate(2024, time.January, 1), 20))
	log.Append(ctx, payment(ledger.NewDate(2024, time.February, 1), 30))

	events := log.AllEvents(ctx)
	require.Len(t, events, 3)
	for i := 1; i < len(events); i++ {
		assert.True(t, events[i-1].EventDate().BeforeOrEqual(events[i].EventDate()),
			"events out of order at index %d: %v", i, eventDates(events))
	}
}

func TestEventLog_Append_EqualDates_PreservesInsertionOrder(t *testing.T) {
	// GIVEN: Three sales on the same date
	// WHEN: Reading the log
	// THEN: They appear in the order they were appended

	ctx := context.Background()
	log := ledger.NewEventLog()
	day := ledger.NewDate(2024, time.June, 15)

	log.Append(ctx, sale(day, "INV001", item("item1", 100, "0.2")))
	log.Append(ctx, sale(day, "INV002", item("item1", 100, "0.2")))
	log.Append(ctx, sale(day, "INV003", item("item1", 100, "0.2")))

	events := log.AllEvents(ctx)
	require.Len(t, events, 3)
	for i, want := range []string{"INV001", "INV002", "INV003"} {
		se, ok := events[i].(ledger.SaleEvent)
		require.True(t, ok)
		assert.Equal(t, want, se.InvoiceID)
	}
}

func TestEventLog_Append_EqualDates_InterleavedWithOthers(t *testing.T) {
	// GIVEN: Equal-date events appended around events on other dates
	// WHEN: Reading the log
	// THEN: Date order holds and equal dates keep append order

	ctx := context.Background()
	log := ledger.NewEventLog()
	feb := ledger.NewDate(2024, time.February, 1)

	log.Append(ctx, sale(feb, "A", item("i", 1, "0.1")))
	log.Append(ctx, payment(ledger.NewDate(2024, time.March, 1), 5))
	log.Append(ctx, sale(feb, "B", item("i", 1, "0.1")))
	log.Append(ctx, payment(ledger.NewDate(2024, time.January, 1), 5))
	log.Append(ctx, sale(feb, "C", item("i", 1, "0.1")))

	events := log.AllEvents(ctx)
	require.Len(t, events, 5)

	var invoices []string
	for _, e := range events {
		if se, ok := e.(ledger.SaleEvent); ok {
			invoices = append(invoices, se.InvoiceID)
		}
	}
	assert.Equal(t, []string{"A", "B", "C"}, invoices)
}

// =============================================================================
// CUTOFF TESTS
// =============================================================================

func TestEventLog_EventsUpTo_InclusiveOfCutoff(t *testing.T) {
	ctx := context.Background()
	log := ledger.NewEventLog()

	log.Append(ctx, payment(ledger.NewDate(2024, time.January, 1), 1))
	log.Append(ctx, payment(ledger.NewDate(2024, time.January, 2), 2))
	log.Append(ctx, payment(ledger.NewDate(2024, time.January, 3), 3))

	events := log.EventsUpTo(ctx, ledger.NewDate(2024, time.January, 2))
	require.Len(t, events, 2)
	assert.Equal(t, int64(2), events[1].(ledger.TaxPaymentEvent).Amount)
}

func TestEventLog_EventsUpTo_EmptyLog(t *testing.T) {
	ctx := context.Background()
	log := ledger.NewEventLog()

	assert.Empty(t, log.EventsUpTo(ctx, ledger.NewDate(2024, time.January, 1)))
	assert.Empty(t, log.AllEvents(ctx))
}

func TestEventLog_EventsUpTo_CutoffBeforeAllEvents(t *testing.T) {
	ctx := context.Background()
	log := ledger.NewEventLog()
	log.Append(ctx, payment(ledger.NewDate(2024, time.June, 1), 100))

	assert.Empty(t, log.EventsUpTo(ctx, ledger.NewDate(2023, time.December, 31)))
}

func TestEventLog_EventsUpTo_InvalidEventDate_NeverMatched(t *testing.T) {
	// GIVEN: An event with an unparseable date slipped into the log
	// WHEN: Querying with any cutoff
	// THEN: The event is never at-or-before the cutoff, but remains in the
	//       full history (at the tail)

	ctx := context.Background()
	log := ledger.NewEventLog()

	log.Append(ctx, ledger.TaxPaymentEvent{ID: ledger.NewEventID(), Date: ledger.Date{}, Amount: 99})
	log.Append(ctx, payment(ledger.NewDate(2024, time.January, 1), 1))

	upTo := log.EventsUpTo(ctx, ledger.NewDate(2099, time.December, 31))
	require.Len(t, upTo, 1)
	assert.Equal(t, int64(1), upTo[0].(ledger.TaxPaymentEvent).Amount)

	all := log.AllEvents(ctx)
	require.Len(t, all, 2)
	assert.False(t, all[1].EventDate().Valid)
}

func TestEventLog_EventsUpTo_InvalidCutoff_MatchesNothing(t *testing.T) {
	ctx := context.Background()
	log := ledger.NewEventLog()
	log.Append(ctx, payment(ledger.NewDate(2024, time.January, 1), 1))

	assert.Empty(t, log.EventsUpTo(ctx, ledger.Date{}))
}

// =============================================================================
// ISOLATION TESTS
// =============================================================================

func TestEventLog_Reads_ReturnCopies(t *testing.T) {
	// GIVEN: A log with two events
	// WHEN: Mutating the slice a read returned
	// THEN: The log's contents are unaffected

	ctx := context.Background()
	log := ledger.NewEventLog()
	log.Append(ctx, payment(ledger.NewDate(2024, time.January, 1), 1))
	log.Append(ctx, payment(ledger.NewDate(2024, time.January, 2), 2))

	got := log.AllEvents(ctx)
	got[0] = payment(ledger.NewDate(2030, time.January, 1), 999)

	fresh := log.AllEvents(ctx)
	assert.Equal(t, int64(1), fresh[0].(ledger.TaxPaymentEvent).Amount)
}
