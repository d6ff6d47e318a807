/*
position.go - Point-in-time tax position calculation

The tax position as of a cutoff date is tax owed minus tax paid, both derived
by replaying the event log up to the cutoff. The sale index is never consulted
here: all monetary facts live in the log.

Amendment events are deliberately excluded from both sums. An amendment
changes the current state of an item in the sale index, but does not
retroactively change the tax position at any date; only a fresh sale or
payment event moves the calculation. Changing this would change the meaning
of every historical query and must not be done silently.
*/
package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// Calculator derives tax positions from the event log. Read-only; safe to
// call repeatedly.
type Calculator struct {
	Events EventStore
}

// TaxPosition returns round(taxOwed - taxPaid) in minor currency units as of
// the cutoff, inclusive. Intermediate sums are decimal; the final value is
// rounded half away from zero (decimal.Round semantics).
func (c *Calculator) TaxPosition(ctx context.Context, cutoff Date) int64 {
	owed := decimal.Zero
	paid := decimal.Zero

	for _, e := range c.Events.EventsUpTo(ctx, cutoff) {
		switch ev := e.(type) {
		case SaleEvent:
			for _, item := range ev.Items {
				owed = owed.Add(decimal.NewFromInt(item.Cost).Mul(item.TaxRate))
			}
		case TaxPaymentEvent:
			paid = paid.Add(decimal.NewFromInt(ev.Amount))
		case SalesAmendmentEvent:
			// Audit only. See the package note above.
		}
	}

	return owed.Sub(paid).Round(0).IntPart()
}
