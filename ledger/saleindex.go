/*
saleindex.go - Current-state index of sale line items

PURPOSE:
  Holds the latest version of every sale line item, keyed by invoice and
  item. Amendment is an O(1) upsert by (invoiceId, itemId) identity, no
  history replay required. History, if needed, lives in the event log.

INVARIANTS:
  - At most one SaleItem per (invoiceId, itemId): last write wins.
  - Entries are never deleted.
  - Flattened iteration order is insertion order of invoices, then of items
    within each invoice. Go map iteration is randomized, so determinism is
    tracked explicitly with ordered key slices.
*/
package ledger

import "sync"

// SaleIndex is the in-memory SaleStore implementation.
type SaleIndex struct {
	mu       sync.RWMutex
	invoices map[string]*invoiceItems
	order    []string // invoice insertion order
}

type invoiceItems struct {
	items map[string]SaleItem
	order []string // item insertion order
}

var _ SaleStore = (*SaleIndex)(nil)

func NewSaleIndex() *SaleIndex {
	return &SaleIndex{invoices: make(map[string]*invoiceItems)}
}

// AddSale upserts every given item under the invoice.
func (s *SaleIndex) AddSale(invoiceID string, items []SaleItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.upsertLocked(invoiceID, item)
	}
}

// AmendSale upserts a single item, creating the invoice entry if absent.
func (s *SaleIndex) AmendSale(invoiceID string, item SaleItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(invoiceID, item)
}

func (s *SaleIndex) upsertLocked(invoiceID string, item SaleItem) {
	inv, ok := s.invoices[invoiceID]
	if !ok {
		inv = &invoiceItems{items: make(map[string]SaleItem)}
		s.invoices[invoiceID] = inv
		s.order = append(s.order, invoiceID)
	}
	if _, exists := inv.items[item.ItemID]; !exists {
		inv.order = append(inv.order, item.ItemID)
	}
	inv.items[item.ItemID] = item
}

// SalesUpTo returns items dated at or before cutoff. An invalid cutoff
// matches nothing.
func (s *SaleIndex) SalesUpTo(cutoff Date) []SaleItem {
	if !cutoff.Valid {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []SaleItem
	for _, invoiceID := range s.order {
		inv := s.invoices[invoiceID]
		for _, itemID := range inv.order {
			item := inv.items[itemID]
			if item.Date.BeforeOrEqual(cutoff) {
				result = append(result, item)
			}
		}
	}
	return result
}

// AllSales returns every current item, flattened.
func (s *SaleIndex) AllSales() []SaleItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []SaleItem
	for _, invoiceID := range s.order {
		inv := s.invoices[invoiceID]
		for _, itemID := range inv.order {
			result = append(result, inv.items[itemID])
		}
	}
	return result
}
