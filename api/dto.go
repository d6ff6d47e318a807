/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the internal
  ledger model from the wire contract.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *Response: Response types returned to clients

Numeric fields that must distinguish "absent" from zero are pointers; the
handlers reject nil before anything reaches the ledger.
*/
package api

// TransactionRequest is the ingestion payload for POST /transactions.
// EventType selects which of the type-specific fields are required.
type TransactionRequest struct {
	EventType string        `json:"eventType"`
	Date      string        `json:"date"`
	InvoiceID string        `json:"invoiceId,omitempty"`
	Items     []ItemRequest `json:"items,omitempty"`
	Amount    *int64        `json:"amount,omitempty"` // minor currency units
}

// ItemRequest is one sale line item on the wire.
type ItemRequest struct {
	ItemID  string   `json:"itemId"`
	Cost    *int64   `json:"cost"` // minor currency units
	TaxRate *float64 `json:"taxRate"`
}

// AmendSaleRequest is the payload for PATCH /sale.
type AmendSaleRequest struct {
	Date      string   `json:"date"`
	InvoiceID string   `json:"invoiceId"`
	ItemID    string   `json:"itemId"`
	Cost      *int64   `json:"cost"`
	TaxRate   *float64 `json:"taxRate"`
}

// TaxPositionResponse is the answer to GET /tax-position. Date echoes the
// query parameter as given.
type TaxPositionResponse struct {
	Date        string `json:"date"`
	TaxPosition int64  `json:"taxPosition"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
