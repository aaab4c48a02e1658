package model

import "github.com/shopspring/decimal"

// Transaction is one ledger movement within a booking's financials.
type Transaction struct {
	OccupantID    string          `json:"occupantId"`
	BookingRef    string          `json:"bookingRef"`
	Amount        decimal.Decimal `json:"amount"`
	Timestamp     string          `json:"timestamp"`
	NonRefundable bool            `json:"nonRefundable"`
	Type          string          `json:"type"`
}

// Financials is the booking-level ledger summary plus its transaction set.
type Financials struct {
	Balance      decimal.Decimal        `json:"balance"`
	TotalDue     decimal.Decimal        `json:"totalDue"`
	TotalPaid    decimal.Decimal        `json:"totalPaid"`
	TotalAdjust  decimal.Decimal        `json:"totalAdjust"`
	Transactions map[string]Transaction `json:"transactions"`
}

// FinancialsMap maps booking ref → ledger.
type FinancialsMap map[string]Financials

// Normalized returns a copy with a non-nil transaction map. Numeric fields
// are value types and therefore already zero-filled when absent on the wire.
func (f Financials) Normalized() Financials {
	if f.Transactions == nil {
		f.Transactions = map[string]Transaction{}
	}
	return f
}

// HasNonRefundable reports whether the ledger holds at least one
// non-refundable transaction. Used by the email-progress eligibility gate.
func (f Financials) HasNonRefundable() bool {
	for _, tx := range f.Transactions {
		if tx.NonRefundable {
			return true
		}
	}
	return false
}
