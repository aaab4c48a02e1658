package model

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// LoanItem enumerates the lendable items tracked at the desk.
type LoanItem string

const (
	LoanItemKeycard   LoanItem = "keycard"
	LoanItemPadlock   LoanItem = "padlock"
	LoanItemAdapter   LoanItem = "adapter"
	LoanItemHairdryer LoanItem = "hairdryer"
	LoanItemTowel     LoanItem = "towel"
	LoanItemOther     LoanItem = "other"
)

// LoanMethod is how the deposit was taken.
type LoanMethod string

const (
	LoanMethodCash LoanMethod = "cash"
	LoanMethodCard LoanMethod = "card"
	LoanMethodNone LoanMethod = "none"
)

// LoanTxType distinguishes handing an item out from settling its deposit.
type LoanTxType string

const (
	LoanTxLoan   LoanTxType = "loan"
	LoanTxReturn LoanTxType = "return"
	LoanTxForfeit LoanTxType = "forfeit"
)

// ParseLoanItem maps a raw item string to the enum; unknown values become
// LoanItemOther rather than failing the row.
func ParseLoanItem(s string) LoanItem {
	switch LoanItem(strings.ToLower(strings.TrimSpace(s))) {
	case LoanItemKeycard, LoanItemPadlock, LoanItemAdapter, LoanItemHairdryer, LoanItemTowel:
		return LoanItem(strings.ToLower(strings.TrimSpace(s)))
	default:
		return LoanItemOther
	}
}

// ParseLoanMethod maps a raw deposit method; unknown values default to cash,
// the desk's predominant method.
func ParseLoanMethod(s string) LoanMethod {
	switch LoanMethod(strings.ToLower(strings.TrimSpace(s))) {
	case LoanMethodCard:
		return LoanMethodCard
	case LoanMethodNone:
		return LoanMethodNone
	default:
		return LoanMethodCash
	}
}

// ParseLoanTxType maps a raw transaction type; unknown values default to loan.
func ParseLoanTxType(s string) LoanTxType {
	switch LoanTxType(strings.ToLower(strings.TrimSpace(s))) {
	case LoanTxReturn:
		return LoanTxReturn
	case LoanTxForfeit:
		return LoanTxForfeit
	default:
		return LoanTxLoan
	}
}

// LoanTxn is one parsed loan movement.
type LoanTxn struct {
	Item        LoanItem        `json:"item"`
	Deposit     decimal.Decimal `json:"deposit"`
	Count       int             `json:"count"`
	Type        LoanTxType      `json:"type"`
	CreatedAt   string          `json:"createdAt"`
	DepositType LoanMethod      `json:"depositType"`
}

// OccupantLoanData is the parsed loan record for one occupant.
type OccupantLoanData struct {
	Txns map[string]LoanTxn `json:"txns"`
}

// LoansMap maps booking ref → occupant id → raw loan node. Values stay raw
// until reconciliation so that one malformed record cannot fail the whole
// snapshot decode.
type LoansMap map[string]map[string]json.RawMessage

// rawLoanTxn tolerates partially written records: every field is optional and
// numbers may arrive as either JSON numbers or strings.
type rawLoanTxn struct {
	Item      *string          `json:"item"`
	Deposit   *decimal.Decimal `json:"deposit"`
	Count     *int             `json:"count"`
	Type      *string          `json:"type"`
	CreatedAt *string          `json:"createdAt"`
	Method    *string          `json:"method"`
}

// ParseOccupantLoan decodes a raw loan node, defaulting every malformed or
// missing field instead of dropping the transaction: unknown item/method/type
// map to their safe enum values, count defaults to 1, deposit to 0 and a
// missing createdAt to nowISO. A node that is not an object at all yields an
// empty transaction set.
func ParseOccupantLoan(raw json.RawMessage, nowISO string) OccupantLoanData {
	out := OccupantLoanData{Txns: map[string]LoanTxn{}}
	if len(raw) == 0 {
		return out
	}

	var node struct {
		Txns map[string]json.RawMessage `json:"txns"`
	}
	if err := json.Unmarshal(raw, &node); err != nil || node.Txns == nil {
		return out
	}

	for txnID, rawTxn := range node.Txns {
		var t rawLoanTxn
		if err := json.Unmarshal(rawTxn, &t); err != nil {
			continue
		}
		txn := LoanTxn{
			Item:        LoanItemOther,
			Deposit:     decimal.Zero,
			Count:       1,
			Type:        LoanTxLoan,
			CreatedAt:   nowISO,
			DepositType: ParseLoanMethod(""),
		}
		if t.Item != nil {
			txn.Item = ParseLoanItem(*t.Item)
		}
		if t.Deposit != nil {
			txn.Deposit = *t.Deposit
		}
		if t.Count != nil {
			txn.Count = *t.Count
		}
		if t.Type != nil {
			txn.Type = ParseLoanTxType(*t.Type)
		}
		if t.CreatedAt != nil && *t.CreatedAt != "" {
			txn.CreatedAt = *t.CreatedAt
		}
		if t.Method != nil {
			txn.DepositType = ParseLoanMethod(*t.Method)
		}
		out.Txns[txnID] = txn
	}
	return out
}
