package model

import "github.com/shopspring/decimal"

// CityTaxRecord is the per-occupant local tax position.
type CityTaxRecord struct {
	Balance   decimal.Decimal `json:"balance"`
	TotalDue  decimal.Decimal `json:"totalDue"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
}

// CityTaxMap maps booking ref → occupant id → tax record.
type CityTaxMap map[string]map[string]CityTaxRecord
