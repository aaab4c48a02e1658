package model

import "time"

// RoomAllocation records which room an occupant was given versus the one
// originally booked. Both default to empty strings.
type RoomAllocation struct {
	Allocated string `json:"allocated"`
	Booked    string `json:"booked"`
}

// AllocationMap maps occupant id → allocation.
type AllocationMap map[string]RoomAllocation

// RoomConfig is the room configuration row backing the bed-capacity lookup.
// Owned by room configuration, not by the reconciliation engine.
type RoomConfig struct {
	RoomNumber string `gorm:"primaryKey" json:"roomNumber"`
	BedCount   int    `gorm:"not null;default:0" json:"bedCount"`
	Floor      string `json:"floor"`
	Wing       string `json:"wing"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
