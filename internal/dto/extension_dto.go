package dto

import "github.com/shopspring/decimal"

// ExtensionRow is one in-house guest eligible for a stay extension.
type ExtensionRow struct {
	OccupantID    string          `json:"occupantId"`
	OccupantIDs   []string        `json:"occupantIds"`
	BookingRef    string          `json:"bookingRef"`
	FullName      string          `json:"fullName"`
	RoomNumber    string          `json:"roomNumber"`
	CheckInDate   string          `json:"checkInDate"`
	CheckOutDate  string          `json:"checkOutDate"`
	NightlyRate   decimal.Decimal `json:"nightlyRate"`
	OccupantCount int             `json:"occupantCount"`
}

// ExtensionListResponse is the in-house guest listing.
type ExtensionListResponse struct {
	Rows    []ExtensionRow `json:"rows"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`
}

// AvailabilityQuery asks whether a room can absorb an extension.
type AvailabilityQuery struct {
	Room   string `form:"room" validate:"required"`
	Start  string `form:"start" validate:"required,datetime=2006-01-02"`
	Nights int    `form:"nights" validate:"min=1"`
}

// AvailabilityResponse is the yes/no answer plus the echoed request.
type AvailabilityResponse struct {
	Room      string `json:"room"`
	Start     string `json:"start"`
	Nights    int    `json:"nights"`
	BedCount  int    `json:"bedCount"`
	Available bool   `json:"available"`
}
