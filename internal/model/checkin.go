package model

// CheckinRecord is the actual-arrival record written when a guest is checked
// in. Keyed by (check-in date, occupant id).
type CheckinRecord struct {
	ReservationCode string `json:"reservationCode"`
	Timestamp       string `json:"timestamp"`
}

// CheckinsMap maps check-in date → occupant id → record.
type CheckinsMap map[string]map[string]CheckinRecord

// CheckInRow is the reconciled, validated view of one occupant's stay —
// the union of every source, built fresh on each recomputation and consumed
// read-only. Validator tags are the row schema: a candidate failing them is
// dropped and reported as a soft validation error.
type CheckInRow struct {
	BookingRef    string `json:"bookingRef" validate:"required"`
	OccupantID    string `json:"occupantId" validate:"required"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	RoomBooked    string `json:"roomBooked"`
	RoomAllocated string `json:"roomAllocated"`

	Financials Financials     `json:"financials"`
	CityTax    *CityTaxRecord `json:"cityTax,omitempty"`
	// Loans is keyed by occupant id even though a row describes one occupant;
	// the loan ledger is modeled per-occupant across the wider system.
	Loans map[string]OccupantLoanData `json:"loans" validate:"required"`

	IsFirstForBooking bool `json:"isFirstForBooking"`

	CheckInDate  string   `json:"checkInDate" validate:"required,datetime=2006-01-02"`
	CheckOutDate string   `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
	Rooms        []string `json:"rooms"`

	ActualCheckInTimestamp string     `json:"actualCheckInTimestamp,omitempty"`
	Activities             []Activity `json:"activities"`

	Citizenship  string      `json:"citizenship"`
	PlaceOfBirth string      `json:"placeOfBirth"`
	DateOfBirth  DateOfBirth `json:"dateOfBirth"`
	Municipality string      `json:"municipality"`
	Gender       string      `json:"gender" validate:"required,oneof=M F"`
	DocNumber    string      `json:"docNumber"`
}
