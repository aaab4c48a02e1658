package dto

// ProgressEntry is one occupant in the email-progress view: only occupants
// whose booking ledger holds at least one non-refundable transaction appear.
type ProgressEntry struct {
	BookingRef   string       `json:"bookingRef"`
	OccupantID   string       `json:"occupantId"`
	FullName     string       `json:"fullName"`
	Email        string       `json:"email"`
	CheckInDate  string       `json:"checkInDate"`
	CheckOutDate string       `json:"checkOutDate"`
	// CodesSeen maps each progress activity code to whether the occupant's
	// merged activity list contains it.
	CodesSeen map[int]bool `json:"codesSeen"`
}

// EmailProgressResponse lists eligible occupants for the window.
type EmailProgressResponse struct {
	Entries         []ProgressEntry `json:"entries"`
	Loading         bool            `json:"loading"`
	ValidationError string          `json:"validationError,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// SendProgressRequest enqueues progress emails for the named bookings; with
// an empty list every eligible booking in the window is sent.
type SendProgressRequest struct {
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	DaysBefore  int      `json:"before" validate:"min=0"`
	DaysAfter   int      `json:"after" validate:"min=0"`
	BookingRefs []string `json:"bookingRefs"`
}

// SendProgressResponse reports how many emails were enqueued.
type SendProgressResponse struct {
	Enqueued int      `json:"enqueued"`
	Skipped  []string `json:"skipped,omitempty"`
}
