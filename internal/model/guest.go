package model

// DateOfBirth carries the three parts as strings, matching the registration
// form fields. Missing parts are empty strings, never absent.
type DateOfBirth struct {
	DD   string `json:"dd"`
	MM   string `json:"mm"`
	YYYY string `json:"yyyy"`
}

// Document holds identity document data captured at registration.
type Document struct {
	Number string `json:"number"`
}

// GuestProfile is the per-occupant registration record. Keyed by
// (booking ref, occupant id). Entirely optional: reconciliation produces a
// row with empty-string defaults when the profile is absent.
type GuestProfile struct {
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	Citizenship  string       `json:"citizenship"`
	PlaceOfBirth string       `json:"placeOfBirth"`
	Municipality string       `json:"municipality"`
	Gender       string       `json:"gender"`
	Email        string       `json:"email"`
	DateOfBirth  *DateOfBirth `json:"dateOfBirth,omitempty"`
	Document     *Document    `json:"document,omitempty"`
}

// GuestDetailsMap maps booking ref → occupant id → profile.
type GuestDetailsMap map[string]map[string]GuestProfile
