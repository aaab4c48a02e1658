package model

import (
	"encoding/json"
	"strings"
)

// RecordKind discriminates the two shapes that live under a booking node:
// real occupant stays and free-text notes blocks. The distinction is made
// once, when the bookings snapshot is decoded — downstream code switches on
// the tag instead of probing fields.
type RecordKind int

const (
	RecordNotes RecordKind = iota
	RecordStay
)

// StayRecord is one guest's stay within a booking.
type StayRecord struct {
	CheckInDate  string   `json:"checkInDate"`
	CheckOutDate string   `json:"checkOutDate"`
	LeadGuest    bool     `json:"leadGuest"`
	RoomNumbers  []string `json:"roomNumbers"`
}

// OccupantRecord is the tagged union stored per occupant key. Stay is non-nil
// iff Kind == RecordStay.
type OccupantRecord struct {
	Kind  RecordKind
	Stay  *StayRecord
	Notes string
}

// BookingOccupants maps occupant id → record within one booking.
type BookingOccupants map[string]OccupantRecord

// BookingsMap maps booking reference → occupants.
type BookingsMap map[string]BookingOccupants

// rawStay mirrors the wire shape. Room numbers arrive as either strings or
// bare numbers depending on which client wrote them, so they are decoded
// through flexString.
type rawStay struct {
	CheckInDate  string       `json:"checkInDate"`
	CheckOutDate string       `json:"checkOutDate"`
	LeadGuest    bool         `json:"leadGuest"`
	RoomNumbers  []flexString `json:"roomNumbers"`
}

type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// UnmarshalJSON discriminates the union at the source boundary: a record
// carrying any of checkInDate / checkOutDate / roomNumbers / leadGuest is a
// stay; everything else is a notes block.
func (r *OccupantRecord) UnmarshalJSON(b []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(b, &probe); err != nil {
		// Scalar node (e.g. a bare string) — treat as notes.
		var s string
		if err2 := json.Unmarshal(b, &s); err2 == nil {
			*r = OccupantRecord{Kind: RecordNotes, Notes: s}
			return nil
		}
		return err
	}

	_, hasIn := probe["checkInDate"]
	_, hasOut := probe["checkOutDate"]
	_, hasRooms := probe["roomNumbers"]
	_, hasLead := probe["leadGuest"]
	if !hasIn && !hasOut && !hasRooms && !hasLead {
		var notes string
		if raw, ok := probe["text"]; ok {
			_ = json.Unmarshal(raw, &notes)
		}
		*r = OccupantRecord{Kind: RecordNotes, Notes: notes}
		return nil
	}

	var raw rawStay
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	stay := &StayRecord{
		CheckInDate:  raw.CheckInDate,
		CheckOutDate: raw.CheckOutDate,
		LeadGuest:    raw.LeadGuest,
	}
	for _, rn := range raw.RoomNumbers {
		stay.RoomNumbers = append(stay.RoomNumbers, string(rn))
	}
	*r = OccupantRecord{Kind: RecordStay, Stay: stay}
	return nil
}

// IsNotesKey reports whether an occupant key is one of the reserved
// double-underscore keys (e.g. "__notes") that never denote a guest.
func IsNotesKey(occupantID string) bool {
	return strings.HasPrefix(occupantID, "__")
}
