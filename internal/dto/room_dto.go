package dto

// UpsertRoomRequest creates or updates one room configuration.
type UpsertRoomRequest struct {
	BedCount int    `json:"bedCount" validate:"min=0"`
	Floor    string `json:"floor"`
	Wing     string `json:"wing"`
}
