package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupantRecord_StayDiscrimination(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"full stay", `{"checkInDate": "2026-08-29", "checkOutDate": "2026-09-01", "roomNumbers": ["101"]}`},
		{"checkin only", `{"checkInDate": "2026-08-29"}`},
		{"rooms only", `{"roomNumbers": ["101"]}`},
		{"lead flag only", `{"leadGuest": true}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var rec OccupantRecord
			require.NoError(t, json.Unmarshal([]byte(tc.doc), &rec))
			assert.Equal(t, RecordStay, rec.Kind)
			require.NotNil(t, rec.Stay)
		})
	}
}

func TestOccupantRecord_NotesDiscrimination(t *testing.T) {
	var rec OccupantRecord
	require.NoError(t, json.Unmarshal([]byte(`{"text": "prefers ground floor"}`), &rec))
	assert.Equal(t, RecordNotes, rec.Kind)
	assert.Equal(t, "prefers ground floor", rec.Notes)
	assert.Nil(t, rec.Stay)

	// A bare scalar node is also a notes block.
	require.NoError(t, json.Unmarshal([]byte(`"call before arrival"`), &rec))
	assert.Equal(t, RecordNotes, rec.Kind)
	assert.Equal(t, "call before arrival", rec.Notes)
}

func TestOccupantRecord_NumericRoomNumbers(t *testing.T) {
	var rec OccupantRecord
	doc := `{"checkInDate": "2026-08-29", "roomNumbers": [101, "102"]}`
	require.NoError(t, json.Unmarshal([]byte(doc), &rec))
	require.Equal(t, RecordStay, rec.Kind)
	assert.Equal(t, []string{"101", "102"}, rec.Stay.RoomNumbers)
}

func TestIsNotesKey(t *testing.T) {
	assert.True(t, IsNotesKey("__notes"))
	assert.True(t, IsNotesKey("__channel"))
	assert.False(t, IsNotesKey("occ-a"))
	assert.False(t, IsNotesKey("_single"))
}

func TestFinancials_HasNonRefundable(t *testing.T) {
	assert.False(t, Financials{}.HasNonRefundable())
	assert.False(t, Financials{Transactions: map[string]Transaction{
		"t1": {NonRefundable: false},
	}}.HasNonRefundable())
	assert.True(t, Financials{Transactions: map[string]Transaction{
		"t1": {NonRefundable: false},
		"t2": {NonRefundable: true},
	}}.HasNonRefundable())
}

func TestFinancials_Normalized(t *testing.T) {
	f := Financials{}.Normalized()
	assert.NotNil(t, f.Transactions)
}
