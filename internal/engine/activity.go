package engine

import (
	"strconv"

	"frontdesk/internal/model"
)

// MergeActivities combines the occupant-indexed activity log with the
// code-indexed projection into one list per occupant: raw entries first
// (carrying their timestamps), then code-indexed entries re-tagged with their
// source code (the projection does not store timestamps). No de-duplication
// is performed — an event present in both representations appears twice.
// An occupant present only in the code index still gets a list.
func MergeActivities(raw model.ActivitiesMap, byCode model.CodeActivitiesMap) map[string][]model.Activity {
	merged := make(map[string][]model.Activity)

	for _, occID := range sortedKeys(raw) {
		entries := raw[occID]
		for _, pushID := range sortedKeys(entries) {
			merged[occID] = append(merged[occID], entries[pushID])
		}
	}

	for _, codeStr := range sortedKeys(byCode) {
		code, err := strconv.Atoi(codeStr)
		if err != nil {
			continue
		}
		occupants := byCode[codeStr]
		for _, occID := range sortedKeys(occupants) {
			entries := occupants[occID]
			for _, pushID := range sortedKeys(entries) {
				merged[occID] = append(merged[occID], model.Activity{
					Code: code,
					Who:  entries[pushID].Who,
				})
			}
		}
	}

	return merged
}
