package model

// Lifecycle activity codes observed on occupant records. Only codes the
// engine itself branches on are named; views pass the rest through as-is.
const (
	CodeCheckedIn    = 1
	CodeCheckedOut   = 2
	CodePaymentTaken = 8
	CodeStayExtended = 14
)

// EmailProgressCodes are the activity codes consulted by the email-progress
// view, in the order the original dashboard requests them.
var EmailProgressCodes = []int{21, 5, 6, 7}

// Activity is one lifecycle event on an occupant. Timestamp is empty for
// events recovered from the code-indexed projection, which does not store it.
type Activity struct {
	Code      int    `json:"code"`
	Who       string `json:"who"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ActivitiesMap is the occupant-indexed activity log:
// occupant id → push id → activity.
type ActivitiesMap map[string]map[string]Activity

// CodeActivityEntry is one entry of the code-indexed projection; the code is
// implied by the outer key.
type CodeActivityEntry struct {
	Who       string `json:"who"`
	Timestamp string `json:"timestamp,omitempty"`
}

// CodeActivitiesMap is the code-indexed projection:
// code (stringified) → occupant id → push id → entry.
type CodeActivitiesMap map[string]map[string]map[string]CodeActivityEntry
