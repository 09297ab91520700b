package domain

// FermentStatus represents the lifecycle state of a ferment.
type FermentStatus string

// Possible ferment status values. The intended progression is
// Planned -> Unstable -> Stable -> Expired, with Bad reachable from any
// state as a terminal failure outcome. Transitions are not restricted to
// this order: the status is freely settable.
const (
	StatusPlanned  FermentStatus = "Planned"
	StatusUnstable FermentStatus = "Unstable"
	StatusStable   FermentStatus = "Stable"
	StatusExpired  FermentStatus = "Expired"
	StatusBad      FermentStatus = "Bad"
)

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []FermentStatus {
	return []FermentStatus{StatusPlanned, StatusUnstable, StatusStable, StatusExpired, StatusBad}
}

// IsValid reports whether the status is one of the five closed-set values.
func (s FermentStatus) IsValid() bool {
	switch s {
	case StatusPlanned, StatusUnstable, StatusStable, StatusExpired, StatusBad:
		return true
	default:
		return false
	}
}

// IsActive reports whether the status counts as an active fermentation
// (Unstable or Stable). Used by dashboard aggregates.
func (s FermentStatus) IsActive() bool {
	return s == StatusUnstable || s == StatusStable
}
