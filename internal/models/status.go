package models

// ProtestStatus is the moderation status of a protest. It gates listing and
// is independent of the time derived state.
type ProtestStatus string

const (
	StatusPending   ProtestStatus = "pending"
	StatusApproved  ProtestStatus = "approved"
	StatusRejected  ProtestStatus = "rejected"
	StatusUpcoming  ProtestStatus = "upcoming"
	StatusOngoing   ProtestStatus = "ongoing"
	StatusCompleted ProtestStatus = "completed"
	StatusCancelled ProtestStatus = "cancelled"
)

func (s ProtestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusUpcoming,
		StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
