package domain

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle         UserState = "idle"
	StateWaitingFront UserState = "waiting_front"
	StateWaitingBack  UserState = "waiting_back"
	StateDeleting     UserState = "deleting"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State        UserState
	PendingFront string
}
