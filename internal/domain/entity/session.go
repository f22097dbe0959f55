package entity

// SessionState tracks one send operation through its lifecycle. Closed is
// terminal and is always reached, whichever prior state failed.
type SessionState string

const (
	StateIdle           SessionState = "idle"
	StateParsing        SessionState = "parsing"
	StateNavigating     SessionState = "navigating"
	StateAuthenticating SessionState = "authenticating"
	StatePlanning       SessionState = "planning"
	StateExecuting      SessionState = "executing"
	StateClosed         SessionState = "closed"
)

func (s SessionState) String() string {
	return string(s)
}

type SendStatus string

const (
	SendStatusSuccess SendStatus = "success"
	SendStatusError   SendStatus = "error"
)

type SendResult struct {
	Status  SendStatus
	Message string
}
