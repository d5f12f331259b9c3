package relationship

// Decision is the responder's answer to a pending request
type Decision int

const (
	Accept Decision = iota + 1
	Reject
)

// Wire values used by the web client
const (
	wireAccepted = "Accepted"
	wireRejected = "Rejected"
)

// ParseDecision maps the wire status to a Decision
func ParseDecision(status string) (Decision, error) {
	switch status {
	case wireAccepted:
		return Accept, nil
	case wireRejected:
		return Reject, nil
	default:
		return 0, ErrInvalidDecision
	}
}

// Valid reports whether d is one of the two known decisions
func (d Decision) Valid() bool {
	return d == Accept || d == Reject
}

// Result is the state name reported back after resolving
func (d Decision) Result() string {
	if d == Accept {
		return "accepted"
	}
	return "rejected"
}

func (d Decision) String() string {
	switch d {
	case Accept:
		return wireAccepted
	case Reject:
		return wireRejected
	default:
		return "Unknown"
	}
}
