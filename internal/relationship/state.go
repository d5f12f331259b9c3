package relationship

import "github.com/devfinds/devfinds/internal/models"

// State is the relationship state of an unordered pair
type State int

const (
	StateNone State = iota
	StatePending
	StateFriends
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFriends:
		return "friends"
	default:
		return "none"
	}
}

// StateOf reads the state of a stored edge; nil means no relationship
func StateOf(edge *models.FriendEdge) State {
	if edge == nil {
		return StateNone
	}
	if edge.State == models.EdgeStateFriends {
		return StateFriends
	}
	return StatePending
}

// Direction of a pending request relative to a viewer
type Direction int

const (
	Incoming Direction = iota + 1
	Outgoing
)

// Status is a pair's state as seen by one of its users
type Status string

const (
	StatusNone            Status = "none"
	StatusPendingOutgoing Status = "pending_outgoing"
	StatusPendingIncoming Status = "pending_incoming"
	StatusFriends         Status = "friends"
)

// StatusOf describes edge from viewerID's side
func StatusOf(edge *models.FriendEdge, viewerID string) Status {
	switch StateOf(edge) {
	case StateFriends:
		return StatusFriends
	case StatePending:
		if edge.RequesterID == viewerID {
			return StatusPendingOutgoing
		}
		return StatusPendingIncoming
	default:
		return StatusNone
	}
}
