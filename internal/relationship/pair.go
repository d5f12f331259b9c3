package relationship

// Pair is an unordered pair of distinct users. Low < High always holds, so a
// pair names the same relationship regardless of who is acting.
type Pair struct {
	Low  string
	High string
}

// NewPair builds the pair for a and b
func NewPair(a, b string) (Pair, error) {
	if a == b {
		return Pair{}, ErrSelfRelationship
	}
	if a > b {
		a, b = b, a
	}
	return Pair{Low: a, High: b}, nil
}

// Contains reports whether userID is one side of the pair
func (p Pair) Contains(userID string) bool {
	return p.Low == userID || p.High == userID
}

// Other returns the side opposite userID
func (p Pair) Other(userID string) string {
	if p.Low == userID {
		return p.High
	}
	return p.Low
}

// IDs returns both sides, sorted
func (p Pair) IDs() []string {
	return []string{p.Low, p.High}
}
