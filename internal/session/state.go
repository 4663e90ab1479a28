package session

// State is the position of a [Manager] in the credential lifecycle.
type State int

const (
	// Anonymous means no credential is held.
	Anonymous State = iota
	// Authenticated means an access token is held and believed valid.
	Authenticated
	// RefreshPending means a refresh call is in flight.
	RefreshPending
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	case RefreshPending:
		return "refresh_pending"
	default:
		return "unknown"
	}
}
