package domain

// Identity is the resolved caller of a request: either an authenticated user
// or the anonymous marker. The zero value is anonymous, so a request that
// skips session resolution can never accidentally act as a user.
type Identity struct {
	userID        int64
	authenticated bool
}

// Anonymous returns the unauthenticated identity.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated returns an identity bound to the given user id.
func Authenticated(userID int64) Identity {
	return Identity{userID: userID, authenticated: true}
}

// IsAuthenticated reports whether the identity is bound to a user.
func (i Identity) IsAuthenticated() bool {
	return i.authenticated
}

// UserID returns the bound user id. The second result is false for the
// anonymous identity, in which case the id must not be used.
func (i Identity) UserID() (int64, bool) {
	if !i.authenticated {
		return 0, false
	}
	return i.userID, true
}
