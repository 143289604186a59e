package actor

// Actor is the identity attached to a request by the upstream auth
// collaborator. The order core never authenticates; it only authorises.
type Actor struct {
	UserID  int64
	IsAdmin bool
}

// CanAccessOrderOf reports whether the actor may read an order owned by the
// given user.
func (a Actor) CanAccessOrderOf(ownerID int64) bool {
	return a.IsAdmin || a.UserID == ownerID
}
