package domain

import "time"

// Source is a shared bookmark: a title plus a URL, optionally owned by the
// user who submitted it. AuthorID is nil for rows created before accounts
// existed; such sources stay readable but are never mutable.
type Source struct {
	ID        int64
	Title     string
	URL       string
	AuthorID  *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeMutatedBy reports whether the given identity may edit or delete the
// source. Only the authenticated author qualifies; an ownerless source is
// mutable by no one.
func (s Source) CanBeMutatedBy(id Identity) bool {
	uid, ok := id.UserID()
	if !ok {
		return false
	}
	return s.AuthorID != nil && *s.AuthorID == uid
}
