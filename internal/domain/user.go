package domain

// User is a registered author identified by a unique nickname.
// A User is immutable; its fields are only readable through accessors.
type User struct {
	id       ID
	nickname string
}

// NewUser creates a fresh User with a newly generated ID.
// The nickname is taken verbatim; no validation is applied at this layer.
func NewUser(nickname string) *User {
	return &User{
		id:       NewID(),
		nickname: nickname,
	}
}

// RehydrateUser rebuilds a User from a stored row. Both values are trusted
// as-is; it must only be called by store implementations.
func RehydrateUser(id ID, nickname string) *User {
	return &User{
		id:       id,
		nickname: nickname,
	}
}

// ID returns the user's identifier.
func (u *User) ID() ID {
	return u.id
}

// Nickname returns the user's nickname.
func (u *User) Nickname() string {
	return u.nickname
}
