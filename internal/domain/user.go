package domain

// Role of an acting user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole converts a string into a Role
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User is an entry of the user catalog
type User struct {
	ID         int64
	Name       string
	Email      string
	Role       Role
	Department string
}

// IsAdmin returns true if the user may administer bookings
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Actor is the identity of whoever invokes an operation
type Actor struct {
	UserID int64
	Name   string
	Role   Role
}

// IsAdmin returns true if the actor acts as an administrator
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns returns true if the actor requested the booking
func (a Actor) Owns(b *Booking) bool {
	return b != nil && a.Name != "" && a.Name == b.RequestedBy
}

// ActorFromUser converts a catalog user into an actor
func ActorFromUser(u User) Actor {
	return Actor{UserID: u.ID, Name: u.Name, Role: u.Role}
}
