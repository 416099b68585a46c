package models

// Role is a user's authorization level. Each role subsumes the ones
// below it: superuser > admin > club_admin > student.
type Role string

const (
	RoleStudent   Role = "student"
	RoleClubAdmin Role = "club_admin"
	RoleAdmin     Role = "admin"
	RoleSuperuser Role = "superuser"
)

var roleRank = map[Role]int{
	RoleStudent:   0,
	RoleClubAdmin: 1,
	RoleAdmin:     2,
	RoleSuperuser: 3,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants the privileges of min.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

// ReactionKind names a per-user engagement mark on a post.
type ReactionKind string

const (
	ReactionLike       ReactionKind = "like"
	ReactionShare      ReactionKind = "share"
	ReactionInterested ReactionKind = "interested"
	ReactionGoing      ReactionKind = "going"
)
