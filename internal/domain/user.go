package domain

// User is owned by the identity collaborator; this core only references it.
type User struct {
	ID    int64
	Login string
}

// RoleAdmin widens reservation reads and unlocks status administration.
const RoleAdmin = "ROLE_ADMIN"

// Identity is the caller resolved by the gateway in front of this service.
type Identity struct {
	UserID int64
	Login  string
	Roles  []string
}

func (id Identity) Admin() bool {
	for _, r := range id.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}
