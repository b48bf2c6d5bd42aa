package roles

import "strings"

type Role string

const (
	User      Role = "user"
	Moderator Role = "moderator"
	Admin     Role = "admin"
)

type HierarchyLevel int

const (
	UserLevel HierarchyLevel = iota + 1
	ModeratorLevel
	AdminLevel
)

func NewRole(value string) Role {
	return Role(strings.ToLower(strings.TrimSpace(value)))
}

// GetHierarchyLevel treats unknown roles as plain users.
func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Moderator:
		return ModeratorLevel
	case Admin:
		return AdminLevel
	default:
		return UserLevel
	}
}

func (r Role) HasPermission(requiredRole Role) bool {
	return r.GetHierarchyLevel() >= requiredRole.GetHierarchyLevel()
}

// CanAssignToOthers reports whether check-outs may be assigned to somebody
// other than the current user.
func (r Role) CanAssignToOthers() bool {
	return r.HasPermission(Moderator)
}

func (r Role) IsValid() bool {
	switch r {
	case User, Moderator, Admin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
