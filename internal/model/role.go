package model

// Role enumerates account roles.
type Role string

const (
	// RoleUser is assigned to every new account.
	RoleUser Role = "USER"
	// RoleAdmin is granted out of band.
	RoleAdmin Role = "ADMIN"
)

// Capability names an action a role may perform.
type Capability string

const (
	CapRevokeOwnSessions Capability = "revoke_own_sessions"
	CapRevokeAnySessions Capability = "revoke_any_sessions"
	CapReadOwnProfile    Capability = "read_own_profile"
)

var roleCapabilities = map[Role]map[Capability]struct{}{
	RoleUser: {
		CapRevokeOwnSessions: {},
		CapReadOwnProfile:    {},
	},
	RoleAdmin: {
		CapRevokeOwnSessions: {},
		CapRevokeAnySessions: {},
		CapReadOwnProfile:    {},
	},
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Can reports whether the role grants the capability. Unknown roles grant nothing.
func (r Role) Can(c Capability) bool {
	_, ok := roleCapabilities[r][c]
	return ok
}
