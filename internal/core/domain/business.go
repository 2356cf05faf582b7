package domain

// BusinessMode distinguishes a standalone business from a group head that
// aggregates branch businesses.
type BusinessMode string

const (
	ModeSingle BusinessMode = "SINGLE"
	ModeGroup  BusinessMode = "GROUP"
)

// UserRole is the role the acting user holds on the acting business.
type UserRole string

const (
	RoleGroupOwner UserRole = "GROUP_OWNER"
	RoleOwner      UserRole = "OWNER"
	RoleAdmin      UserRole = "ADMIN"
	RoleManager    UserRole = "MANAGER"
)

// Business is the acting business resolved for a request. BranchIDs is the
// owned, flat list of subordinate businesses; it is only populated for group
// heads, never for branches, which removes any cyclic-reference ambiguity.
type Business struct {
	BusinessID string       `json:"businessId"`
	Name       string       `json:"name"`
	Mode       BusinessMode `json:"mode"`
	ParentID   string       `json:"parentId,omitempty"`
	BranchIDs  []string     `json:"branchIds,omitempty"`
}

// BusinessScope is the set of business identifiers one report covers.
// Resolved once per request and read-only afterwards.
type BusinessScope struct {
	BusinessID  string
	BusinessIDs []string
	IsGroup     bool
}

// UnassignedClientKey groups orders with no client when summaries are split
// per customer.
const UnassignedClientKey = "UNASSIGNED"

// Actor is the authenticated identity a request acts as: the user, the
// business resolved for the token, and the role held on it.
type Actor struct {
	UserID     string
	BusinessID string
	Role       UserRole
}
