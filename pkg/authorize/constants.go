package authorize

import "fmt"

type Action string
type Resource string
type Role string

const (
	ActionRead   Action = "read"
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionManage Action = "manage"

	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionRead: {}, ActionList: {}, ActionCreate: {}, ActionManage: {},
}

const (
	WildcardResource Resource = "*"

	ResourceDashboard   Resource = "dashboard"
	ResourceAssessment  Resource = "assessment"
	ResourceFlagged     Resource = "flagged"
	ResourceChatHistory Resource = "chat_history"
	ResourceToken       Resource = "token"
)

var KnownResources = map[Resource]struct{}{
	ResourceDashboard: {}, ResourceAssessment: {}, ResourceFlagged: {},
	ResourceChatHistory: {}, ResourceToken: {},
}

// Roles carried in the token's role claim.
const (
	RoleStudent   Role = "student"
	RoleCounselor Role = "counselor"
	RoleAdmin     Role = "admin"
)

var KnownRoles = map[Role]struct{}{
	RoleStudent: {}, RoleCounselor: {}, RoleAdmin: {},
}

// ParseRole rejects roles the policy does not know about.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := KnownRoles[r]; !ok {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidArgs, s)
	}
	return r, nil
}

// IsStaff reports whether r may see other students' data.
func (r Role) IsStaff() bool {
	return r == RoleCounselor || r == RoleAdmin
}

type PolicyEffect string

const (
	EffectAllow PolicyEffect = "allow"
	EffectDeny  PolicyEffect = "deny"
)

// PermissionPolicy is one p rule: role may perform action on resource.
type PermissionPolicy struct {
	Role     Role
	Resource Resource
	Action   Action
	Effect   PolicyEffect
}
