package authorize

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultPolicies grants counselors read access to student data. Students get
// nothing here; their own routes are not behind RBAC.
var DefaultPolicies = []PermissionPolicy{
	{RoleCounselor, ResourceDashboard, ActionRead, EffectAllow},
	{RoleCounselor, ResourceFlagged, ActionList, EffectAllow},
	{RoleCounselor, ResourceAssessment, ActionList, EffectAllow},
	{RoleCounselor, ResourceChatHistory, ActionRead, EffectAllow},

	{RoleAdmin, WildcardResource, ActionManage, EffectAllow},
}

// SeedDefaultPolicies loads DefaultPolicies and the admin > counselor hierarchy.
func SeedDefaultPolicies(ctx context.Context, auth IAuthorization) error {
	logger := slog.Default()

	if _, err := auth.AddRoleInheritance(ctx, RoleAdmin, RoleCounselor); err != nil {
		return fmt.Errorf("seed role hierarchy: %w", err)
	}

	added := 0
	for _, p := range DefaultPolicies {
		ok, err := auth.AddPermission(ctx, p)
		if err != nil {
			return fmt.Errorf("seed policy %s/%s/%s: %w", p.Role, p.Resource, p.Action, err)
		}
		if ok {
			added++
		}
	}

	logger.Info("authorization policies seeded", slog.Int("added", added))
	return nil
}
