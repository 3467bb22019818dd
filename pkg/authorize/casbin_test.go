package authorize

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeded(t *testing.T) IAuthorization {
	t.Helper()
	e, err := NewEnforcer()
	require.NoError(t, err)
	auth, err := NewAuthorization(e)
	require.NoError(t, err)
	require.NoError(t, SeedDefaultPolicies(context.Background(), auth))
	return auth
}

func TestEnforce_DefaultPolicies(t *testing.T) {
	auth := newSeeded(t)
	ctx := context.Background()

	tests := []struct {
		role   Role
		obj    Resource
		act    Action
		expect bool
	}{
		{RoleStudent, ResourceDashboard, ActionRead, false},
		{RoleStudent, ResourceChatHistory, ActionRead, false},
		{RoleCounselor, ResourceDashboard, ActionRead, true},
		{RoleCounselor, ResourceFlagged, ActionList, true},
		{RoleCounselor, ResourceAssessment, ActionList, true},
		{RoleCounselor, ResourceChatHistory, ActionRead, true},
		{RoleCounselor, ResourceToken, ActionCreate, false},
		{RoleAdmin, ResourceDashboard, ActionRead, true},
		{RoleAdmin, ResourceToken, ActionCreate, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.obj)+"/"+string(tt.act), func(t *testing.T) {
			ok, err := auth.Enforce(ctx, tt.role, tt.obj, tt.act)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, ok)
		})
	}
}

func TestEnforce_DenyOverridesAllow(t *testing.T) {
	auth := newSeeded(t)
	ctx := context.Background()

	_, err := auth.AddPermission(ctx, PermissionPolicy{RoleAdmin, ResourceChatHistory, ActionRead, EffectDeny})
	require.NoError(t, err)

	ok, err := auth.Enforce(ctx, RoleAdmin, ResourceChatHistory, ActionRead)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = auth.Enforce(ctx, RoleCounselor, ResourceChatHistory, ActionRead)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnforce_InvalidArgs(t *testing.T) {
	auth := newSeeded(t)
	ctx := context.Background()

	_, err := auth.Enforce(ctx, "", ResourceDashboard, ActionRead)
	assert.True(t, errors.Is(err, ErrInvalidArgs))

	_, err = auth.Enforce(ctx, RoleAdmin, "billing", ActionRead)
	assert.True(t, errors.Is(err, ErrInvalidArgs))

	_, err = auth.AddPermission(ctx, PermissionPolicy{"janitor", ResourceDashboard, ActionRead, EffectAllow})
	assert.True(t, errors.Is(err, ErrInvalidArgs))
}

func TestMustEnforce(t *testing.T) {
	auth := newSeeded(t)
	err := auth.MustEnforce(context.Background(), RoleStudent, ResourceDashboard, ActionRead)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("counselor")
	require.NoError(t, err)
	assert.True(t, r.IsStaff())
	assert.False(t, RoleStudent.IsStaff())

	_, err = ParseRole("root")
	assert.Error(t, err)
}

func TestAuditedAuthorization_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	auth := NewAuditedAuthorization(newSeeded(t), logger)
	ok, err := auth.Enforce(context.Background(), RoleStudent, ResourceDashboard, ActionRead)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Contains(t, buf.String(), `"msg":"authz_decision"`)
	assert.Contains(t, buf.String(), `"allowed":false`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}
