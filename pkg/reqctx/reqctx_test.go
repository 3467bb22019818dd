package reqctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeClaims struct {
	user    string
	expired bool
}

func (f fakeClaims) GetUserID() string { return f.user }
func (f fakeClaims) GetRole() string   { return "counselor" }
func (f fakeClaims) IsExpired() bool   { return f.expired }

func TestClaimsRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.False(t, IsAuthenticated(ctx))
	_, ok := UserIDFromContext(ctx)
	assert.False(t, ok)

	ctx = WithClaims(ctx, fakeClaims{user: "c-1"})
	assert.True(t, IsAuthenticated(ctx))
	id, ok := UserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "c-1", id)

	assert.False(t, IsAuthenticated(WithClaims(ctx, fakeClaims{user: "c-1", expired: true})))
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFromContext(ctx))

	ctx = WithRequestMeta(ctx, &RequestMeta{RequestID: "req-1"})
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
}
