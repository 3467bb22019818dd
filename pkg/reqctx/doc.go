// Package reqctx carries request-scoped data through context.Context.
//
// HTTP middleware sets RequestMeta on every request and Claims on
// authenticated staff requests:
//
//	ctx = reqctx.WithRequestMeta(ctx, &reqctx.RequestMeta{RequestID: id})
//	ctx = reqctx.WithClaims(ctx, claims)
//
// Services read them back for logging and audit:
//
//	if userID, ok := reqctx.UserIDFromContext(ctx); ok { ... }
//
// All keys are unexported so only this package can set them.
package reqctx
