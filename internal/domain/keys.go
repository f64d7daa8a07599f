package domain

import "context"

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserRole  CtxKey = "Role"
	KeyRequestID CtxKey = "RequestID"
)

// WithPrincipal returns ctx carrying the authenticated account id and role.
func WithPrincipal(ctx context.Context, userID int64, role Role) context.Context {
	ctx = context.WithValue(ctx, KeyUserID, userID)
	return context.WithValue(ctx, KeyUserRole, role)
}

// PrincipalFromContext returns the authenticated account id and role, if any.
func PrincipalFromContext(ctx context.Context) (int64, Role, bool) {
	id, ok := ctx.Value(KeyUserID).(int64)
	if !ok || id <= 0 {
		return 0, "", false
	}
	role, _ := ctx.Value(KeyUserRole).(Role)
	return id, role, true
}
