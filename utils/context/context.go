package context

import (
	"context"

	"github.com/muhammadheryan/identity-service/constant"
)

func WithAccount(ctx context.Context, accountID string, role constant.Role) context.Context {
	ctx = context.WithValue(ctx, constant.AccountIDKey, accountID)
	return context.WithValue(ctx, constant.RoleKey, role)
}

func GetAccountID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(constant.AccountIDKey).(string)
	return id, ok && id != ""
}

func GetRole(ctx context.Context) (constant.Role, bool) {
	role, ok := ctx.Value(constant.RoleKey).(constant.Role)
	return role, ok
}
