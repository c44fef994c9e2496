package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/muhammadheryan/identity-service/constant"
	"github.com/muhammadheryan/identity-service/model"
)

// ErrStaleRecord is returned by Update when the stored version no longer matches.
var ErrStaleRecord = errors.New("account record was modified concurrently")

// DuplicateFieldError reports a uniqueness violation on email or phone.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate value for unique field %q", e.Field)
}

const (
	FieldEmail = "email"
	FieldPhone = "phone"
)

// AccountRepository stores one namespace of accounts (users or admins).
//
// Get returns (nil, nil) when nothing matches. Update is a compare-and-swap on Version: it
// persists the record only if the stored version equals acc.Version, then increments
// acc.Version; otherwise it returns ErrStaleRecord.
type AccountRepository interface {
	Create(ctx context.Context, acc *model.AccountEntity) (*model.AccountEntity, error)
	Get(ctx context.Context, filter *model.AccountFilter) (*model.AccountEntity, error)
	Update(ctx context.Context, acc *model.AccountEntity) error
}

// TableName returns the table/collection holding accounts of the given role.
// Users and admins live in separate namespaces, each with its own unique indexes.
func TableName(role constant.Role) string {
	if role == constant.RoleAdmin {
		return "admins"
	}
	return "users"
}
