package account

import (
	"errors"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/muhammadheryan/identity-service/constant"
	"github.com/muhammadheryan/identity-service/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMySQLError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
	}{
		{
			name:      "duplicate email key",
			err:       &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@x.com' for key 'users.uniq_email'"},
			wantField: FieldEmail,
		},
		{
			name:      "duplicate phone key",
			err:       &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '+1555' for key 'admins.uniq_phone'"},
			wantField: FieldPhone,
		},
		{
			name: "other mysql error passes through",
			err:  &mysql.MySQLError{Number: 1045, Message: "Access denied"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapMySQLError(tt.err)
			var dup *DuplicateFieldError
			if tt.wantField == "" {
				assert.False(t, errors.As(got, &dup))
				assert.Equal(t, tt.err, got)
				return
			}
			require.True(t, errors.As(got, &dup))
			assert.Equal(t, tt.wantField, dup.Field)
		})
	}
}

func TestRowConversion(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("empty phone and otp slots map to NULL", func(t *testing.T) {
		row := toRow(&model.AccountEntity{ID: "a1", Email: "a@x.com", Role: constant.RoleUser})
		assert.False(t, row.Phone.Valid)
		assert.False(t, row.OtpCode.Valid)
		assert.False(t, row.LoginOtpCode.Valid)
		assert.False(t, row.UpdatedAt.Valid)

		back := fromRow(row)
		assert.Empty(t, back.Phone)
		assert.Nil(t, back.PendingOtp)
		assert.Nil(t, back.PendingLoginOtp)
	})

	t.Run("populated record survives the round trip", func(t *testing.T) {
		acc := &model.AccountEntity{
			ID:              "a1",
			Name:            "Admin",
			Email:           "admin@x.com",
			Phone:           "+15550001111",
			Role:            constant.RoleAdmin,
			EmailVerified:   true,
			PendingOtp:      &model.OTP{Code: "123456", ExpiresAt: now},
			PendingLoginOtp: &model.OTP{Code: "654321", ExpiresAt: now.Add(time.Minute)},
			Version:         3,
			CreatedAt:       now,
			UpdatedAt:       &now,
		}
		assert.Equal(t, acc, fromRow(toRow(acc)))
	})
}
