package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/identity-service/constant"
	"github.com/muhammadheryan/identity-service/model"
)

const mysqlDuplicateEntry = 1062

type SQL struct {
	conn  *sqlx.DB
	table string
}

func NewMySQLRepository(conn *sqlx.DB, role constant.Role) AccountRepository {
	return &SQL{conn: conn, table: TableName(role)}
}

// accountRow is the flat table layout; OTP slots are nullable column pairs.
type accountRow struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	Email             string         `db:"email"`
	Phone             sql.NullString `db:"phone"`
	PasswordHash      string         `db:"password_hash"`
	Role              string         `db:"role"`
	EmailVerified     bool           `db:"email_verified"`
	PhoneVerified     bool           `db:"phone_verified"`
	IsVerified        bool           `db:"is_verified"`
	OtpCode           sql.NullString `db:"otp_code"`
	OtpExpiresAt      sql.NullTime   `db:"otp_expires_at"`
	LoginOtpCode      sql.NullString `db:"login_otp_code"`
	LoginOtpExpiresAt sql.NullTime   `db:"login_otp_expires_at"`
	Version           int64          `db:"version"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         sql.NullTime   `db:"updated_at"`
}

const columns = `id, name, email, phone, password_hash, role, email_verified, phone_verified, is_verified,
	otp_code, otp_expires_at, login_otp_code, login_otp_expires_at, version, created_at, updated_at`

func (s *SQL) Create(ctx context.Context, data *model.AccountEntity) (*model.AccountEntity, error) {
	row := toRow(data)
	row.Version = 1
	row.CreatedAt = time.Now().UTC()

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (:id, :name, :email, :phone, :password_hash, :role,
		:email_verified, :phone_verified, :is_verified, :otp_code, :otp_expires_at, :login_otp_code,
		:login_otp_expires_at, :version, :created_at, :updated_at)`, s.table, columns)

	if _, err := s.conn.NamedExecContext(ctx, query, row); err != nil {
		return nil, mapMySQLError(err)
	}

	return fromRow(row), nil
}

func (s *SQL) Get(ctx context.Context, filter *model.AccountFilter) (*model.AccountEntity, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE true", columns, s.table)
	args := make([]any, 0, 3)

	if filter.ID != "" {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}
	if filter.Phone != "" {
		query += " AND phone = ?"
		args = append(args, filter.Phone)
	}
	if len(args) == 0 {
		return nil, nil
	}

	var row accountRow
	if err := s.conn.QueryRowxContext(ctx, query+" LIMIT 1", args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return fromRow(&row), nil
}

func (s *SQL) Update(ctx context.Context, acc *model.AccountEntity) error {
	row := toRow(acc)
	now := time.Now().UTC()
	row.UpdatedAt = sql.NullTime{Time: now, Valid: true}

	query := fmt.Sprintf(`UPDATE %s SET name = :name, email = :email, phone = :phone,
		password_hash = :password_hash, email_verified = :email_verified, phone_verified = :phone_verified,
		is_verified = :is_verified, otp_code = :otp_code, otp_expires_at = :otp_expires_at,
		login_otp_code = :login_otp_code, login_otp_expires_at = :login_otp_expires_at,
		version = version + 1, updated_at = :updated_at
		WHERE id = :id AND version = :version`, s.table)

	res, err := s.conn.NamedExecContext(ctx, query, row)
	if err != nil {
		return mapMySQLError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStaleRecord
	}

	acc.Version++
	acc.UpdatedAt = &now
	return nil
}

func mapMySQLError(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		// message format: Duplicate entry '...' for key 'users.uniq_phone'
		if strings.Contains(myErr.Message, "phone") {
			return &DuplicateFieldError{Field: FieldPhone}
		}
		return &DuplicateFieldError{Field: FieldEmail}
	}
	return err
}

func toRow(a *model.AccountEntity) *accountRow {
	row := &accountRow{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		Phone:         sql.NullString{String: a.Phone, Valid: a.Phone != ""},
		PasswordHash:  a.PasswordHash,
		Role:          string(a.Role),
		EmailVerified: a.EmailVerified,
		PhoneVerified: a.PhoneVerified,
		IsVerified:    a.IsVerified,
		Version:       a.Version,
		CreatedAt:     a.CreatedAt,
	}
	if a.PendingOtp != nil {
		row.OtpCode = sql.NullString{String: a.PendingOtp.Code, Valid: true}
		row.OtpExpiresAt = sql.NullTime{Time: a.PendingOtp.ExpiresAt, Valid: true}
	}
	if a.PendingLoginOtp != nil {
		row.LoginOtpCode = sql.NullString{String: a.PendingLoginOtp.Code, Valid: true}
		row.LoginOtpExpiresAt = sql.NullTime{Time: a.PendingLoginOtp.ExpiresAt, Valid: true}
	}
	if a.UpdatedAt != nil {
		row.UpdatedAt = sql.NullTime{Time: *a.UpdatedAt, Valid: true}
	}
	return row
}

func fromRow(row *accountRow) *model.AccountEntity {
	a := &model.AccountEntity{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		Phone:         row.Phone.String,
		PasswordHash:  row.PasswordHash,
		Role:          constant.Role(row.Role),
		EmailVerified: row.EmailVerified,
		PhoneVerified: row.PhoneVerified,
		IsVerified:    row.IsVerified,
		Version:       row.Version,
		CreatedAt:     row.CreatedAt,
	}
	if row.OtpCode.Valid {
		a.PendingOtp = &model.OTP{Code: row.OtpCode.String, ExpiresAt: row.OtpExpiresAt.Time}
	}
	if row.LoginOtpCode.Valid {
		a.PendingLoginOtp = &model.OTP{Code: row.LoginOtpCode.String, ExpiresAt: row.LoginOtpExpiresAt.Time}
	}
	if row.UpdatedAt.Valid {
		t := row.UpdatedAt.Time
		a.UpdatedAt = &t
	}
	return a
}
