package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/muhammadheryan/identity-service/cmd/config"
	"github.com/muhammadheryan/identity-service/constant"
	redisrepo "github.com/muhammadheryan/identity-service/repository/redis"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrSessionMismatch = errors.New("token does not match session")
)

// Claims carried by every access token. Subject is the account id.
type Claims struct {
	Role constant.Role `json:"role"`
	jwt.RegisteredClaims
}

type Issuer interface {
	Issue(ctx context.Context, accountID string, role constant.Role) (string, error)
	Validate(ctx context.Context, tokenString string) (*Claims, error)
}

type JWTIssuer struct {
	secret    []byte
	ttl       time.Duration
	redisRepo redisrepo.RedisRepository
	now       func() time.Time
}

func NewJWTIssuer(cfg config.AuthConfig, redisRepo redisrepo.RedisRepository) *JWTIssuer {
	return &JWTIssuer{
		secret:    []byte(cfg.JWTSecret),
		ttl:       cfg.JWTExpiration,
		redisRepo: redisRepo,
		now:       time.Now,
	}
}

// Issue signs an HS256 token and records its session when a session store is available.
func (i *JWTIssuer) Issue(ctx context.Context, accountID string, role constant.Role) (string, error) {
	jti, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate jti: %w", err)
	}

	now := i.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti.String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	if err := i.redisRepo.SetSession(ctx, claims.ID, accountID, role, i.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return signed, nil
}

func (i *JWTIssuer) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" || claims.ID == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	if !i.redisRepo.Enabled() {
		return claims, nil
	}

	accountID, role, err := i.redisRepo.GetSession(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired session: %w", err)
	}
	if accountID != claims.Subject || role != claims.Role {
		return nil, ErrSessionMismatch
	}

	return claims, nil
}
