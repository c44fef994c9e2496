package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/muhammadheryan/identity-service/constant"
	"github.com/muhammadheryan/identity-service/repository/redis"
	"github.com/stretchr/testify/assert"
)

func TestRepository_NilClientIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := redis.NewRepository(nil)

	assert.False(t, repo.Enabled())
	assert.NoError(t, repo.SetSession(ctx, "jti", "acc-1", constant.RoleUser, time.Minute))

	accountID, role, err := repo.GetSession(ctx, "jti")
	assert.NoError(t, err)
	assert.Empty(t, accountID)
	assert.Empty(t, role)
}
