package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisTokenBlacklist_Add(t *testing.T) {
	db, mock := redismock.NewClientMock()
	blacklist := NewRedisTokenBlacklist(db)
	ctx := context.Background()

	jti := "01JTESTULID0000000000000AB"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectSet("auth:blacklist:"+jti, "revoked", time.Hour).SetVal("OK")
		err := blacklist.Add(ctx, jti, time.Hour)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExpiredTokenIsNoOp", func(t *testing.T) {
		// No redis expectation set: an already-expired token must not touch
		// the store at all.
		err := blacklist.Add(ctx, jti, -time.Minute)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		mock.ExpectSet("auth:blacklist:"+jti, "revoked", time.Hour).SetErr(errors.New("connection refused"))
		err := blacklist.Add(ctx, jti, time.Hour)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisTokenBlacklist_Contains(t *testing.T) {
	db, mock := redismock.NewClientMock()
	blacklist := NewRedisTokenBlacklist(db)
	ctx := context.Background()

	jti := "01JTESTULID0000000000000AB"

	t.Run("Revoked", func(t *testing.T) {
		mock.ExpectExists("auth:blacklist:" + jti).SetVal(1)
		revoked, err := blacklist.Contains(ctx, jti)
		assert.NoError(t, err)
		assert.True(t, revoked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotRevoked", func(t *testing.T) {
		mock.ExpectExists("auth:blacklist:" + jti).SetVal(0)
		revoked, err := blacklist.Contains(ctx, jti)
		assert.NoError(t, err)
		assert.False(t, revoked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		mock.ExpectExists("auth:blacklist:" + jti).SetErr(errors.New("connection refused"))
		revoked, err := blacklist.Contains(ctx, jti)
		assert.Error(t, err)
		assert.False(t, revoked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
