package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"

	"github.com/corebank/ledger/internal/models"
	"github.com/corebank/ledger/internal/money"
)

func testAccount() models.Account {
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return models.Account{
		ID:         "acc-1",
		HolderName: "Ada Lovelace",
		Balance:    money.FromMinorUnits(123456),
		Version:    3,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func TestAccountCache_GetSet(t *testing.T) {
	t.Run("miss then set", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		cache := NewAccountCache(client, time.Minute)
		account := testAccount()

		mock.ExpectGet("account:acc-1").RedisNil()

		_, ok := cache.Get(context.Background(), "acc-1")
		assert.False(t, ok)

		data, err := json.Marshal(account)
		assert.NoError(t, err)
		mock.ExpectSet("account:acc-1", data, time.Minute).SetVal("OK")

		cache.Set(context.Background(), account)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hit round-trips the snapshot", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		cache := NewAccountCache(client, time.Minute)
		account := testAccount()

		data, err := json.Marshal(account)
		assert.NoError(t, err)
		mock.ExpectGet("account:acc-1").SetVal(string(data))

		got, ok := cache.Get(context.Background(), "acc-1")
		assert.True(t, ok)
		assert.Equal(t, account, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis fault reads as miss", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		cache := NewAccountCache(client, time.Minute)

		mock.ExpectGet("account:acc-1").SetErr(errors.New("connection refused"))

		_, ok := cache.Get(context.Background(), "acc-1")
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt payload reads as miss", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		cache := NewAccountCache(client, time.Minute)

		mock.ExpectGet("account:acc-1").SetVal("{not json")

		_, ok := cache.Get(context.Background(), "acc-1")
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountCache_Invalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewAccountCache(client, time.Minute)

	mock.ExpectDel("account:acc-1").SetVal(1)

	cache.Invalidate(context.Background(), "acc-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountCache_NilClientDisablesCaching(t *testing.T) {
	var cache *AccountCache

	_, ok := cache.Get(context.Background(), "acc-1")
	assert.False(t, ok)
	cache.Set(context.Background(), testAccount())
	cache.Invalidate(context.Background(), "acc-1")

	cache = NewAccountCache(nil, 0)
	_, ok = cache.Get(context.Background(), "acc-1")
	assert.False(t, ok)
}
