// file: service/ledger_service_test.go

package service

import (
	"context"
	"errors"
	"go-economy-bot/logger"
	"go-economy-bot/model"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// MockAccountRepository is a mock for IAccountRepository.
type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) account(args mock.Arguments) (*model.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) GetOrCreateAccount(ctx context.Context, id string) (*model.Account, error) {
	return m.account(m.Called(ctx, id))
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, id string, delta int64) (*model.Account, error) {
	return m.account(m.Called(ctx, id, delta))
}

func (m *MockAccountRepository) AdjustBank(ctx context.Context, id string, delta int64) (*model.Account, error) {
	return m.account(m.Called(ctx, id, delta))
}

func (m *MockAccountRepository) AdjustInventory(ctx context.Context, id, item string, qty int64) (*model.Account, error) {
	return m.account(m.Called(ctx, id, item, qty))
}

func (m *MockAccountRepository) Transfer(ctx context.Context, fromID, toID string, amount int64) (*model.Account, *model.Account, error) {
	args := m.Called(ctx, fromID, toID, amount)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Account), args.Get(1).(*model.Account), args.Error(2)
}

func (m *MockAccountRepository) MoveToBank(ctx context.Context, id string, delta int64) (*model.Account, error) {
	return m.account(m.Called(ctx, id, delta))
}

// mockCache is a mock for ICacheClient.
type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, key string) *redis.StringCmd {
	return m.Called(ctx, key).Get(0).(*redis.StringCmd)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return m.Called(ctx, key, value, expiration).Get(0).(*redis.StatusCmd)
}

func (m *mockCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return m.Called(ctx, keys).Get(0).(*redis.IntCmd)
}

var ctx = context.Background()

func TestLedgerService_GetAccount_CacheAside(t *testing.T) {
	t.Run("cache miss loads and stores", func(t *testing.T) {
		repo := new(MockAccountRepository)
		cache := new(mockCache)
		svc := NewLedgerService(repo, cache)

		cache.On("Get", ctx, "account:u1").Return(redis.NewStringResult("", redis.Nil)).Once()
		repo.On("GetOrCreateAccount", ctx, "u1").Return(&model.Account{ID: "u1", Balance: 7, Inventory: model.Inventory{}}, nil).Once()
		cache.On("Set", ctx, "account:u1", mock.Anything, accountCacheTTL).Return(redis.NewStatusResult("OK", nil)).Once()

		account, err := svc.GetAccount(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, int64(7), account.Balance)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		repo := new(MockAccountRepository)
		cache := new(mockCache)
		svc := NewLedgerService(repo, cache)

		cache.On("Get", ctx, "account:u1").Return(redis.NewStringResult(`{"id":"u1","balance":3,"bank":9,"inventory":null}`, nil)).Once()

		account, err := svc.GetAccount(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, int64(9), account.Bank)
		assert.NotNil(t, account.Inventory)
		repo.AssertNotCalled(t, "GetOrCreateAccount", mock.Anything, mock.Anything)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewLedgerService(repo, nil)
		repo.On("GetOrCreateAccount", ctx, "u1").Return(nil, errors.New("db error")).Once()

		_, err := svc.GetAccount(ctx, "u1")

		assert.Error(t, err)
	})
}

func TestLedgerService_Deposit(t *testing.T) {
	t.Run("success invalidates cache", func(t *testing.T) {
		repo := new(MockAccountRepository)
		cache := new(mockCache)
		svc := NewLedgerService(repo, cache)

		repo.On("GetOrCreateAccount", ctx, "u1").Return(&model.Account{ID: "u1", Balance: 500}, nil).Once()
		repo.On("MoveToBank", ctx, "u1", int64(500)).Return(&model.Account{ID: "u1", Bank: 500}, nil).Once()
		cache.On("Del", ctx, []string{"account:u1"}).Return(redis.NewIntResult(1, nil)).Once()

		account, err := svc.Deposit(ctx, "u1", 500)

		require.NoError(t, err)
		assert.Equal(t, int64(0), account.Balance)
		assert.Equal(t, int64(500), account.Bank)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("more than wallet", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewLedgerService(repo, nil)
		repo.On("GetOrCreateAccount", ctx, "u1").Return(&model.Account{ID: "u1", Balance: 10}, nil).Once()

		_, err := svc.Deposit(ctx, "u1", 11)

		assert.ErrorIs(t, err, ErrInsufficientFunds)
		repo.AssertNotCalled(t, "MoveToBank", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage error moves nothing", func(t *testing.T) {
		repo := new(MockAccountRepository)
		cache := new(mockCache)
		svc := NewLedgerService(repo, cache)

		repo.On("GetOrCreateAccount", ctx, "u1").Return(&model.Account{ID: "u1", Balance: 100}, nil).Once()
		repo.On("MoveToBank", ctx, "u1", int64(100)).Return(nil, errors.New("disk I/O error")).Once()
		cache.On("Del", ctx, []string{"account:u1"}).Return(redis.NewIntResult(0, nil)).Once()

		account, err := svc.Deposit(ctx, "u1", 100)

		assert.EqualError(t, err, "disk I/O error")
		assert.Nil(t, account)
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "AdjustBank", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewLedgerService(repo, nil)

		_, err := svc.Deposit(ctx, "u1", 0)

		assert.ErrorIs(t, err, ErrInvalidAmount)
		repo.AssertNotCalled(t, "GetOrCreateAccount", mock.Anything, mock.Anything)
	})
}

func TestLedgerService_Withdraw(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewLedgerService(repo, nil)

		repo.On("GetOrCreateAccount", ctx, "u1").Return(&model.Account{ID: "u1", Bank: 500}, nil).Once()
		repo.On("MoveToBank", ctx, "u1", int64(-200)).Return(&model.Account{ID: "u1", Balance: 200, Bank: 300}, nil).Once()

		account, err := svc.Withdraw(ctx, "u1", 200)

		require.NoError(t, err)
		assert.Equal(t, int64(200), account.Balance)
		repo.AssertExpectations(t)
	})

	t.Run("more than bank", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewLedgerService(repo, nil)
		repo.On("GetOrCreateAccount", ctx, "u1").Return(&model.Account{ID: "u1", Balance: 1000, Bank: 5}, nil).Once()

		_, err := svc.Withdraw(ctx, "u1", 6)

		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})
}

func TestLedgerService_Pay(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(MockAccountRepository)
		cache := new(mockCache)
		svc := NewLedgerService(repo, cache)

		repo.On("GetOrCreateAccount", ctx, "alice").Return(&model.Account{ID: "alice", Balance: 100}, nil).Once()
		repo.On("Transfer", ctx, "alice", "bob", int64(40)).
			Return(&model.Account{ID: "alice", Balance: 60}, &model.Account{ID: "bob", Balance: 40}, nil).Once()
		cache.On("Del", ctx, []string{"account:alice", "account:bob"}).Return(redis.NewIntResult(2, nil)).Once()

		from, to, err := svc.Pay(ctx, "alice", "bob", 40)

		require.NoError(t, err)
		assert.Equal(t, int64(60), from.Balance)
		assert.Equal(t, int64(40), to.Balance)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("self payment", func(t *testing.T) {
		svc := NewLedgerService(new(MockAccountRepository), nil)

		_, _, err := svc.Pay(ctx, "alice", "alice", 10)

		assert.ErrorIs(t, err, ErrSelfPayment)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewLedgerService(repo, nil)
		repo.On("GetOrCreateAccount", ctx, "alice").Return(&model.Account{ID: "alice", Balance: 5}, nil).Once()

		_, _, err := svc.Pay(ctx, "alice", "bob", 10)

		assert.ErrorIs(t, err, ErrInsufficientFunds)
		repo.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLedgerService_Settle(t *testing.T) {
	t.Run("win", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewLedgerService(repo, nil)
		repo.On("GetOrCreateAccount", ctx, "u1").Return(&model.Account{ID: "u1", Balance: 100}, nil).Once()
		repo.On("AdjustBalance", ctx, "u1", int64(100)).Return(&model.Account{ID: "u1", Balance: 200}, nil).Once()

		account, err := svc.Settle(ctx, "u1", 100, 100)

		require.NoError(t, err)
		assert.Equal(t, int64(200), account.Balance)
	})

	t.Run("loss larger than stake", func(t *testing.T) {
		svc := NewLedgerService(new(MockAccountRepository), nil)

		_, err := svc.Settle(ctx, "u1", 10, -11)

		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("stake above wallet", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewLedgerService(repo, nil)
		repo.On("GetOrCreateAccount", ctx, "u1").Return(&model.Account{ID: "u1", Balance: 50}, nil).Once()

		_, err := svc.Settle(ctx, "u1", 51, -51)

		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})
}

func TestLedgerService_CreditAndAddItem(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := NewLedgerService(repo, nil)

	repo.On("AdjustBalance", ctx, "u1", int64(DailyReward)).Return(&model.Account{ID: "u1", Balance: 500}, nil).Once()
	repo.On("AdjustInventory", ctx, "u1", "NPC Loot", int64(1)).
		Return(&model.Account{ID: "u1", Inventory: model.Inventory{"NPC Loot": 1}}, nil).Once()

	account, err := svc.Credit(ctx, "u1", DailyReward)
	require.NoError(t, err)
	assert.Equal(t, int64(500), account.Balance)

	account, err = svc.AddItem(ctx, "u1", "NPC Loot", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), account.Inventory["NPC Loot"])

	_, err = svc.Credit(ctx, "u1", -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.AddItem(ctx, "u1", "NPC Loot", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	repo.AssertExpectations(t)
}
