// file: service/ledger_service.go

package service

import (
	"context"
	"encoding/json"
	"errors"
	"go-economy-bot/logger"
	"go-economy-bot/model"
	"go-economy-bot/repository"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfPayment       = errors.New("cannot pay yourself")
)

const accountCacheTTL = 10 * time.Minute

// LedgerService validates economy operations before handing them to the repository.
type LedgerService struct {
	repo  repository.IAccountRepository
	cache ICacheClient
}

// NewLedgerService builds the service. A nil cache disables caching.
func NewLedgerService(repo repository.IAccountRepository, cache ICacheClient) *LedgerService {
	if cache == nil {
		cache = NopCache{}
	}
	return &LedgerService{repo: repo, cache: cache}
}

func accountCacheKey(id string) string {
	return "account:" + id
}

// GetAccount returns the account for display, using a cache-aside strategy.
func (s *LedgerService) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	key := accountCacheKey(id)

	if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
		var account model.Account
		if err := json.Unmarshal([]byte(cached), &account); err == nil {
			if account.Inventory == nil {
				account.Inventory = model.Inventory{}
			}
			return &account, nil
		}
	}

	account, err := s.repo.GetOrCreateAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(account); err == nil {
		s.cache.Set(ctx, key, data, accountCacheTTL)
	}
	return account, nil
}

// Credit adds a non-negative reward to the wallet.
func (s *LedgerService) Credit(ctx context.Context, id string, amount int64) (*model.Account, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	defer s.invalidate(ctx, id)
	return s.repo.AdjustBalance(ctx, id, amount)
}

// Deposit moves amount from the wallet to the bank.
func (s *LedgerService) Deposit(ctx context.Context, id string, amount int64) (*model.Account, error) {
	account, err := s.requireWallet(ctx, id, amount)
	if err != nil {
		return nil, err
	}
	defer s.invalidate(ctx, id)

	account, err = s.repo.MoveToBank(ctx, id, amount)
	if err != nil {
		return nil, err
	}

	s.log(id).WithField("amount", amount).Info("Deposit completed")
	return account, nil
}

// Withdraw moves amount from the bank to the wallet.
func (s *LedgerService) Withdraw(ctx context.Context, id string, amount int64) (*model.Account, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	account, err := s.repo.GetOrCreateAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if amount > account.Bank {
		return nil, ErrInsufficientFunds
	}
	defer s.invalidate(ctx, id)

	account, err = s.repo.MoveToBank(ctx, id, -amount)
	if err != nil {
		return nil, err
	}

	s.log(id).WithField("amount", amount).Info("Withdrawal completed")
	return account, nil
}

// Pay moves amount from one wallet to another.
func (s *LedgerService) Pay(ctx context.Context, fromID, toID string, amount int64) (*model.Account, *model.Account, error) {
	if fromID == toID {
		return nil, nil, ErrSelfPayment
	}
	if _, err := s.requireWallet(ctx, fromID, amount); err != nil {
		return nil, nil, err
	}
	defer s.invalidate(ctx, fromID, toID)

	from, to, err := s.repo.Transfer(ctx, fromID, toID, amount)
	if err != nil {
		return nil, nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"from_account_id": fromID,
		"to_account_id":   toID,
		"amount":          amount,
	}).Info("Payment completed")
	return from, to, nil
}

// CheckStake verifies that stake can be wagered from the wallet.
func (s *LedgerService) CheckStake(ctx context.Context, id string, stake int64) (*model.Account, error) {
	return s.requireWallet(ctx, id, stake)
}

// Settle re-checks the stake and applies the signed outcome of a wager.
// delta must not lose more than the stake.
func (s *LedgerService) Settle(ctx context.Context, id string, stake, delta int64) (*model.Account, error) {
	if delta < -stake {
		return nil, ErrInvalidAmount
	}
	if _, err := s.requireWallet(ctx, id, stake); err != nil {
		return nil, err
	}
	defer s.invalidate(ctx, id)

	account, err := s.repo.AdjustBalance(ctx, id, delta)
	if err != nil {
		return nil, err
	}

	s.log(id).WithFields(logrus.Fields{"stake": stake, "delta": delta}).Info("Wager settled")
	return account, nil
}

// AddItem puts qty units of item into the inventory.
func (s *LedgerService) AddItem(ctx context.Context, id, item string, qty int64) (*model.Account, error) {
	if qty <= 0 {
		return nil, ErrInvalidAmount
	}
	defer s.invalidate(ctx, id)
	return s.repo.AdjustInventory(ctx, id, item, qty)
}

// requireWallet loads the authoritative account and checks 0 < amount <= wallet.
func (s *LedgerService) requireWallet(ctx context.Context, id string, amount int64) (*model.Account, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	account, err := s.repo.GetOrCreateAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if amount > account.Balance {
		return nil, ErrInsufficientFunds
	}
	return account, nil
}

func (s *LedgerService) invalidate(ctx context.Context, ids ...string) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, accountCacheKey(id))
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		logger.Log.WithError(err).WithField("keys", keys).Warn("Failed to invalidate account cache")
	}
}

func (s *LedgerService) log(id string) *logrus.Entry {
	return logger.Log.WithField("account_id", id)
}
