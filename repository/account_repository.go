package repository

import (
	"context"
	"database/sql"
	"fmt"
	"go-economy-bot/db"
	"go-economy-bot/logger"
	"go-economy-bot/model"

	"github.com/sirupsen/logrus"
)

// IAccountRepository defines the contract for account persistence.
// Mutations apply deltas without bounds checks and return the updated row.
type IAccountRepository interface {
	GetOrCreateAccount(ctx context.Context, id string) (*model.Account, error)
	AdjustBalance(ctx context.Context, id string, delta int64) (*model.Account, error)
	AdjustBank(ctx context.Context, id string, delta int64) (*model.Account, error)
	AdjustInventory(ctx context.Context, id, item string, qty int64) (*model.Account, error)
	Transfer(ctx context.Context, fromID, toID string, amount int64) (*model.Account, *model.Account, error)
	MoveToBank(ctx context.Context, id string, delta int64) (*model.Account, error)
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type AccountRepository struct {
	DB      *sql.DB
	dialect db.Dialect
}

func NewAccountRepository(database *sql.DB, dialect db.Dialect) *AccountRepository {
	return &AccountRepository{DB: database, dialect: dialect}
}

const (
	ensureAccountQuery = `INSERT INTO users (id, inventory) VALUES (?, '{}') ON CONFLICT (id) DO NOTHING`
	selectAccountQuery = `SELECT id, balance, bank, inventory FROM users WHERE id = ?`
	adjustBalanceQuery = `UPDATE users SET balance = balance + ? WHERE id = ? RETURNING id, balance, bank, inventory`
	adjustBankQuery    = `UPDATE users SET bank = bank + ? WHERE id = ? RETURNING id, balance, bank, inventory`
	updateInventory    = `UPDATE users SET inventory = ? WHERE id = ? RETURNING id, balance, bank, inventory`
)

// GetOrCreateAccount returns the account for id, creating a zeroed one first if needed.
func (r *AccountRepository) GetOrCreateAccount(ctx context.Context, id string) (*model.Account, error) {
	log := logger.Log.WithField("account_id", id)
	log.Debug("Executing query to get or create account")

	account, err := r.getOrCreate(ctx, r.DB, id)
	if err != nil {
		log.WithError(err).Error("Failed to get or create account")
		return nil, err
	}
	return account, nil
}

// AdjustBalance adds delta to the wallet.
func (r *AccountRepository) AdjustBalance(ctx context.Context, id string, delta int64) (*model.Account, error) {
	return r.adjust(ctx, adjustBalanceQuery, "balance", id, delta)
}

// AdjustBank adds delta to the bank.
func (r *AccountRepository) AdjustBank(ctx context.Context, id string, delta int64) (*model.Account, error) {
	return r.adjust(ctx, adjustBankQuery, "bank", id, delta)
}

func (r *AccountRepository) adjust(ctx context.Context, query, column, id string, delta int64) (*model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": id,
		"column":     column,
		"delta":      delta,
	})
	log.Debug("Executing query to adjust account")

	if err := r.ensure(ctx, r.DB, id); err != nil {
		log.WithError(err).Error("Failed to ensure account exists")
		return nil, err
	}

	account, err := r.scanAccount(r.DB.QueryRowContext(ctx, db.Rebind(r.dialect, query), delta, id))
	if err != nil {
		log.WithError(err).Error("Failed to execute adjust account query")
		return nil, err
	}
	return account, nil
}

// AdjustInventory adds qty of item to the inventory with a read-modify-write
// of the whole mapping inside one transaction.
func (r *AccountRepository) AdjustInventory(ctx context.Context, id, item string, qty int64) (*model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": id,
		"item":       item,
		"qty":        qty,
	})
	log.Debug("Executing queries to adjust inventory")

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.WithError(err).Error("Failed to begin inventory transaction")
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := r.getOrCreate(ctx, tx, id)
	if err != nil {
		log.WithError(err).Error("Failed to read inventory")
		return nil, err
	}

	current.Inventory.Add(item, qty)

	account, err := r.scanAccount(tx.QueryRowContext(ctx, db.Rebind(r.dialect, updateInventory), current.Inventory, id))
	if err != nil {
		log.WithError(err).Error("Failed to execute update inventory query")
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.WithError(err).Error("Failed to commit inventory transaction")
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}
	return account, nil
}

// Transfer moves amount between two wallets in one transaction.
// Sufficiency is the caller's concern, as with the other mutations.
func (r *AccountRepository) Transfer(ctx context.Context, fromID, toID string, amount int64) (*model.Account, *model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"from_account_id": fromID,
		"to_account_id":   toID,
		"amount":          amount,
	})
	log.Debug("Executing queries to transfer between wallets")

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.WithError(err).Error("Failed to begin transfer transaction")
		return nil, nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.ensure(ctx, tx, fromID); err != nil {
		return nil, nil, err
	}
	if err := r.ensure(ctx, tx, toID); err != nil {
		return nil, nil, err
	}

	from, err := r.scanAccount(tx.QueryRowContext(ctx, db.Rebind(r.dialect, adjustBalanceQuery), -amount, fromID))
	if err != nil {
		log.WithError(err).Error("Failed to debit sender")
		return nil, nil, fmt.Errorf("could not update sender balance: %w", err)
	}

	to, err := r.scanAccount(tx.QueryRowContext(ctx, db.Rebind(r.dialect, adjustBalanceQuery), amount, toID))
	if err != nil {
		log.WithError(err).Error("Failed to credit recipient")
		return nil, nil, fmt.Errorf("could not update recipient balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.WithError(err).Error("Failed to commit transfer transaction")
		return nil, nil, fmt.Errorf("could not commit transaction: %w", err)
	}
	return from, to, nil
}

// MoveToBank moves delta from the wallet to the bank in one transaction.
// A negative delta moves money the other way.
func (r *AccountRepository) MoveToBank(ctx context.Context, id string, delta int64) (*model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": id,
		"delta":      delta,
	})
	log.Debug("Executing queries to move money between wallet and bank")

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.WithError(err).Error("Failed to begin bank transaction")
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.ensure(ctx, tx, id); err != nil {
		return nil, err
	}

	if _, err := r.scanAccount(tx.QueryRowContext(ctx, db.Rebind(r.dialect, adjustBalanceQuery), -delta, id)); err != nil {
		log.WithError(err).Error("Failed to update wallet")
		return nil, fmt.Errorf("could not update wallet: %w", err)
	}

	account, err := r.scanAccount(tx.QueryRowContext(ctx, db.Rebind(r.dialect, adjustBankQuery), delta, id))
	if err != nil {
		log.WithError(err).Error("Failed to update bank")
		return nil, fmt.Errorf("could not update bank: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.WithError(err).Error("Failed to commit bank transaction")
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) ensure(ctx context.Context, q querier, id string) error {
	if _, err := q.ExecContext(ctx, db.Rebind(r.dialect, ensureAccountQuery), id); err != nil {
		return fmt.Errorf("could not create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) getOrCreate(ctx context.Context, q querier, id string) (*model.Account, error) {
	if err := r.ensure(ctx, q, id); err != nil {
		return nil, err
	}
	return r.scanAccount(q.QueryRowContext(ctx, db.Rebind(r.dialect, selectAccountQuery), id))
}

func (r *AccountRepository) scanAccount(row *sql.Row) (*model.Account, error) {
	account := &model.Account{}
	if err := row.Scan(&account.ID, &account.Balance, &account.Bank, &account.Inventory); err != nil {
		return nil, err
	}
	return account, nil
}
