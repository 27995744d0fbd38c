package ledger

import (
	"context"
	"errors"
	"fmt"

	"omerta/internal/app/ports"
	"omerta/internal/domain/game"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownField      = errors.New("unknown resource field")
)

// InsufficientFundsError reports which field fell short and by how much.
type InsufficientFundsError struct {
	Field   game.Field
	Missing int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient %s: missing %d", e.Field, e.Missing)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// Ledger exposes atomic single-field operations for callers outside the
// action pipeline (banking, admin grants). Each call is its own transaction
// with a CAS save, so concurrent debits cannot both pass the floor check.
// The engine itself mutates its in-transaction working aggregate through the
// same game.Player methods, which enforce identical bounds.
type Ledger struct {
	TxManager ports.TxManager
	Players   ports.PlayerRepository
}

func (l Ledger) Snapshot(ctx context.Context, playerID int64) (game.Player, error) {
	var p game.Player
	err := l.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		p, err = l.Players.GetByID(txCtx, playerID)
		return err
	})
	return p, err
}

func (l Ledger) Debit(ctx context.Context, playerID int64, field game.Field, amount int64) (int64, error) {
	if !game.IsValidField(field) {
		return 0, ErrUnknownField
	}
	var balance int64
	err := l.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		p, err := l.Players.GetByID(txCtx, playerID)
		if err != nil {
			return err
		}
		newBalance, ok := p.Debit(field, amount)
		if !ok {
			return &InsufficientFundsError{Field: field, Missing: amount - p.FieldValue(field)}
		}
		expected := p.Version
		p.Version++
		if err := l.Players.SaveWithVersion(txCtx, p, expected); err != nil {
			return err
		}
		balance = newBalance
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (l Ledger) Credit(ctx context.Context, playerID int64, field game.Field, amount int64) (int64, error) {
	if !game.IsValidField(field) {
		return 0, ErrUnknownField
	}
	var balance int64
	err := l.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		p, err := l.Players.GetByID(txCtx, playerID)
		if err != nil {
			return err
		}
		balance = p.Credit(field, amount)
		expected := p.Version
		p.Version++
		return l.Players.SaveWithVersion(txCtx, p, expected)
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Transfer moves cash between pocket and bank in one transaction. The bank
// is never debited by action rules; this is the only surface that touches it.
func (l Ledger) Transfer(ctx context.Context, playerID int64, from, to game.Field, amount int64) error {
	if !game.IsValidField(from) || !game.IsValidField(to) || from == to {
		return ErrUnknownField
	}
	return l.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		p, err := l.Players.GetByID(txCtx, playerID)
		if err != nil {
			return err
		}
		if _, ok := p.Debit(from, amount); !ok {
			return &InsufficientFundsError{Field: from, Missing: amount - p.FieldValue(from)}
		}
		p.Credit(to, amount)
		expected := p.Version
		p.Version++
		return l.Players.SaveWithVersion(txCtx, p, expected)
	})
}
