package tx

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Transactor runs fn inside a database transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error
}

type Manager struct {
	DB *sql.DB
}

const maxRetries = 5

// ErrRetryExhausted is returned when every attempt hit a serialization failure.
var ErrRetryExhausted = errors.New("transaction retry exhausted")

func (m *Manager) WithTx(
	ctx context.Context,
	fn func(ctx context.Context, tx *sql.Tx) error,
) error {

	for i := 0; i < maxRetries; i++ {

		tx, err := m.DB.BeginTx(ctx, &sql.TxOptions{
			Isolation: sql.LevelReadCommitted,
		})
		if err != nil {
			return err
		}

		err = fn(ctx, tx)
		if err != nil {
			_ = tx.Rollback()
			if isSerializationError(err) {
				continue
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			if isSerializationError(err) {
				continue
			}
			return err
		}

		return nil
	}

	return ErrRetryExhausted
}

// isSerializationError matches serialization_failure and deadlock_detected.
func isSerializationError(err error) bool {
	var pgErr *pq.Error
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
