package repository

import (
	"database/sql"
	"log/slog"

	"github.com/esogbengastephen/sui-ramp-service/internal/domain"
)

// SQLExecutor is the query surface the repositories need from
// database/sql. Every persisted state transition here is a single
// compare-and-set statement, so nothing larger than one Exec is ever
// required.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Store is the entry point for all repositories.
type Store struct {
	executor SQLExecutor
	logger   *slog.Logger
}

func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	return &Store{
		executor: db,
		logger:   logger,
	}
}

func (s *Store) Transactions() domain.TransactionRepository {
	return NewTransactionRepository(s.executor, s.logger)
}

func (s *Store) Limits() domain.LimitsRepository {
	return NewLimitsRepository(s.executor, s.logger)
}
