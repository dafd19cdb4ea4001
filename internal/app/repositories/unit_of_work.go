package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/escolinha/backend/internal/db"
)

// TxRepos bundles the repositories the provisioning workflow touches, all
// bound to the same transaction.
type TxRepos struct {
	Users    IUserRepository
	Students IStudentRepository
	Links    ILinkRepository
}

// UnitOfWork runs a function against a transactional repository set. Either
// everything the function writes commits, or nothing does.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos *TxRepos) error) error
}

// PgxUnitOfWork implements UnitOfWork on top of a pgx transaction.
type PgxUnitOfWork struct {
	db *db.PostgresDB
}

// NewPgxUnitOfWork creates a new PgxUnitOfWork.
func NewPgxUnitOfWork(database *db.PostgresDB) *PgxUnitOfWork {
	return &PgxUnitOfWork{db: database}
}

// Do opens a transaction, hands transaction-bound repositories to fn and
// commits when fn returns nil.
func (u *PgxUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos *TxRepos) error) error {
	return u.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repos := &TxRepos{
			Users:    NewUserRepository(tx),
			Students: NewStudentRepository(tx),
			Links:    NewLinkRepository(tx),
		}
		return fn(ctx, repos)
	})
}
