// Copyright (c) 2026 VietSu. All rights reserved.
// Author: hoang.dv.dev@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvhoang/vietsu/internal/platform/database/schema"
	"github.com/dvhoang/vietsu/internal/platform/dberr"
)

type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*Account, error) {
	return repository.findBy(context, schema.Account.ID, id)
}

func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*Account, error) {
	return repository.findBy(context, schema.Account.Username, username)
}

func (repository *PostgresAccountRepository) findBy(context context.Context, column, value string) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Account.ID, schema.Account.Username, schema.Account.Email,
		schema.Account.PasswordHash, schema.Account.Role,
		schema.Account.CreatedAt, schema.Account.UpdatedAt,
		schema.Account.Table, column,
	)

	account := &Account{}
	err := repository.db.QueryRow(context, query, value).Scan(
		&account.ID, &account.Username, &account.Email, &account.PasswordHash,
		&account.Role, &account.CreatedAt, &account.UpdatedAt,
	)

	return account, dberr.Wrap(err, "find_account")
}
