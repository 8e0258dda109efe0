package period_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvhoang/vietsu/internal/content/period"
	"github.com/dvhoang/vietsu/internal/platform/apperr"
	"github.com/dvhoang/vietsu/internal/platform/database/schema"
)

// stubDB hands every transaction request the same scripted transaction. The
// pool-level query methods are never expected in these tests.
type stubDB struct {
	tx *stubTx
}

func (db *stubDB) Begin(context.Context) (pgx.Tx, error) { return db.tx, nil }

func (db *stubDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("unexpected pool exec")
}

func (db *stubDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected pool query")
}

func (db *stubDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return stubRow{err: errors.New("unexpected pool query row")}
}

// stubTx scripts the statements a deletion transaction runs. Statements whose
// SQL contains failOn fault as if the connection dropped mid-transaction.
type stubTx struct {
	pgx.Tx

	lockedIDs  []int
	failOn     string
	executed   []string
	committed  bool
	rolledBack bool
}

func (tx *stubTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return &stubRows{ids: tx.lockedIDs}, nil
}

func (tx *stubTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	if len(tx.lockedIDs) == 0 {
		return stubRow{err: pgx.ErrNoRows}
	}
	return stubRow{id: tx.lockedIDs[0]}
}

func (tx *stubTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if tx.failOn != "" && strings.Contains(sql, tx.failOn) {
		return pgconn.CommandTag{}, errors.New("write failed: connection reset")
	}
	tx.executed = append(tx.executed, sql)
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (tx *stubTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *stubTx) Rollback(context.Context) error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

type stubRows struct {
	pgx.Rows

	ids []int
	pos int
}

func (r *stubRows) Next() bool {
	r.pos++
	return r.pos <= len(r.ids)
}

func (r *stubRows) Scan(dest ...any) error {
	*(dest[0].(*int)) = r.ids[r.pos-1]
	return nil
}

func (r *stubRows) Err() error { return nil }
func (r *stubRows) Close()     {}

type stubRow struct {
	id  int
	err error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int)) = r.id
	return nil
}

// touching reports how many executed statements reference the table.
func touching(statements []string, table string) int {
	count := 0
	for _, statement := range statements {
		if strings.Contains(statement, table) {
			count++
		}
	}
	return count
}

func TestReassignAndDelete_CommitsAllTables(t *testing.T) {
	tx := &stubTx{lockedIDs: []int{1, 2}}
	repo := period.NewPostgresRepository(&stubDB{tx: tx})

	err := repo.ReassignAndDelete(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.True(t, tx.committed)
	require.Len(t, tx.executed, 4)
	assert.Contains(t, tx.executed[0], schema.Event.Table)
	assert.Contains(t, tx.executed[1], schema.Figure.Table)
	assert.Contains(t, tx.executed[2], schema.Site.Table)
	assert.Contains(t, tx.executed[3], schema.Period.Table)
}

func TestReassignAndDelete_RollsBackOnDependentFault(t *testing.T) {
	// The figure update faults after events were already repointed. The
	// whole transaction must roll back and never reach the period delete.
	tx := &stubTx{lockedIDs: []int{1, 2}, failOn: schema.Figure.Table}
	repo := period.NewPostgresRepository(&stubDB{tx: tx})

	err := repo.ReassignAndDelete(context.Background(), 1, 2)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "TRANSACTION_FAILURE", ae.Code)

	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
	assert.Equal(t, 1, touching(tx.executed, schema.Event.Table))
	assert.Zero(t, touching(tx.executed, schema.Site.Table))
	assert.Zero(t, touching(tx.executed, schema.Period.Table))
}

func TestReassignAndDelete_MissingTargetRollsBack(t *testing.T) {
	// Only the source row exists under the lock.
	tx := &stubTx{lockedIDs: []int{1}}
	repo := period.NewPostgresRepository(&stubDB{tx: tx})

	err := repo.ReassignAndDelete(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
	assert.Empty(t, tx.executed)
}

func TestPurgeAndDelete_RollsBackOnDependentFault(t *testing.T) {
	tx := &stubTx{lockedIDs: []int{1}, failOn: schema.Figure.Table}
	repo := period.NewPostgresRepository(&stubDB{tx: tx})

	err := repo.PurgeAndDelete(context.Background(), 1)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "TRANSACTION_FAILURE", ae.Code)

	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
	assert.Equal(t, 1, touching(tx.executed, schema.Event.Table))
	assert.Zero(t, touching(tx.executed, schema.Period.Table))
}

func TestPurgeAndDelete_CommitsAllTables(t *testing.T) {
	tx := &stubTx{lockedIDs: []int{1}}
	repo := period.NewPostgresRepository(&stubDB{tx: tx})

	err := repo.PurgeAndDelete(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, tx.committed)
	require.Len(t, tx.executed, 4)
	assert.Contains(t, tx.executed[3], schema.Period.Table)
}
