// Copyright (c) 2026 VietSu. All rights reserved.
// Author: hoang.dv.dev@gmail.com

package ordering_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvhoang/vietsu/internal/content/ordering"
	"github.com/dvhoang/vietsu/internal/platform/apperr"
)

/*
TestValidateDistinct rejects empty batches and duplicate IDs.
*/
func TestValidateDistinct(t *testing.T) {
	tests := []struct {
		name    string
		ids     []int
		isValid bool
	}{
		{"single", []int{1}, true},
		{"many", []int{3, 1, 2}, true},
		{"empty", []int{}, false},
		{"nil", nil, false},
		{"duplicate", []int{1, 2, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ordering.ValidateDistinct(tt.ids)

			if tt.isValid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			}
		})
	}
}

/*
TestMatchExactSet verifies that only a complete permutation of the existing
ID set passes — subsets, supersets, and foreign IDs all fail.
*/
func TestMatchExactSet(t *testing.T) {
	existing := []int{1, 2, 3}

	tests := []struct {
		name     string
		supplied []int
		isValid  bool
	}{
		{"identity", []int{1, 2, 3}, true},
		{"permutation", []int{3, 1, 2}, true},
		{"subset", []int{1, 2}, false},
		{"superset", []int{1, 2, 3, 4}, false},
		{"foreign_id", []int{1, 2, 99}, false},
		{"empty_against_rows", []int{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ordering.MatchExactSet(existing, tt.supplied)

			if tt.isValid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
			}
		})
	}
}

/*
TestMatchExactSet_EmptyCollection allows nothing but the empty list.
*/
func TestMatchExactSet_EmptyCollection(t *testing.T) {
	assert.NoError(t, ordering.MatchExactSet(nil, nil))
	assert.Error(t, ordering.MatchExactSet(nil, []int{1}))
}

// stubDB hands out a single scripted transaction.
type stubDB struct {
	tx *stubTx
}

func (db *stubDB) Begin(context.Context) (pgx.Tx, error) { return db.tx, nil }

// stubTx serves the lock query from rowIDs and the position updates through a
// batch whose nth Exec can fault.
type stubTx struct {
	pgx.Tx

	rowIDs     []int
	batch      *pgx.Batch
	results    *stubBatchResults
	committed  bool
	rolledBack bool
}

func (tx *stubTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return &stubRows{ids: tx.rowIDs}, nil
}

func (tx *stubTx) SendBatch(_ context.Context, batch *pgx.Batch) pgx.BatchResults {
	tx.batch = batch
	return tx.results
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

type stubBatchResults struct {
	pgx.BatchResults

	execs  int
	failAt int
}

func (r *stubBatchResults) Exec() (pgconn.CommandTag, error) {
	r.execs++
	if r.failAt > 0 && r.execs == r.failAt {
		return pgconn.CommandTag{}, errors.New("write failed: connection reset")
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (r *stubBatchResults) Close() error { return nil }

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

var testCollection = ordering.Collection{
	Table:      "content.period",
	IDColumn:   "id",
	SortColumn: "sortorder",
}

/*
TestReorder_CommitsFullBatch queues one position update per row, in the order
supplied, and commits.
*/
func TestReorder_CommitsFullBatch(t *testing.T) {
	tx := &stubTx{rowIDs: []int{1, 2, 3}, results: &stubBatchResults{}}

	err := ordering.Reorder(context.Background(), &stubDB{tx: tx}, testCollection, []int{3, 1, 2})
	require.NoError(t, err)

	assert.True(t, tx.committed)
	require.NotNil(t, tx.batch)
	require.Len(t, tx.batch.QueuedQueries, 3)

	// Each row takes its 0-based position in the supplied order.
	for position, id := range []int{3, 1, 2} {
		args := tx.batch.QueuedQueries[position].Arguments
		require.Len(t, args, 2)
		assert.Equal(t, position, args[0])
		assert.Equal(t, id, args[1])
	}
}

/*
TestReorder_RollsBackOnMidBatchFault faults the second position update and
verifies nothing commits, leaving the stored order untouched.
*/
func TestReorder_RollsBackOnMidBatchFault(t *testing.T) {
	tx := &stubTx{rowIDs: []int{1, 2, 3}, results: &stubBatchResults{failAt: 2}}

	err := ordering.Reorder(context.Background(), &stubDB{tx: tx}, testCollection, []int{3, 1, 2})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "TRANSACTION_FAILURE", ae.Code)

	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

/*
TestReorder_RejectsMismatchWithoutWriting locks the collection, sees the
supplied list is not the full ID set, and sends no batch at all.
*/
func TestReorder_RejectsMismatchWithoutWriting(t *testing.T) {
	tx := &stubTx{rowIDs: []int{1, 2, 3}, results: &stubBatchResults{}}

	err := ordering.Reorder(context.Background(), &stubDB{tx: tx}, testCollection, []int{1, 2})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	assert.Nil(t, tx.batch)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}
