// Copyright (c) 2026 VietSu. All rights reserved.
// Author: hoang.dv.dev@gmail.com

/*
Package ordering implements the display-order coordinator shared by every
reorderable collection (periods, event types, events, figures, sites).

# Contract

A caller supplies the complete ordered list of row IDs for a collection. The
coordinator rewrites each row's sort column to its 0-based position in that
list, inside a single transaction:

  - The supplied list must be exactly the set of existing IDs — no subset
    reorders, no unknown IDs, no duplicates. Any mismatch rejects the whole
    batch with a validation error before any row is touched.
  - All rows are updated or none are; a reader never observes a half-updated
    order.
  - Two racing reorder calls on the same collection serialize on the row
    locks; whichever commits last wins in full.

Sort values are not required to stay contiguous elsewhere in the system —
readers only rely on their relative order — but a successful call always
leaves them as 0..n-1.
*/
package ordering

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/dvhoang/vietsu/internal/platform/apperr"
	"github.com/dvhoang/vietsu/internal/platform/dberr"
)

// Collection names the table and columns of a reorderable collection.
type Collection struct {
	Table      string
	IDColumn   string
	SortColumn string
}

// DB is the subset of [pgxpool.Pool] the coordinator needs.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Reorder rewrites the sort column of every row in the collection to match
// the supplied order. The whole batch commits or none of it does.
func Reorder(ctx context.Context, db DB, col Collection, orderedIDs []int) error {
	if err := ValidateDistinct(orderedIDs); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return dberr.WrapTx(err, "reorder_begin")
	}
	defer tx.Rollback(ctx)

	// Lock the collection's rows so a racing reorder serializes behind us.
	existing, err := lockCollectionIDs(ctx, tx, col)
	if err != nil {
		return dberr.WrapTx(err, "reorder_lock")
	}

	if err := MatchExactSet(existing, orderedIDs); err != nil {
		return err
	}

	updateQuery := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		col.Table, col.SortColumn, col.IDColumn,
	)

	batch := &pgx.Batch{}
	for position, id := range orderedIDs {
		batch.Queue(updateQuery, position, id)
	}

	results := tx.SendBatch(ctx, batch)
	for range orderedIDs {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return dberr.WrapTx(err, "reorder_update")
		}
	}
	if err := results.Close(); err != nil {
		return dberr.WrapTx(err, "reorder_batch_close")
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.WrapTx(err, "reorder_commit")
	}

	return nil
}

// lockCollectionIDs selects every row ID in the collection FOR UPDATE.
func lockCollectionIDs(ctx context.Context, tx pgx.Tx, col Collection) ([]int, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s FOR UPDATE`, col.IDColumn, col.Table)

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// ValidateDistinct rejects an empty batch or a batch containing duplicate IDs.
func ValidateDistinct(ids []int) error {
	if len(ids) == 0 {
		return apperr.ValidationError("Ordered ID list must not be empty")
	}

	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return apperr.ValidationError(fmt.Sprintf("Duplicate ID %d in ordered list", id))
		}
		seen[id] = struct{}{}
	}

	return nil
}

// MatchExactSet verifies that supplied is exactly the set of existing IDs.
//
// Both missing rows (existing but not supplied) and unknown rows (supplied
// but not existing) fail the whole batch, so a stale admin UI can never
// commit a partial order.
func MatchExactSet(existing, supplied []int) error {
	if len(existing) != len(supplied) {
		return apperr.ValidationError(fmt.Sprintf(
			"Ordered list has %d IDs but the collection has %d rows", len(supplied), len(existing)))
	}

	existingSet := make(map[int]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}

	var unknown []int
	for _, id := range supplied {
		if _, ok := existingSet[id]; !ok {
			unknown = append(unknown, id)
		}
	}

	if len(unknown) > 0 {
		sort.Ints(unknown)
		return apperr.ValidationError(fmt.Sprintf("IDs %v do not belong to the collection", unknown))
	}

	return nil
}
