/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"k8s.io/klog/v2"

	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
)

const (
	TAllocation = "cascade_task_allocations"

	pqUniqueViolation = pq.ErrorCode("23505")
)

var (
	insertAllocationFormat = `INSERT INTO ` + TAllocation + ` (%s) VALUES (%s)`

	// claimAllocationCmd hands the oldest unclaimed pending allocation to one
	// node. SKIP LOCKED keeps concurrent claimers from blocking on the same
	// row; the subquery ordering makes the queue FIFO with id as tie-break.
	claimAllocationCmd = fmt.Sprintf(`UPDATE %s
		SET node_id = $1, status = '%s', claimed_at = NOW(), updated_at = NOW()
		WHERE id = (
			SELECT id FROM %s
			WHERE status = '%s' AND node_id IS NULL
			ORDER BY dispatched_at ASC, id ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`, TAllocation, AllocationStatusClaimed, TAllocation, AllocationStatusPending)

	reclaimAllocationsCmd = fmt.Sprintf(`UPDATE %s
		SET status = '%s', error_message = $1, completed_at = NOW(), updated_at = NOW()
		WHERE status IN ('%s', '%s', '%s') AND dispatched_at < $2`,
		TAllocation, AllocationStatusTimeout,
		AllocationStatusPending, AllocationStatusClaimed, AllocationStatusExecuting)

	allocationStatsCmd = fmt.Sprintf(`SELECT
		COUNT(*) FILTER (WHERE status = '%s') AS pending,
		COUNT(*) FILTER (WHERE status IN ('%s', '%s')) AS in_flight,
		COUNT(*) FILTER (WHERE status = '%s' AND completed_at >= $1) AS completed_today,
		COUNT(*) FILTER (WHERE status = '%s' AND completed_at >= $1) AS failed_today
		FROM %s`,
		AllocationStatusPending, AllocationStatusClaimed, AllocationStatusExecuting,
		AllocationStatusCompleted, AllocationStatusFailed, TAllocation)

	nodeInFlightCmd = fmt.Sprintf(`SELECT node_id, COUNT(*) AS cnt FROM %s
		WHERE node_id IS NOT NULL AND status IN ('%s', '%s', '%s')
		GROUP BY node_id`,
		TAllocation, AllocationStatusPending, AllocationStatusClaimed, AllocationStatusExecuting)
)

// allowedPrevStatus encodes the allocation state machine: the key is the
// target status, the value the set of states a row may move from. Claiming
// is the only pending exit; timeout sweeps everything non-terminal.
var allowedPrevStatus = map[AllocationStatus][]string{
	AllocationStatusClaimed:   {string(AllocationStatusPending)},
	AllocationStatusExecuting: {string(AllocationStatusClaimed)},
	AllocationStatusCompleted: {string(AllocationStatusExecuting)},
	AllocationStatusFailed:    {string(AllocationStatusClaimed), string(AllocationStatusExecuting)},
	AllocationStatusTimeout: {string(AllocationStatusPending), string(AllocationStatusClaimed),
		string(AllocationStatusExecuting)},
}

// AllocationUpdate carries the optional columns written together with a
// status transition.
type AllocationUpdate struct {
	ErrorMessage  string
	ResultSummary string
	ArticleCount  *int
}

type AllocationStats struct {
	Pending        int `db:"pending"`
	InFlight       int `db:"in_flight"`
	CompletedToday int `db:"completed_today"`
	FailedToday    int `db:"failed_today"`
}

// InsertAllocation inserts a pending allocation row. A duplicate
// (task_id, schedule_run_id) pair reports AlreadyExist so dispatch retries
// stay idempotent.
func (c *Client) InsertAllocation(ctx context.Context, allocation *TaskAllocation) error {
	if allocation == nil {
		return commonerrors.NewBadRequest("the input is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}

	_, err = db.NamedExecContext(ctx, generateCommand(*allocation, insertAllocationFormat, ""), allocation)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return commonerrors.WrapError(err,
				fmt.Sprintf("task %s already dispatched in this run", allocation.TaskId),
				commonerrors.AlreadyExist)
		}
		return fmt.Errorf("failed to insert allocation to db: %v", err)
	}
	return nil
}

// ClaimAllocation atomically assigns the oldest pending allocation to the
// node. A nil result with nil error means the queue is empty.
func (c *Client) ClaimAllocation(ctx context.Context, nodeId string) (*TaskAllocation, error) {
	if nodeId == "" {
		return nil, commonerrors.NewBadRequest("nodeId is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}

	var allocation TaskAllocation
	err = db.GetContext(ctx, &allocation, claimAllocationCmd, nodeId)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim allocation for node %s: %v", nodeId, err)
	}
	return &allocation, nil
}

// UpdateAllocationStatus moves an allocation along the state machine. The
// WHERE clause carries the allowed previous states, so an update that
// matches no row either hit a missing allocation (NotFound) or an illegal
// transition (Conflict).
func (c *Client) UpdateAllocationStatus(ctx context.Context, id string, next AllocationStatus, update *AllocationUpdate) error {
	if id == "" {
		return commonerrors.NewBadRequest("allocation id is empty")
	}
	prev, ok := allowedPrevStatus[next]
	if !ok {
		return commonerrors.NewBadRequest(fmt.Sprintf("invalid target status %q", next))
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	builder := sqrl.Update(TAllocation).PlaceholderFormat(sqrl.Dollar).
		Set("status", string(next)).
		Set("updated_at", now)
	switch next {
	case AllocationStatusExecuting:
		builder = builder.Set("started_at", now)
	case AllocationStatusCompleted, AllocationStatusFailed, AllocationStatusTimeout:
		builder = builder.Set("completed_at", now)
	}
	if update != nil {
		if update.ErrorMessage != "" {
			builder = builder.Set("error_message", update.ErrorMessage)
		}
		if update.ResultSummary != "" {
			builder = builder.Set("result_summary", update.ResultSummary)
		}
		if update.ArticleCount != nil {
			builder = builder.Set("article_count", *update.ArticleCount)
		}
	}
	builder = builder.Where(sqrl.And{
		sqrl.Eq{"id": id},
		sqrl.Eq{"status": prev},
	})

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update allocation query: %v", err)
	}
	result, err := db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("failed to update allocation %s: %v", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		current, err := c.GetAllocationById(ctx, id)
		if err != nil {
			return err
		}
		return commonerrors.NewConflict(
			fmt.Sprintf("allocation %s is %s, cannot move to %s", id, current.Status, next))
	}
	return nil
}

// AddAllocationNewArticles accumulates the freshly inserted article count;
// a worker may upload in several batches for one allocation.
func (c *Client) AddAllocationNewArticles(ctx context.Context, id string, count int) error {
	if id == "" {
		return commonerrors.NewBadRequest("allocation id is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}
	cmd := fmt.Sprintf(`UPDATE %s SET new_article_count = new_article_count + $1, updated_at = NOW() WHERE id = $2`, TAllocation)
	result, err := db.ExecContext(ctx, cmd, count, id)
	if err != nil {
		klog.ErrorS(err, "failed to add new article count", "id", id)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return commonerrors.NewNotFound(fmt.Sprintf("allocation %s not found", id))
	}
	return nil
}

// SelectAllocations retrieves allocations based on query conditions.
func (c *Client) SelectAllocations(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*TaskAllocation, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}

	builder := sqrl.StatementBuilder.PlaceholderFormat(sqrl.Dollar).
		Select("*").From(TAllocation)

	if query != nil {
		builder = builder.Where(query)
	}
	for _, order := range orderBy {
		builder = builder.OrderBy(order)
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select allocations query: %v", err)
	}

	var allocations []*TaskAllocation
	err = db.SelectContext(ctx, &allocations, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select allocations from db: %v", err)
	}
	return allocations, nil
}

// CountAllocations counts allocations based on query conditions.
func (c *Client) CountAllocations(ctx context.Context, query sqrl.Sqlizer) (int, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}

	builder := sqrl.StatementBuilder.PlaceholderFormat(sqrl.Dollar).
		Select("COUNT(*)").From(TAllocation)

	if query != nil {
		builder = builder.Where(query)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count allocations query: %v", err)
	}

	var count int
	err = db.GetContext(ctx, &count, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count allocations from db: %v", err)
	}
	return count, nil
}

// GetAllocationById retrieves an allocation by ID.
func (c *Client) GetAllocationById(ctx context.Context, id string) (*TaskAllocation, error) {
	if id == "" {
		return nil, commonerrors.NewBadRequest("allocation id is empty")
	}
	dbTags := GetTaskAllocationFieldTags()
	allocations, err := c.SelectAllocations(ctx, sqrl.Eq{GetFieldTag(dbTags, "Id"): id}, nil, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(allocations) == 0 {
		return nil, commonerrors.NewNotFound(fmt.Sprintf("allocation %s not found", id))
	}
	return allocations[0], nil
}

// GetAllocationStats aggregates the queue counters; dayStart bounds the
// completed/failed windows (UTC midnight at the call sites).
func (c *Client) GetAllocationStats(ctx context.Context, dayStart time.Time) (*AllocationStats, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	var stats AllocationStats
	err = db.GetContext(ctx, &stats, allocationStatsCmd, dayStart)
	if err != nil {
		return nil, fmt.Errorf("failed to load allocation stats: %v", err)
	}
	return &stats, nil
}

// GetNodeInFlightCounts returns how many non-terminal allocations each node
// currently holds.
func (c *Client) GetNodeInFlightCounts(ctx context.Context) (map[string]int, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	var rows []struct {
		NodeId string `db:"node_id"`
		Cnt    int    `db:"cnt"`
	}
	err = db.SelectContext(ctx, &rows, nodeInFlightCmd)
	if err != nil {
		return nil, fmt.Errorf("failed to load per-node allocation counts: %v", err)
	}
	result := make(map[string]int, len(rows))
	for _, row := range rows {
		result[row.NodeId] = row.Cnt
	}
	return result, nil
}

// ReclaimAllocations times out every non-terminal allocation dispatched
// before the cutoff and returns how many rows were swept.
func (c *Client) ReclaimAllocations(ctx context.Context, cutoff time.Time, errorMessage string) (int64, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	result, err := db.ExecContext(ctx, reclaimAllocationsCmd, errorMessage, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to reclaim allocations: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows > 0 {
		klog.Infof("reclaimed %d allocation(s) dispatched before %s", rows, cutoff.Format(time.RFC3339))
	}
	return rows, nil
}
