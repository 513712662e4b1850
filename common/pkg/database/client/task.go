/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"
	"fmt"

	sqrl "github.com/Masterminds/squirrel"

	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
)

const (
	TMessageTask = "message_tasks"
)

// SelectMessageTasks retrieves message tasks based on query conditions.
func (c *Client) SelectMessageTasks(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*MessageTask, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}

	builder := sqrl.StatementBuilder.PlaceholderFormat(sqrl.Dollar).
		Select("*").From(TMessageTask)

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
		return nil, fmt.Errorf("failed to build select message_tasks query: %v", err)
	}

	var tasks []*MessageTask
	err = db.SelectContext(ctx, &tasks, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select message_tasks from db: %v", err)
	}
	return tasks, nil
}

// CountMessageTasks counts message tasks based on query conditions.
func (c *Client) CountMessageTasks(ctx context.Context, query sqrl.Sqlizer) (int, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}

	builder := sqrl.StatementBuilder.PlaceholderFormat(sqrl.Dollar).
		Select("COUNT(*)").From(TMessageTask)

	if query != nil {
		builder = builder.Where(query)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count message_tasks query: %v", err)
	}

	var count int
	err = db.GetContext(ctx, &count, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count message_tasks from db: %v", err)
	}
	return count, nil
}

// GetMessageTaskById retrieves a message task by ID.
func (c *Client) GetMessageTaskById(ctx context.Context, taskId string) (*MessageTask, error) {
	if taskId == "" {
		return nil, commonerrors.NewBadRequest("taskId is empty")
	}
	dbTags := GetMessageTaskFieldTags()
	tasks, err := c.SelectMessageTasks(ctx, sqrl.Eq{GetFieldTag(dbTags, "Id"): taskId}, nil, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, commonerrors.NewNotFound(fmt.Sprintf("message task %s not found", taskId))
	}
	return tasks[0], nil
}

// SelectEnabledTasks returns every enabled message task in id order, the
// order the dispatcher walks them.
func (c *Client) SelectEnabledTasks(ctx context.Context) ([]*MessageTask, error) {
	dbTags := GetMessageTaskFieldTags()
	return c.SelectMessageTasks(ctx,
		sqrl.Eq{GetFieldTag(dbTags, "Status"): TaskStatusEnabled},
		[]string{GetFieldTag(dbTags, "Id") + " " + ASC}, 0, 0)
}
