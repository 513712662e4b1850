/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/YourCFP/we-mp-rss/common/pkg/database/model"
	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
)

// InsertSyncLog opens a sync-log entry for one worker interaction.
func (c *Client) InsertSyncLog(ctx context.Context, syncLog *model.CascadeSyncLog) error {
	if syncLog == nil {
		return commonerrors.NewBadRequest("the input is empty")
	}
	db, err := c.getGorm()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(syncLog).Error
}

// CompleteSyncLog closes a sync-log entry with its outcome.
func (c *Client) CompleteSyncLog(ctx context.Context, id string, status, dataCount int, errorMessage string) error {
	if id == "" {
		return commonerrors.NewBadRequest("sync log id is empty")
	}
	db, err := c.getGorm()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":       status,
		"data_count":   dataCount,
		"completed_at": &now,
	}
	if errorMessage != "" {
		updates["error_message"] = errorMessage
	}
	return db.WithContext(ctx).Model(&model.CascadeSyncLog{}).Where("id = ?", id).Updates(updates).Error
}

// ListSyncLogs returns one page of sync logs (newest first) plus the total
// row count for the same filters.
func (c *Client) ListSyncLogs(ctx context.Context, nodeId, operation string, limit, offset int) ([]*model.CascadeSyncLog, int64, error) {
	db, err := c.getGorm()
	if err != nil {
		return nil, 0, err
	}

	base := func() *gorm.DB {
		q := db.WithContext(ctx).Model(&model.CascadeSyncLog{})
		if nodeId != "" {
			q = q.Where("node_id = ?", nodeId)
		}
		if operation != "" {
			q = q.Where("operation = ?", operation)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []*model.CascadeSyncLog
	if err := base().Order("started_at DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
