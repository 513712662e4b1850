/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"
	"time"

	sqrl "github.com/Masterminds/squirrel"

	"github.com/YourCFP/we-mp-rss/common/pkg/database/model"
)

type Interface interface {
	NodeInterface
	AllocationInterface
	SyncLogInterface
	TaskInterface
	FeedInterface
	ArticleInterface
}

type NodeInterface interface {
	InsertNode(ctx context.Context, node *CascadeNode) error
	UpdateNode(ctx context.Context, node *CascadeNode) error
	SelectNodes(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*CascadeNode, error)
	CountNodes(ctx context.Context, query sqrl.Sqlizer) (int, error)
	GetNodeById(ctx context.Context, nodeId string) (*CascadeNode, error)
	GetNodeByApiKey(ctx context.Context, apiKey string) (*CascadeNode, error)
	UpdateNodeHeartbeat(ctx context.Context, nodeId string) error
	UpdateNodeCredentials(ctx context.Context, nodeId, apiKey, secretHash string) error
	SetNodeLastSync(ctx context.Context, nodeId string) error
	DeleteNode(ctx context.Context, nodeId string) error
}

type AllocationInterface interface {
	InsertAllocation(ctx context.Context, allocation *TaskAllocation) error
	ClaimAllocation(ctx context.Context, nodeId string) (*TaskAllocation, error)
	UpdateAllocationStatus(ctx context.Context, id string, next AllocationStatus, update *AllocationUpdate) error
	AddAllocationNewArticles(ctx context.Context, id string, count int) error
	SelectAllocations(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*TaskAllocation, error)
	CountAllocations(ctx context.Context, query sqrl.Sqlizer) (int, error)
	GetAllocationById(ctx context.Context, id string) (*TaskAllocation, error)
	GetAllocationStats(ctx context.Context, dayStart time.Time) (*AllocationStats, error)
	GetNodeInFlightCounts(ctx context.Context) (map[string]int, error)
	ReclaimAllocations(ctx context.Context, cutoff time.Time, errorMessage string) (int64, error)
}

type SyncLogInterface interface {
	InsertSyncLog(ctx context.Context, syncLog *model.CascadeSyncLog) error
	CompleteSyncLog(ctx context.Context, id string, status, dataCount int, errorMessage string) error
	ListSyncLogs(ctx context.Context, nodeId, operation string, limit, offset int) ([]*model.CascadeSyncLog, int64, error)
}

type TaskInterface interface {
	SelectMessageTasks(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*MessageTask, error)
	CountMessageTasks(ctx context.Context, query sqrl.Sqlizer) (int, error)
	GetMessageTaskById(ctx context.Context, taskId string) (*MessageTask, error)
	SelectEnabledTasks(ctx context.Context) ([]*MessageTask, error)
}

type FeedInterface interface {
	SelectFeeds(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*Feed, error)
	CountFeeds(ctx context.Context, query sqrl.Sqlizer) (int, error)
	GetFeedsByIds(ctx context.Context, feedIds []string) ([]*Feed, error)
}

type ArticleInterface interface {
	UpsertArticles(ctx context.Context, articles []*model.Article) (int64, error)
}
