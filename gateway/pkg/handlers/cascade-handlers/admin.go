/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package cascade_handlers

import (
	"context"
	"strconv"
	"time"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/YourCFP/we-mp-rss/common/pkg/common"
	dbclient "github.com/YourCFP/we-mp-rss/common/pkg/database/client"
	dbutils "github.com/YourCFP/we-mp-rss/common/pkg/database/utils"
	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/dispatcher"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/handlers/cascade-handlers/types"
	"github.com/YourCFP/we-mp-rss/utils/pkg/timeutil"
)

func (h *Handler) DispatchTask(c *gin.Context) {
	handle(c, h.dispatchTask)
}

func (h *Handler) ListAllocations(c *gin.Context) {
	handle(c, h.listAllocations)
}

func (h *Handler) GetAllocationStats(c *gin.Context) {
	handle(c, h.getAllocationStats)
}

func (h *Handler) StartScheduler(c *gin.Context) {
	handle(c, h.startScheduler)
}

func (h *Handler) StopScheduler(c *gin.Context) {
	handle(c, h.stopScheduler)
}

func (h *Handler) ReloadScheduler(c *gin.Context) {
	handle(c, h.reloadScheduler)
}

func (h *Handler) GetFeedStatus(c *gin.Context) {
	handle(c, h.getFeedStatus)
}

func (h *Handler) ListSyncLogs(c *gin.Context) {
	handle(c, h.listSyncLogs)
}

func (h *Handler) dispatchTask(c *gin.Context) (interface{}, error) {
	taskId := c.Query("task_id")
	dispatched, runId, err := h.dispatcher.ExecuteDispatch(c.Request.Context(), taskId)
	if err != nil {
		klog.ErrorS(err, "manual dispatch failed", "task", taskId)
		return nil, err
	}
	return &types.DispatchResponse{Dispatched: dispatched, ScheduleRunId: runId}, nil
}

func (h *Handler) listAllocations(c *gin.Context) (interface{}, error) {
	limit, offset, err := parsePaging(c, common.DefaultQueryLimit, 0)
	if err != nil {
		return nil, err
	}
	conditions := sqrl.And{}
	if taskId := c.Query("task_id"); taskId != "" {
		conditions = append(conditions, sqrl.Eq{"task_id": taskId})
	}
	if nodeId := c.Query("node_id"); nodeId != "" {
		conditions = append(conditions, sqrl.Eq{"node_id": nodeId})
	}
	if status := c.Query("status"); status != "" {
		conditions = append(conditions, sqrl.Eq{"status": status})
	}
	var query sqrl.Sqlizer
	if len(conditions) > 0 {
		query = conditions
	}

	ctx := c.Request.Context()
	allocations, err := h.dbClient.SelectAllocations(ctx, query,
		[]string{"dispatched_at DESC"}, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := h.dbClient.CountAllocations(ctx, query)
	if err != nil {
		return nil, err
	}
	nodeNames, err := h.nodeNamesById(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*types.AllocationView, 0, len(allocations))
	for _, allocation := range allocations {
		views = append(views, cvtToAllocationView(allocation, nodeNames))
	}
	return &types.ListAllocationResponse{List: views, Total: total}, nil
}

func (h *Handler) getAllocationStats(c *gin.Context) (interface{}, error) {
	ctx := c.Request.Context()
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	stats, err := h.dbClient.GetAllocationStats(ctx, dayStart)
	if err != nil {
		return nil, err
	}
	online, err := h.registry.OnlineCount(ctx)
	if err != nil {
		return nil, err
	}
	return &types.AllocationStatsView{
		Pending:        stats.Pending,
		InFlight:       stats.InFlight,
		CompletedToday: stats.CompletedToday,
		FailedToday:    stats.FailedToday,
		OnlineNodes:    online,
	}, nil
}

func (h *Handler) startScheduler(c *gin.Context) (interface{}, error) {
	jobs, err := h.scheduler.Start(c.Request.Context())
	if err != nil {
		klog.ErrorS(err, "failed to start scheduler")
		return nil, err
	}
	return &types.SchedulerStateResponse{Running: true, Jobs: jobs}, nil
}

func (h *Handler) stopScheduler(_ *gin.Context) (interface{}, error) {
	h.scheduler.Stop()
	return &types.SchedulerStateResponse{Running: false, Jobs: 0}, nil
}

func (h *Handler) reloadScheduler(c *gin.Context) (interface{}, error) {
	jobs, err := h.scheduler.Reload(c.Request.Context())
	if err != nil {
		klog.ErrorS(err, "failed to reload scheduler")
		return nil, err
	}
	return &types.SchedulerStateResponse{Running: h.scheduler.IsRunning(), Jobs: jobs}, nil
}

// getFeedStatus builds the per-feed freshness report: catalog fields plus the
// outcome of the most recent allocation whose snapshot contained the feed.
func (h *Handler) getFeedStatus(c *gin.Context) (interface{}, error) {
	ctx := c.Request.Context()
	feeds, err := h.dbClient.SelectFeeds(ctx, nil, []string{"created_at ASC"}, 0, 0)
	if err != nil {
		return nil, err
	}
	// Recent allocations are enough: the report answers "is this feed being
	// collected", not "list every run ever".
	recent, err := h.dbClient.SelectAllocations(ctx, nil,
		[]string{"dispatched_at DESC"}, 200, 0)
	if err != nil {
		return nil, err
	}

	lastByFeed := make(map[string]*dbclient.TaskAllocation)
	for _, allocation := range recent {
		feedIds, err := dispatcher.ParseFeedIds(allocation.FeedIds)
		if err != nil {
			continue
		}
		for _, feedId := range feedIds {
			if _, seen := lastByFeed[feedId]; !seen {
				lastByFeed[feedId] = allocation
			}
		}
	}

	views := make([]*types.FeedStatusView, 0, len(feeds))
	for _, feed := range feeds {
		view := &types.FeedStatusView{
			Id:       feed.Id,
			MpName:   feed.MpName.String,
			Status:   feed.Status,
			SyncTime: feed.SyncTime,
		}
		if last, ok := lastByFeed[feed.Id]; ok {
			view.LastAllocation = last.Id
			view.LastStatus = last.Status
			view.LastDispatched = dbutils.ParseNullTimeToString(last.DispatchedAt)
			view.LastError = last.ErrorMessage.String
		}
		views = append(views, view)
	}
	return views, nil
}

func (h *Handler) listSyncLogs(c *gin.Context) (interface{}, error) {
	limit, offset, err := parsePaging(c, common.DefaultSyncLogLimit, 0)
	if err != nil {
		return nil, err
	}
	if limit > common.MaxSyncLogLimit {
		limit = common.MaxSyncLogLimit
	}
	logs, total, err := h.dbClient.ListSyncLogs(c.Request.Context(),
		c.Query("node_id"), c.Query("operation"), limit, offset)
	if err != nil {
		return nil, err
	}
	views := make([]*types.SyncLogView, 0, len(logs))
	for _, log := range logs {
		view := &types.SyncLogView{
			Id:           log.Id,
			NodeId:       log.NodeId,
			Operation:    log.Operation,
			Direction:    log.Direction,
			Status:       log.Status,
			DataCount:    log.DataCount,
			ErrorMessage: log.ErrorMessage,
			ExtraData:    log.ExtraData,
			StartedAt:    timeutil.FormatRFC3339(&log.StartedAt),
			CompletedAt:  timeutil.FormatRFC3339(log.CompletedAt),
		}
		views = append(views, view)
	}
	return &types.ListSyncLogResponse{
		List:  views,
		Page:  types.Page{Limit: limit, Offset: offset},
		Total: total,
	}, nil
}

func (h *Handler) nodeNamesById(c context.Context) (map[string]string, error) {
	nodes, err := h.dbClient.SelectNodes(c, nil, nil, 0, 0)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(nodes))
	for _, node := range nodes {
		names[node.Id] = node.Name
	}
	return names, nil
}

func cvtToAllocationView(allocation *dbclient.TaskAllocation, nodeNames map[string]string) *types.AllocationView {
	feedIds, _ := dispatcher.ParseFeedIds(allocation.FeedIds)
	view := &types.AllocationView{
		Id:              allocation.Id,
		TaskId:          allocation.TaskId,
		TaskName:        allocation.TaskName.String,
		CronExp:         allocation.CronExp.String,
		NodeId:          allocation.NodeId.String,
		FeedIds:         feedIds,
		Status:          allocation.Status,
		ResultSummary:   allocation.ResultSummary.String,
		ErrorMessage:    allocation.ErrorMessage.String,
		ArticleCount:    allocation.ArticleCount,
		NewArticleCount: allocation.NewArticleCount,
		ScheduleRunId:   allocation.ScheduleRunId.String,
		DispatchedAt:    dbutils.ParseNullTimeToString(allocation.DispatchedAt),
		ClaimedAt:       dbutils.ParseNullTimeToString(allocation.ClaimedAt),
		StartedAt:       dbutils.ParseNullTimeToString(allocation.StartedAt),
		CompletedAt:     dbutils.ParseNullTimeToString(allocation.CompletedAt),
	}
	if allocation.NodeId.Valid {
		view.NodeName = nodeNames[allocation.NodeId.String]
	}
	return view
}

func parsePaging(c *gin.Context, defaultLimit, defaultOffset int) (int, int, error) {
	limit := defaultLimit
	offset := defaultOffset
	if raw := c.Query("limit"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val < 1 {
			return 0, 0, commonerrors.NewBadRequest("invalid limit")
		}
		limit = val
	}
	if raw := c.Query("offset"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val < 0 {
			return 0, 0, commonerrors.NewBadRequest("invalid offset")
		}
		offset = val
	}
	return limit, offset, nil
}
