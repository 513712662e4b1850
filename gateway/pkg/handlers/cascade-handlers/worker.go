/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package cascade_handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/YourCFP/we-mp-rss/common/pkg/common"
	dbclient "github.com/YourCFP/we-mp-rss/common/pkg/database/client"
	dbmodel "github.com/YourCFP/we-mp-rss/common/pkg/database/model"
	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/handlers/cascade-handlers/types"
	jsonutils "github.com/YourCFP/we-mp-rss/utils/pkg/json"
)

// workerStatusTargets are the transitions a worker may request directly.
// Claiming goes through claim-task; timeout belongs to the reclaimer.
var workerStatusTargets = map[string]dbclient.AllocationStatus{
	string(dbclient.AllocationStatusExecuting): dbclient.AllocationStatusExecuting,
	string(dbclient.AllocationStatusCompleted): dbclient.AllocationStatusCompleted,
	string(dbclient.AllocationStatusFailed):    dbclient.AllocationStatusFailed,
}

func (h *Handler) Heartbeat(c *gin.Context) {
	handle(c, h.heartbeat)
}

func (h *Handler) ClaimTask(c *gin.Context) {
	handle(c, h.claimTask)
}

func (h *Handler) UpdateTaskStatus(c *gin.Context) {
	handle(c, h.updateTaskStatus)
}

func (h *Handler) UploadArticles(c *gin.Context) {
	handle(c, h.uploadArticles)
}

func (h *Handler) ReportCompletion(c *gin.Context) {
	handle(c, h.reportCompletion)
}

func (h *Handler) ListWorkerFeeds(c *gin.Context) {
	handle(c, h.listWorkerFeeds)
}

// heartbeat is a bare liveness ping. The authority middleware already
// verified the credentials and touched last_heartbeat_at on the way in.
func (h *Handler) heartbeat(c *gin.Context) (interface{}, error) {
	return &types.HeartbeatResponse{Status: "alive"}, nil
}

func (h *Handler) claimTask(c *gin.Context) (interface{}, error) {
	nodeId := c.GetString(common.NodeId)
	pkg, err := h.dispatcher.ClaimForNode(c.Request.Context(), nodeId)
	if err != nil {
		klog.ErrorS(err, "failed to claim task", "node", nodeId)
		return nil, err
	}
	// A nil package serializes as null data: no pending task.
	if pkg == nil {
		return nil, nil
	}
	return pkg, nil
}

func (h *Handler) updateTaskStatus(c *gin.Context) (interface{}, error) {
	req := &types.TaskStatusRequest{}
	if _, err := getBodyFromRequest(c.Request, req); err != nil {
		klog.ErrorS(err, "failed to parse request")
		return nil, err
	}
	if req.AllocationId == "" {
		return nil, commonerrors.NewBadRequest("allocation_id is required")
	}
	next, ok := workerStatusTargets[req.Status]
	if !ok {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf("invalid status %q", req.Status))
	}
	ctx := c.Request.Context()
	nodeId := c.GetString(common.NodeId)
	if _, err := h.getOwnedAllocation(ctx, req.AllocationId, nodeId); err != nil {
		return nil, err
	}
	update := &dbclient.AllocationUpdate{ErrorMessage: req.ErrorMessage}
	if err := h.dbClient.UpdateAllocationStatus(ctx, req.AllocationId, next, update); err != nil {
		klog.ErrorS(err, "failed to update allocation status",
			"allocation", req.AllocationId, "status", req.Status)
		return nil, err
	}
	return nil, nil
}

func (h *Handler) uploadArticles(c *gin.Context) (interface{}, error) {
	req := &types.UploadArticlesRequest{}
	if _, err := getBodyFromRequest(c.Request, req); err != nil {
		klog.ErrorS(err, "failed to parse request")
		return nil, err
	}
	if req.AllocationId == "" {
		return nil, commonerrors.NewBadRequest("allocation_id is required")
	}
	ctx := c.Request.Context()
	nodeId := c.GetString(common.NodeId)
	if _, err := h.getOwnedAllocation(ctx, req.AllocationId, nodeId); err != nil {
		return nil, err
	}

	logId := h.startSyncLog(ctx, nodeId, dbclient.SyncOpUploadArticles, dbclient.SyncDirectionPush, req.AllocationId)
	articles := make([]*dbmodel.Article, 0, len(req.Articles))
	for _, a := range req.Articles {
		if a.Id == "" || a.MpId == "" {
			h.finishSyncLog(ctx, logId, dbclient.SyncLogStatusError, 0, "article without id or mp_id")
			return nil, commonerrors.NewBadRequest("every article needs an id and mp_id")
		}
		articles = append(articles, &dbmodel.Article{
			Id:          a.Id,
			MpId:        a.MpId,
			Title:       a.Title,
			PicUrl:      a.PicUrl,
			Url:         a.Url,
			Content:     a.Content,
			Description: a.Description,
			Status:      a.Status,
			PublishTime: a.PublishTime,
		})
	}
	// Inserted-row count, not batch size: re-uploaded articles are not new.
	newCount, err := h.dbClient.UpsertArticles(ctx, articles)
	if err != nil {
		klog.ErrorS(err, "failed to store uploaded articles", "allocation", req.AllocationId)
		h.finishSyncLog(ctx, logId, dbclient.SyncLogStatusError, 0, err.Error())
		return nil, err
	}
	if newCount > 0 {
		if err = h.dbClient.AddAllocationNewArticles(ctx, req.AllocationId, int(newCount)); err != nil {
			klog.ErrorS(err, "failed to bump new article count", "allocation", req.AllocationId)
		}
	}
	h.finishSyncLog(ctx, logId, dbclient.SyncLogStatusOk, len(req.Articles), "")
	klog.Infof("node %s uploaded %d article(s) for allocation %s (%d new)",
		nodeId, len(req.Articles), req.AllocationId, newCount)
	return &types.UploadArticlesResponse{Received: len(req.Articles), New: newCount}, nil
}

func (h *Handler) reportCompletion(c *gin.Context) (interface{}, error) {
	req := &types.ReportCompletionRequest{}
	if _, err := getBodyFromRequest(c.Request, req); err != nil {
		klog.ErrorS(err, "failed to parse request")
		return nil, err
	}
	if req.AllocationId == "" {
		return nil, commonerrors.NewBadRequest("allocation_id is required")
	}
	ctx := c.Request.Context()
	nodeId := c.GetString(common.NodeId)
	allocation, err := h.getOwnedAllocation(ctx, req.AllocationId, nodeId)
	if err != nil {
		return nil, err
	}
	if req.TaskId != "" && req.TaskId != allocation.TaskId {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf(
			"allocation %s belongs to task %s, not %s", req.AllocationId, allocation.TaskId, req.TaskId))
	}

	logId := h.startSyncLog(ctx, nodeId, dbclient.SyncOpReportResult, dbclient.SyncDirectionPush, req.AllocationId)
	next := dbclient.AllocationStatusCompleted
	errorMessage := ""
	if failed, total := countFailedResults(req.Results); total > 0 && failed == total {
		next = dbclient.AllocationStatusFailed
		errorMessage = "all feeds failed"
	}
	update := &dbclient.AllocationUpdate{
		ResultSummary: string(jsonutils.MarshalSilently(req.Results)),
		ArticleCount:  &req.ArticleCount,
		ErrorMessage:  errorMessage,
	}
	if err = h.dbClient.UpdateAllocationStatus(ctx, req.AllocationId, next, update); err != nil {
		klog.ErrorS(err, "failed to complete allocation", "allocation", req.AllocationId)
		h.finishSyncLog(ctx, logId, dbclient.SyncLogStatusError, 0, err.Error())
		return nil, err
	}
	h.finishSyncLog(ctx, logId, dbclient.SyncLogStatusOk, len(req.Results), "")
	klog.Infof("node %s reported allocation %s as %s (%d article(s))",
		nodeId, req.AllocationId, next, req.ArticleCount)
	return nil, nil
}

// listWorkerFeeds hands the full feed catalog to a syncing worker and stamps
// the node's last_sync_at.
func (h *Handler) listWorkerFeeds(c *gin.Context) (interface{}, error) {
	ctx := c.Request.Context()
	nodeId := c.GetString(common.NodeId)
	logId := h.startSyncLog(ctx, nodeId, dbclient.SyncOpSyncFeeds, dbclient.SyncDirectionPull, "")

	feeds, err := h.dbClient.SelectFeeds(ctx, nil, []string{"created_at ASC"}, 0, 0)
	if err != nil {
		h.finishSyncLog(ctx, logId, dbclient.SyncLogStatusError, 0, err.Error())
		return nil, err
	}
	views := make([]*types.WorkerFeedView, 0, len(feeds))
	for _, feed := range feeds {
		views = append(views, &types.WorkerFeedView{
			Id:       feed.Id,
			FakerId:  feed.FakerId.String,
			MpName:   feed.MpName.String,
			MpCover:  feed.MpCover.String,
			MpIntro:  feed.MpIntro.String,
			Status:   feed.Status,
			SyncTime: feed.SyncTime,
		})
	}
	if err = h.dbClient.SetNodeLastSync(ctx, nodeId); err != nil {
		klog.ErrorS(err, "failed to stamp node last sync", "node", nodeId)
	}
	h.finishSyncLog(ctx, logId, dbclient.SyncLogStatusOk, len(views), "")
	return &types.ListWorkerFeedResponse{List: views, Total: len(views)}, nil
}

// getOwnedAllocation loads an allocation and checks that it is bound to the
// calling node. A foreign allocation reads as not found so the caller learns
// nothing about other nodes' work.
func (h *Handler) getOwnedAllocation(ctx context.Context, allocationId, nodeId string) (*dbclient.TaskAllocation, error) {
	allocation, err := h.dbClient.GetAllocationById(ctx, allocationId)
	if err != nil {
		return nil, err
	}
	if !allocation.NodeId.Valid || allocation.NodeId.String != nodeId {
		return nil, commonerrors.NewNotFound(fmt.Sprintf("allocation %s not found", allocationId))
	}
	return allocation, nil
}

func (h *Handler) startSyncLog(ctx context.Context, nodeId, operation, direction, allocationId string) string {
	logId := uuid.NewString()
	extra := ""
	if allocationId != "" {
		extra = string(jsonutils.MarshalSilently(map[string]string{"allocation_id": allocationId}))
	}
	err := h.dbClient.InsertSyncLog(ctx, &dbmodel.CascadeSyncLog{
		Id:        logId,
		NodeId:    nodeId,
		Operation: operation,
		Direction: direction,
		Status:    dbclient.SyncLogStatusRunning,
		ExtraData: extra,
		StartedAt: time.Now().UTC(),
	})
	if err != nil {
		klog.ErrorS(err, "failed to write sync log", "node", nodeId, "operation", operation)
		return ""
	}
	return logId
}

func (h *Handler) finishSyncLog(ctx context.Context, logId string, status, dataCount int, errorMessage string) {
	if logId == "" {
		return
	}
	if err := h.dbClient.CompleteSyncLog(ctx, logId, status, dataCount, errorMessage); err != nil {
		klog.ErrorS(err, "failed to finalize sync log", "id", logId)
	}
}

func countFailedResults(results []types.FeedResultView) (failed, total int) {
	for _, result := range results {
		total++
		if result.Status != "success" {
			failed++
		}
	}
	return failed, total
}
