/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package cascade_handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/YourCFP/we-mp-rss/common/pkg/common"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/authority"
)

func InitCascadeRouters(e *gin.Engine, h *Handler) {
	// Operator surface: bearer-token authenticated administration.
	operator := e.Group(common.WeRssRouterRootPath, authority.Authorize(), authority.Prepare())
	{
		operator.POST("cascade/nodes", h.CreateNode)
		operator.GET("cascade/nodes", h.ListNode)
		operator.GET(fmt.Sprintf("cascade/nodes/:%s", common.Id), h.GetNode)
		operator.PUT(fmt.Sprintf("cascade/nodes/:%s", common.Id), h.UpdateNode)
		operator.DELETE(fmt.Sprintf("cascade/nodes/:%s", common.Id), h.DeleteNode)
		operator.POST(fmt.Sprintf("cascade/nodes/:%s/credentials", common.Id), h.IssueCredentials)
		operator.POST(fmt.Sprintf("cascade/nodes/:%s/test-connection", common.Id), h.TestConnection)

		operator.POST("cascade/dispatch-task", h.DispatchTask)
		operator.GET("cascade/allocations", h.ListAllocations)
		operator.GET("cascade/pending-allocations", h.GetAllocationStats)
		operator.POST("cascade/start-scheduler", h.StartScheduler)
		operator.POST("cascade/stop-scheduler", h.StopScheduler)
		operator.POST("cascade/reload-scheduler", h.ReloadScheduler)
		operator.GET("cascade/feed-status", h.GetFeedStatus)
		operator.GET("cascade/sync-logs", h.ListSyncLogs)
	}

	// Worker surface: AK-SK authenticated, node identity bound by middleware.
	worker := e.Group(common.WeRssRouterRootPath, authority.AuthorizeNode())
	{
		worker.POST("cascade/heartbeat", h.Heartbeat)
		worker.POST("cascade/claim-task", h.ClaimTask)
		worker.PUT("cascade/task-status", h.UpdateTaskStatus)
		worker.POST("cascade/upload-articles", h.UploadArticles)
		worker.POST("cascade/report-completion", h.ReportCompletion)
		worker.GET("cascade/feeds", h.ListWorkerFeeds)
	}
}
