/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package client

// Interface is the coordinator API surface the worker loop depends on.
type Interface interface {
	Heartbeat() error
	ClaimTask() (*TaskPackage, error)
	UpdateTaskStatus(allocationId, status, errorMessage string) error
	UploadArticles(allocationId string, articles []Article) error
	ReportCompletion(allocationId, taskId string, results []FeedResult, articleCount int) error
	SyncFeeds() ([]WorkerFeed, error)
}
