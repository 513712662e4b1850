/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package types

type AllocationView struct {
	Id              string   `json:"id"`
	TaskId          string   `json:"task_id"`
	TaskName        string   `json:"task_name,omitempty"`
	CronExp         string   `json:"cron_exp,omitempty"`
	NodeId          string   `json:"node_id,omitempty"`
	NodeName        string   `json:"node_name,omitempty"`
	FeedIds         []string `json:"feed_ids"`
	Status          string   `json:"status"`
	ResultSummary   string   `json:"result_summary,omitempty"`
	ErrorMessage    string   `json:"error_message,omitempty"`
	ArticleCount    int      `json:"article_count"`
	NewArticleCount int      `json:"new_article_count"`
	ScheduleRunId   string   `json:"schedule_run_id,omitempty"`
	DispatchedAt    string   `json:"dispatched_at,omitempty"`
	ClaimedAt       string   `json:"claimed_at,omitempty"`
	StartedAt       string   `json:"started_at,omitempty"`
	CompletedAt     string   `json:"completed_at,omitempty"`
}

type ListAllocationResponse struct {
	List  []*AllocationView `json:"list"`
	Total int               `json:"total"`
}

// AllocationStatsView is the pending-allocations block: queue counters plus
// the live worker count.
type AllocationStatsView struct {
	Pending        int `json:"pending"`
	InFlight       int `json:"in_flight"`
	CompletedToday int `json:"completed_today"`
	FailedToday    int `json:"failed_today"`
	OnlineNodes    int `json:"online_nodes"`
}

type DispatchResponse struct {
	Dispatched    int    `json:"dispatched"`
	ScheduleRunId string `json:"schedule_run_id"`
}

type SchedulerStateResponse struct {
	Running bool `json:"running"`
	Jobs    int  `json:"jobs"`
}

// FeedStatusView is one row of the per-feed freshness report.
type FeedStatusView struct {
	Id             string `json:"id"`
	MpName         string `json:"mp_name,omitempty"`
	Status         int    `json:"status"`
	SyncTime       int64  `json:"sync_time"`
	LastAllocation string `json:"last_allocation_id,omitempty"`
	LastStatus     string `json:"last_status,omitempty"`
	LastDispatched string `json:"last_dispatched_at,omitempty"`
	LastError      string `json:"last_error,omitempty"`
}

type SyncLogView struct {
	Id           string `json:"id"`
	NodeId       string `json:"node_id"`
	Operation    string `json:"operation"`
	Direction    string `json:"direction"`
	Status       int    `json:"status"`
	DataCount    int    `json:"data_count"`
	ErrorMessage string `json:"error_message,omitempty"`
	ExtraData    string `json:"extra_data,omitempty"`
	StartedAt    string `json:"started_at,omitempty"`
	CompletedAt  string `json:"completed_at,omitempty"`
}

type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type ListSyncLogResponse struct {
	List  []*SyncLogView `json:"list"`
	Page  Page           `json:"page"`
	Total int64          `json:"total"`
}
