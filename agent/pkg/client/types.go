/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package client

// FeedInfo is one feed snapshot inside a claimed task package.
type FeedInfo struct {
	Id      string `json:"id"`
	FakerId string `json:"faker_id"`
	MpName  string `json:"mp_name"`
	MpCover string `json:"mp_cover"`
	MpIntro string `json:"mp_intro"`
	Status  int    `json:"status"`
}

// TaskPackage is the claim-task response: everything needed to execute one
// allocation.
type TaskPackage struct {
	AllocationId    string     `json:"allocation_id"`
	TaskId          string     `json:"task_id"`
	TaskName        string     `json:"task_name"`
	MessageType     int        `json:"message_type"`
	MessageTemplate string     `json:"message_template"`
	WebHookUrl      string     `json:"web_hook_url"`
	CronExp         string     `json:"cron_exp"`
	Headers         string     `json:"headers"`
	Cookies         string     `json:"cookies"`
	Feeds           []FeedInfo `json:"feeds"`
	DispatchedAt    string     `json:"dispatched_at"`
}

// Article is one collected record, uploaded verbatim.
type Article struct {
	Id          string `json:"id"`
	MpId        string `json:"mp_id"`
	Title       string `json:"title,omitempty"`
	PicUrl      string `json:"pic_url,omitempty"`
	Url         string `json:"url,omitempty"`
	Content     string `json:"content,omitempty"`
	Description string `json:"description,omitempty"`
	Status      int    `json:"status,omitempty"`
	PublishTime int64  `json:"publish_time,omitempty"`
}

// FeedResult is the per-feed outcome reported on completion.
type FeedResult struct {
	MpId            string `json:"mp_id"`
	MpName          string `json:"mp_name,omitempty"`
	Status          string `json:"status"`
	ArticleCount    int    `json:"article_count"`
	NewArticleCount int    `json:"new_article_count,omitempty"`
	Error           string `json:"error,omitempty"`
}

const (
	FeedResultSuccess = "success"
	FeedResultFailed  = "failed"
)

// WorkerFeed is one catalog entry from the coordinator's feed list.
type WorkerFeed struct {
	Id       string `json:"id"`
	FakerId  string `json:"faker_id,omitempty"`
	MpName   string `json:"mp_name,omitempty"`
	MpCover  string `json:"mp_cover,omitempty"`
	MpIntro  string `json:"mp_intro,omitempty"`
	Status   int    `json:"status"`
	SyncTime int64  `json:"sync_time"`
}

// AllocationStatus mirrors the coordinator's allocation states a worker may
// report.
const (
	StatusExecuting = "executing"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)
