/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package types

type HeartbeatResponse struct {
	Status string `json:"status"`
}

type TaskStatusRequest struct {
	AllocationId string `json:"allocation_id"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ArticleView is one uploaded record; the coordinator stores it verbatim.
type ArticleView struct {
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

type UploadArticlesRequest struct {
	AllocationId string        `json:"allocation_id"`
	Articles     []ArticleView `json:"articles"`
}

type UploadArticlesResponse struct {
	Received int   `json:"received"`
	New      int64 `json:"new"`
}

// FeedResultView is the per-feed outcome inside a completion report.
type FeedResultView struct {
	MpId            string `json:"mp_id"`
	MpName          string `json:"mp_name,omitempty"`
	Status          string `json:"status"`
	ArticleCount    int    `json:"article_count"`
	NewArticleCount int    `json:"new_article_count,omitempty"`
	Error           string `json:"error,omitempty"`
}

type ReportCompletionRequest struct {
	AllocationId string           `json:"allocation_id"`
	TaskId       string           `json:"task_id"`
	Results      []FeedResultView `json:"results"`
	ArticleCount int              `json:"article_count"`
}

// WorkerFeedView is the catalog entry a worker pulls during a full sync.
type WorkerFeedView struct {
	Id       string `json:"id"`
	FakerId  string `json:"faker_id,omitempty"`
	MpName   string `json:"mp_name,omitempty"`
	MpCover  string `json:"mp_cover,omitempty"`
	MpIntro  string `json:"mp_intro,omitempty"`
	Status   int    `json:"status"`
	SyncTime int64  `json:"sync_time"`
}

type ListWorkerFeedResponse struct {
	List  []*WorkerFeedView `json:"list"`
	Total int               `json:"total"`
}
