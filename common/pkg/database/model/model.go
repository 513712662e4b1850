/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package model

import (
	"time"
)

// CascadeNode is a member of the cascade topology: the coordinator itself
// (node_type 0) or a worker (node_type 1).
type CascadeNode struct {
	Id              string     `gorm:"column:id;primaryKey;size:255"`
	NodeType        int        `gorm:"column:node_type;not null;default:0"`
	Name            string     `gorm:"column:name;size:255;not null"`
	Description     string     `gorm:"column:description;type:text"`
	ApiUrl          string     `gorm:"column:api_url;size:500"`
	ApiKey          string     `gorm:"column:api_key;size:100;uniqueIndex:uk_cascade_node_api_key"`
	ApiSecretHash   string     `gorm:"column:api_secret_hash;size:64"`
	ParentId        *string    `gorm:"column:parent_id;size:255"`
	Status          int        `gorm:"column:status;default:0"`
	SyncConfig      string     `gorm:"column:sync_config;type:text"`
	LastSyncAt      *time.Time `gorm:"column:last_sync_at"`
	LastHeartbeatAt *time.Time `gorm:"column:last_heartbeat_at"`
	IsActive        bool       `gorm:"column:is_active;default:true"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (CascadeNode) TableName() string {
	return "cascade_nodes"
}

// CascadeTaskAllocation is one unit of dispatched work. The unique index on
// (task_id, schedule_run_id) makes dispatch idempotent within a run.
type CascadeTaskAllocation struct {
	Id              string     `gorm:"column:id;primaryKey;size:255"`
	TaskId          string     `gorm:"column:task_id;size:255;not null;index:idx_allocation_task;uniqueIndex:uk_allocation_task_run,priority:1"`
	TaskName        string     `gorm:"column:task_name;size:255"`
	CronExp         string     `gorm:"column:cron_exp;size:100"`
	NodeId          *string    `gorm:"column:node_id;size:255;index:idx_allocation_node"`
	FeedIds         string     `gorm:"column:feed_ids;type:text;not null"`
	Status          string     `gorm:"column:status;size:20;default:pending;index:idx_allocation_status_dispatched,priority:1"`
	ResultSummary   string     `gorm:"column:result_summary;type:text"`
	ErrorMessage    string     `gorm:"column:error_message;type:text"`
	ArticleCount    int        `gorm:"column:article_count;default:0"`
	NewArticleCount int        `gorm:"column:new_article_count;default:0"`
	ScheduleRunId   *string    `gorm:"column:schedule_run_id;size:255;index:idx_allocation_run;uniqueIndex:uk_allocation_task_run,priority:2"`
	DispatchedAt    time.Time  `gorm:"column:dispatched_at;index:idx_allocation_status_dispatched,priority:2"`
	ClaimedAt       *time.Time `gorm:"column:claimed_at"`
	StartedAt       *time.Time `gorm:"column:started_at"`
	CompletedAt     *time.Time `gorm:"column:completed_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (CascadeTaskAllocation) TableName() string {
	return "cascade_task_allocations"
}

// CascadeSyncLog records one pull or push interaction between a worker and
// the coordinator.
type CascadeSyncLog struct {
	Id           string     `gorm:"column:id;primaryKey;size:255"`
	NodeId       string     `gorm:"column:node_id;size:255;not null;index:idx_sync_log_node"`
	Operation    string     `gorm:"column:operation;size:50;not null"`
	Direction    string     `gorm:"column:direction;size:20;not null"`
	Status       int        `gorm:"column:status;default:0"`
	DataCount    int        `gorm:"column:data_count;default:0"`
	ErrorMessage string     `gorm:"column:error_message;type:text"`
	ExtraData    string     `gorm:"column:extra_data;type:text"`
	StartedAt    time.Time  `gorm:"column:started_at;autoCreateTime"`
	CompletedAt  *time.Time `gorm:"column:completed_at"`
}

func (CascadeSyncLog) TableName() string {
	return "cascade_sync_logs"
}

// Feed is a subscribed account whose articles the workers collect.
type Feed struct {
	Id         string    `gorm:"column:id;primaryKey;size:255"`
	FakerId    string    `gorm:"column:faker_id;size:255"`
	MpName     string    `gorm:"column:mp_name;size:255"`
	MpCover    string    `gorm:"column:mp_cover;size:500"`
	MpIntro    string    `gorm:"column:mp_intro;type:text"`
	Status     int       `gorm:"column:status;default:1"`
	SyncTime   int64     `gorm:"column:sync_time;default:0"`
	UpdateTime int64     `gorm:"column:update_time;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Feed) TableName() string {
	return "feeds"
}

// MessageTask is the schedulable unit: a cron expression plus an ordered
// feed list and the delivery settings workers need to run it.
type MessageTask struct {
	Id              string    `gorm:"column:id;primaryKey;size:255"`
	Name            string    `gorm:"column:name;size:255"`
	MessageType     int       `gorm:"column:message_type;default:0"`
	MessageTemplate string    `gorm:"column:message_template;type:text"`
	WebHookUrl      string    `gorm:"column:web_hook_url;size:500"`
	MpsId           string    `gorm:"column:mps_id;type:text"`
	CronExp         string    `gorm:"column:cron_exp;size:100"`
	Status          int       `gorm:"column:status;default:0"`
	Headers         string    `gorm:"column:headers;type:text"`
	Cookies         string    `gorm:"column:cookies;type:text"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (MessageTask) TableName() string {
	return "message_tasks"
}

// Article is one collected item; uploads insert with ON CONFLICT DO NOTHING
// so only genuinely new rows count.
type Article struct {
	Id          string    `gorm:"column:id;primaryKey;size:255"`
	MpId        string    `gorm:"column:mp_id;size:255;index:idx_article_mp"`
	Title       string    `gorm:"column:title;size:500"`
	PicUrl      string    `gorm:"column:pic_url;size:500"`
	Url         string    `gorm:"column:url;size:500"`
	Content     string    `gorm:"column:content;type:text"`
	Description string    `gorm:"column:description;type:text"`
	Status      int       `gorm:"column:status;default:1"`
	PublishTime int64     `gorm:"column:publish_time;default:0;index:idx_article_publish"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Article) TableName() string {
	return "articles"
}

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&CascadeNode{},
		&CascadeTaskAllocation{},
		&CascadeSyncLog{},
		&Feed{},
		&MessageTask{},
		&Article{},
	}
}
