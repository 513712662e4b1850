/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"github.com/lib/pq"
)

const (
	DESC = "desc"
	ASC  = "asc"
)

const (
	NodeTypeCoordinator = 0
	NodeTypeWorker      = 1

	NodeStatusOffline  = 0
	NodeStatusOnline   = 1
	NodeStatusDisabled = 2
)

// AllocationStatus is the lifecycle state of a task allocation.
type AllocationStatus string

const (
	AllocationStatusPending   AllocationStatus = "pending"
	AllocationStatusClaimed   AllocationStatus = "claimed"
	AllocationStatusExecuting AllocationStatus = "executing"
	AllocationStatusCompleted AllocationStatus = "completed"
	AllocationStatusFailed    AllocationStatus = "failed"
	AllocationStatusTimeout   AllocationStatus = "timeout"
)

const (
	SyncDirectionPull = "pull"
	SyncDirectionPush = "push"

	SyncLogStatusRunning = 0
	SyncLogStatusOk      = 1
	SyncLogStatusError   = 2

	SyncOpClaimTask      = "claim_task"
	SyncOpSyncFeeds      = "sync_feeds"
	SyncOpReportResult   = "report_result"
	SyncOpUploadArticles = "upload_articles"
)

const (
	TaskStatusEnabled  = 0
	TaskStatusDisabled = 1
)

type CascadeNode struct {
	Id              string         `db:"id"`
	NodeType        int            `db:"node_type"`
	Name            string         `db:"name"`
	Description     sql.NullString `db:"description"`
	ApiUrl          sql.NullString `db:"api_url"`
	ApiKey          sql.NullString `db:"api_key"`
	ApiSecretHash   sql.NullString `db:"api_secret_hash"`
	ParentId        sql.NullString `db:"parent_id"`
	Status          int            `db:"status"`
	SyncConfig      sql.NullString `db:"sync_config"`
	LastSyncAt      pq.NullTime    `db:"last_sync_at"`
	LastHeartbeatAt pq.NullTime    `db:"last_heartbeat_at"`
	IsActive        bool           `db:"is_active"`
	CreatedAt       pq.NullTime    `db:"created_at"`
	UpdatedAt       pq.NullTime    `db:"updated_at"`
}

// GetCascadeNodeFieldTags returns the CascadeNodeFieldTags value.
func GetCascadeNodeFieldTags() map[string]string {
	n := CascadeNode{}
	return getFieldTags(n)
}

type TaskAllocation struct {
	Id              string         `db:"id"`
	TaskId          string         `db:"task_id"`
	TaskName        sql.NullString `db:"task_name"`
	CronExp         sql.NullString `db:"cron_exp"`
	NodeId          sql.NullString `db:"node_id"`
	FeedIds         string         `db:"feed_ids"`
	Status          string         `db:"status"`
	ResultSummary   sql.NullString `db:"result_summary"`
	ErrorMessage    sql.NullString `db:"error_message"`
	ArticleCount    int            `db:"article_count"`
	NewArticleCount int            `db:"new_article_count"`
	ScheduleRunId   sql.NullString `db:"schedule_run_id"`
	DispatchedAt    pq.NullTime    `db:"dispatched_at"`
	ClaimedAt       pq.NullTime    `db:"claimed_at"`
	StartedAt       pq.NullTime    `db:"started_at"`
	CompletedAt     pq.NullTime    `db:"completed_at"`
	UpdatedAt       pq.NullTime    `db:"updated_at"`
}

// GetTaskAllocationFieldTags returns the TaskAllocationFieldTags value.
func GetTaskAllocationFieldTags() map[string]string {
	a := TaskAllocation{}
	return getFieldTags(a)
}

type Feed struct {
	Id         string         `db:"id"`
	FakerId    sql.NullString `db:"faker_id"`
	MpName     sql.NullString `db:"mp_name"`
	MpCover    sql.NullString `db:"mp_cover"`
	MpIntro    sql.NullString `db:"mp_intro"`
	Status     int            `db:"status"`
	SyncTime   int64          `db:"sync_time"`
	UpdateTime int64          `db:"update_time"`
	CreatedAt  pq.NullTime    `db:"created_at"`
	UpdatedAt  pq.NullTime    `db:"updated_at"`
}

// GetFeedFieldTags returns the FeedFieldTags value.
func GetFeedFieldTags() map[string]string {
	f := Feed{}
	return getFieldTags(f)
}

type MessageTask struct {
	Id              string         `db:"id"`
	Name            sql.NullString `db:"name"`
	MessageType     int            `db:"message_type"`
	MessageTemplate sql.NullString `db:"message_template"`
	WebHookUrl      sql.NullString `db:"web_hook_url"`
	MpsId           sql.NullString `db:"mps_id"`
	CronExp         sql.NullString `db:"cron_exp"`
	Status          int            `db:"status"`
	Headers         sql.NullString `db:"headers"`
	Cookies         sql.NullString `db:"cookies"`
	CreatedAt       pq.NullTime    `db:"created_at"`
	UpdatedAt       pq.NullTime    `db:"updated_at"`
}

// GetMessageTaskFieldTags returns the MessageTaskFieldTags value.
func GetMessageTaskFieldTags() map[string]string {
	t := MessageTask{}
	return getFieldTags(t)
}

// getFieldTags retrieves FieldTags for internal use.
func getFieldTags(obj interface{}) map[string]string {
	result := make(map[string]string)
	t := reflect.TypeOf(obj)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		result[strings.ToLower(field.Name)] = field.Tag.Get("db")
	}
	return result
}

// generateCommand generates SQL command string using reflection
// Iterates through struct fields and builds column and value lists
// Skips fields with specified ignoreTag
// Returns formatted SQL command with columns and values
func generateCommand(obj interface{}, format, ignoreTag string) string {
	t := reflect.TypeOf(obj)
	columns := make([]string, 0, t.NumField())
	values := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("db")
		if tag == ignoreTag {
			continue
		}
		columns = append(columns, tag)
		values = append(values, fmt.Sprintf(":%s", tag))
	}
	cmd := fmt.Sprintf(format, strings.Join(columns, ", "), strings.Join(values, ", "))
	return cmd
}

// GetFieldTag returns the FieldTag value.
func GetFieldTag(tags map[string]string, name string) string {
	name = strings.ToLower(name)
	return tags[name]
}
