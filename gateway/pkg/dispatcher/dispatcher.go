/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"k8s.io/klog/v2"

	commonconfig "github.com/YourCFP/we-mp-rss/common/pkg/config"
	dbclient "github.com/YourCFP/we-mp-rss/common/pkg/database/client"
	dbmodel "github.com/YourCFP/we-mp-rss/common/pkg/database/model"
	dbutils "github.com/YourCFP/we-mp-rss/common/pkg/database/utils"
	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
	"github.com/YourCFP/we-mp-rss/common/pkg/notification"
	notificationmodel "github.com/YourCFP/we-mp-rss/common/pkg/notification/model"
	"github.com/YourCFP/we-mp-rss/utils/pkg/backoff"
	jsonutils "github.com/YourCFP/we-mp-rss/utils/pkg/json"
)

const (
	// TaskMissingMessage is written on an allocation whose task disappeared
	// between dispatch and claim.
	TaskMissingMessage = "task missing"

	insertMaxWait  = 2 * time.Second
	insertInterval = 200 * time.Millisecond

	// reclaimClockGrace absorbs skew between the app clock and the database
	// clock that stamps completed_at during a sweep.
	reclaimClockGrace = 5 * time.Second
)

// Dispatcher materializes allocations for schedulable tasks, hands them to
// claiming workers and sweeps the ones that never finished.
type Dispatcher struct {
	dbClient dbclient.Interface
}

func NewDispatcher(dbClient dbclient.Interface) *Dispatcher {
	return &Dispatcher{dbClient: dbClient}
}

// FeedInfo is the feed snapshot a worker receives inside a task package.
type FeedInfo struct {
	Id      string `json:"id"`
	FakerId string `json:"faker_id"`
	MpName  string `json:"mp_name"`
	MpCover string `json:"mp_cover"`
	MpIntro string `json:"mp_intro"`
	Status  int    `json:"status"`
}

// TaskPackage is the claim-task response body: everything a worker needs to
// execute one allocation.
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

// DispatchTask creates one pending allocation for the task, carrying the full
// ordered feed list. Disabled tasks and tasks without feeds produce nothing.
// A duplicate (task, run) insert means the run already dispatched this task;
// that is reported as no new allocation, not as a failure.
func (d *Dispatcher) DispatchTask(ctx context.Context, task *dbclient.MessageTask, runId string) (*dbclient.TaskAllocation, error) {
	if task == nil {
		return nil, commonerrors.NewBadRequest("the task is empty")
	}
	if task.Status != dbclient.TaskStatusEnabled {
		klog.V(2).Infof("task %s is disabled, skip dispatch", task.Id)
		return nil, nil
	}
	feedIds, err := ParseFeedIds(task.MpsId.String)
	if err != nil {
		return nil, commonerrors.NewBadRequest(
			fmt.Sprintf("task %s carries an invalid feed list: %v", task.Id, err))
	}
	if len(feedIds) == 0 {
		klog.V(2).Infof("task %s has no feeds, skip dispatch", task.Id)
		return nil, nil
	}

	feedIdsJson, err := json.Marshal(feedIds)
	if err != nil {
		return nil, commonerrors.NewInternalError(err.Error())
	}
	allocation := &dbclient.TaskAllocation{
		Id:            uuid.NewString(),
		TaskId:        task.Id,
		TaskName:      task.Name,
		CronExp:       task.CronExp,
		FeedIds:       string(feedIdsJson),
		Status:        string(dbclient.AllocationStatusPending),
		ScheduleRunId: dbutils.NullString(runId),
		DispatchedAt:  dbutils.NullTime(time.Now().UTC()),
	}

	err = backoff.Retry(func() error {
		insertErr := d.dbClient.InsertAllocation(ctx, allocation)
		if commonerrors.IsAlreadyExist(insertErr) || commonerrors.IsBadRequest(insertErr) {
			return backoff.Permanent(insertErr)
		}
		return insertErr
	}, insertMaxWait, insertInterval)
	if commonerrors.IsAlreadyExist(err) {
		klog.Infof("task %s already dispatched in run %s", task.Id, runId)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	klog.Infof("dispatched task %s as allocation %s (run %s, %d feed(s))",
		task.Id, allocation.Id, runId, len(feedIds))
	return allocation, nil
}

// ExecuteDispatch fires one dispatch batch: every enabled task, or just the
// given one, in id order under a fresh schedule run id. The reclaim sweep
// runs after the batch so stuck rows from earlier runs are cleaned up even
// without a background ticker. Returns the number of allocations created and
// the run id.
func (d *Dispatcher) ExecuteDispatch(ctx context.Context, taskId string) (int, string, error) {
	runId := uuid.NewString()
	var tasks []*dbclient.MessageTask
	var err error
	if taskId != "" {
		task, getErr := d.dbClient.GetMessageTaskById(ctx, taskId)
		if getErr != nil {
			return 0, runId, getErr
		}
		tasks = []*dbclient.MessageTask{task}
	} else {
		tasks, err = d.dbClient.SelectEnabledTasks(ctx)
		if err != nil {
			return 0, runId, err
		}
	}

	dispatched := 0
	var errs []string
	for _, task := range tasks {
		allocation, dispatchErr := d.DispatchTask(ctx, task, runId)
		if dispatchErr != nil {
			klog.ErrorS(dispatchErr, "failed to dispatch task", "task", task.Id, "run", runId)
			errs = append(errs, fmt.Sprintf("%s: %v", task.Id, dispatchErr))
			continue
		}
		if allocation != nil {
			dispatched++
		}
	}

	if _, err = d.Reclaim(ctx); err != nil {
		klog.ErrorS(err, "failed to reclaim allocations after dispatch", "run", runId)
	}
	if len(errs) > 0 {
		return dispatched, runId, commonerrors.NewInternalError(
			fmt.Sprintf("dispatch run %s finished with errors: %s", runId, strings.Join(errs, "; ")))
	}
	klog.Infof("dispatch run %s created %d allocation(s)", runId, dispatched)
	return dispatched, runId, nil
}

// ClaimForNode atomically claims the oldest pending allocation for the node
// and enriches it into a task package. A nil package with nil error means no
// work is available. When the claimed allocation's task has been deleted or
// disabled in the meantime, the allocation is failed with TaskMissingMessage
// and the node gets no work; the next call picks up the following row.
func (d *Dispatcher) ClaimForNode(ctx context.Context, nodeId string) (*TaskPackage, error) {
	logId := d.startSyncLog(ctx, nodeId, dbclient.SyncOpClaimTask)

	pkg, err := d.claimAndEnrich(ctx, nodeId)
	if err != nil {
		d.finishSyncLog(ctx, logId, dbclient.SyncLogStatusError, 0, err.Error())
		return nil, err
	}
	count := 0
	if pkg != nil {
		count = 1
	}
	d.finishSyncLog(ctx, logId, dbclient.SyncLogStatusOk, count, "")
	return pkg, nil
}

func (d *Dispatcher) claimAndEnrich(ctx context.Context, nodeId string) (*TaskPackage, error) {
	allocation, err := d.dbClient.ClaimAllocation(ctx, nodeId)
	if err != nil {
		return nil, err
	}
	if allocation == nil {
		return nil, nil
	}

	task, err := d.dbClient.GetMessageTaskById(ctx, allocation.TaskId)
	if err != nil && !commonerrors.IsNotFound(err) {
		return nil, err
	}
	if err != nil || task.Status != dbclient.TaskStatusEnabled {
		// The task vanished between dispatch and claim; the claim is rolled
		// back into a terminal failure so the row is not retried forever.
		klog.Warningf("allocation %s references missing task %s, marking failed",
			allocation.Id, allocation.TaskId)
		if failErr := d.dbClient.UpdateAllocationStatus(ctx, allocation.Id,
			dbclient.AllocationStatusFailed,
			&dbclient.AllocationUpdate{ErrorMessage: TaskMissingMessage}); failErr != nil {
			klog.ErrorS(failErr, "failed to fail orphaned allocation", "allocation", allocation.Id)
		}
		return nil, nil
	}

	feedIds, err := ParseFeedIds(allocation.FeedIds)
	if err != nil {
		return nil, commonerrors.NewInternalError(
			fmt.Sprintf("allocation %s carries an invalid feed snapshot: %v", allocation.Id, err))
	}
	feeds, err := d.dbClient.GetFeedsByIds(ctx, feedIds)
	if err != nil {
		return nil, err
	}

	pkg := &TaskPackage{
		AllocationId:    allocation.Id,
		TaskId:          task.Id,
		TaskName:        task.Name.String,
		MessageType:     task.MessageType,
		MessageTemplate: task.MessageTemplate.String,
		WebHookUrl:      task.WebHookUrl.String,
		CronExp:         task.CronExp.String,
		Headers:         task.Headers.String,
		Cookies:         task.Cookies.String,
		Feeds:           make([]FeedInfo, 0, len(feeds)),
		DispatchedAt:    dbutils.ParseNullTime(allocation.DispatchedAt).Format(time.RFC3339),
	}
	for _, feed := range feeds {
		pkg.Feeds = append(pkg.Feeds, FeedInfo{
			Id:      feed.Id,
			FakerId: feed.FakerId.String,
			MpName:  feed.MpName.String,
			MpCover: feed.MpCover.String,
			MpIntro: feed.MpIntro.String,
			Status:  feed.Status,
		})
	}
	klog.Infof("node %s claimed allocation %s (task %s)", nodeId, allocation.Id, task.Id)
	return pkg, nil
}

// Reclaim times out every non-terminal allocation older than the configured
// threshold and raises a notification when anything was swept.
func (d *Dispatcher) Reclaim(ctx context.Context) (int64, error) {
	minutes := commonconfig.GetReclaimAfterMinute()
	cutoff := time.Now().UTC().Add(-time.Duration(minutes) * time.Minute)
	message := fmt.Sprintf("timeout (>%d minutes)", minutes)

	// The sweep stamps completed_at with the database clock; the grace keeps
	// a slightly-behind server clock from hiding this sweep's rows.
	sweepStart := time.Now().UTC().Add(-reclaimClockGrace)
	swept, err := d.dbClient.ReclaimAllocations(ctx, cutoff, message)
	if err != nil {
		return 0, err
	}
	if swept > 0 {
		d.notifyTimeout(ctx, swept, cutoff, sweepStart)
	}
	return swept, nil
}

func (d *Dispatcher) notifyTimeout(ctx context.Context, swept int64, cutoff, sweepStart time.Time) {
	mgr := notification.GetNotificationManager()
	if mgr == nil {
		return
	}
	names, err := d.sweptTaskNames(ctx, sweepStart)
	if err != nil {
		klog.ErrorS(err, "failed to collect swept task names")
	}
	data := map[string]interface{}{
		"swept_count": int(swept),
		"cutoff":      cutoff.Format(time.RFC3339),
		"task_names":  names,
	}
	if err := mgr.SubmitNotification(ctx, notificationmodel.TopicAllocationTimeout, data); err != nil {
		klog.ErrorS(err, "failed to submit allocation timeout notification")
	}
}

// sweptTaskNames lists the distinct task names among the rows this sweep
// marked, for the operator email. Filtering on completed_at keeps rows timed
// out by earlier sweeps off the list.
func (d *Dispatcher) sweptTaskNames(ctx context.Context, sweepStart time.Time) ([]string, error) {
	rows, err := d.dbClient.SelectAllocations(ctx, sqrl.And{
		sqrl.Eq{"status": string(dbclient.AllocationStatusTimeout)},
		sqrl.GtOrEq{"completed_at": sweepStart},
	}, []string{"completed_at DESC"}, 20, 0)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		name := row.TaskName.String
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// startSyncLog writes the in-progress audit row before the operation runs, so
// a crash mid-claim still leaves a trace. Failures only cost the audit trail.
func (d *Dispatcher) startSyncLog(ctx context.Context, nodeId, operation string) string {
	logId := uuid.NewString()
	err := d.dbClient.InsertSyncLog(ctx, &dbmodel.CascadeSyncLog{
		Id:        logId,
		NodeId:    nodeId,
		Operation: operation,
		Direction: dbclient.SyncDirectionPull,
		Status:    dbclient.SyncLogStatusRunning,
		StartedAt: time.Now().UTC(),
	})
	if err != nil {
		klog.ErrorS(err, "failed to write sync log", "node", nodeId, "operation", operation)
		return ""
	}
	return logId
}

func (d *Dispatcher) finishSyncLog(ctx context.Context, logId string, status, dataCount int, errorMessage string) {
	if logId == "" {
		return
	}
	if err := d.dbClient.CompleteSyncLog(ctx, logId, status, dataCount, errorMessage); err != nil {
		klog.ErrorS(err, "failed to finalize sync log", "id", logId)
	}
}

// ParseFeedIds decodes the JSON feed id snapshot stored on tasks and
// allocations. An empty string decodes to an empty list.
func ParseFeedIds(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var ids []string
	if err := jsonutils.UnmarshalWithCheck([]byte(raw), &ids); err != nil {
		return nil, err
	}
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			result = append(result, id)
		}
	}
	return result, nil
}
