/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"k8s.io/klog/v2"

	dbclient "github.com/YourCFP/we-mp-rss/common/pkg/database/client"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/dispatcher"
	"github.com/YourCFP/we-mp-rss/utils/pkg/backoff"
	"github.com/YourCFP/we-mp-rss/utils/pkg/timeutil"
)

// Manager owns one cron runner per enabled task. Every runner is built with
// SkipIfStillRunning so a firing that overlaps a dispatch still in flight is
// dropped, not queued.
type Manager struct {
	sync.Mutex
	dbClient   dbclient.Interface
	dispatcher *dispatcher.Dispatcher
	// all registered cron runners, the key is the task id
	allCronJobs map[string]*cronJob
	running     bool
}

type cronJob struct {
	job        *cron.Cron
	dispatcher *dispatcher.Dispatcher
	taskId     string
}

func NewManager(dbClient dbclient.Interface, d *dispatcher.Dispatcher) *Manager {
	return &Manager{
		dbClient:    dbClient,
		dispatcher:  d,
		allCronJobs: make(map[string]*cronJob),
	}
}

// Start loads every enabled task and registers its cron expression. Calling
// Start on a running manager is a no-op; the current job count is returned
// either way.
func (m *Manager) Start(ctx context.Context) (int, error) {
	m.Lock()
	defer m.Unlock()
	if m.running {
		return len(m.allCronJobs), nil
	}
	if err := m.registerAll(ctx); err != nil {
		return 0, err
	}
	m.running = true
	klog.Infof("scheduler started with %d cron job(s)", len(m.allCronJobs))
	return len(m.allCronJobs), nil
}

// Reload clears every registered job and re-registers from the current task
// table. The manager keeps running; a stopped manager stays stopped.
func (m *Manager) Reload(ctx context.Context) (int, error) {
	m.Lock()
	defer m.Unlock()
	if !m.running {
		return 0, nil
	}
	m.removeAll()
	if err := m.registerAll(ctx); err != nil {
		return 0, err
	}
	klog.Infof("scheduler reloaded with %d cron job(s)", len(m.allCronJobs))
	return len(m.allCronJobs), nil
}

// Stop halts every cron runner and clears the registrations.
func (m *Manager) Stop() {
	m.Lock()
	defer m.Unlock()
	if !m.running {
		return
	}
	m.removeAll()
	m.running = false
	klog.Infof("scheduler stopped")
}

// IsRunning reports whether the manager currently fires jobs.
func (m *Manager) IsRunning() bool {
	m.Lock()
	defer m.Unlock()
	return m.running
}

// JobCount returns the number of registered cron jobs.
func (m *Manager) JobCount() int {
	m.Lock()
	defer m.Unlock()
	return len(m.allCronJobs)
}

// registerAll is not thread-safe and must be called with the lock held.
func (m *Manager) registerAll(ctx context.Context) error {
	tasks, err := m.dbClient.SelectEnabledTasks(ctx)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		expression := task.CronExp.String
		schedule, err := timeutil.ParseCronString(expression)
		if err != nil {
			klog.ErrorS(err, "failed to parse cron expression, task skipped",
				"task", task.Id, "schedule", expression)
			continue
		}
		job := cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
		))
		// Bind the task id into a per-iteration value: the closure must not
		// capture the loop variable or every job would fire the last task.
		cj := &cronJob{
			job:        job,
			dispatcher: m.dispatcher,
			taskId:     task.Id,
		}
		job.Schedule(schedule, cron.FuncJob(cj.execute))
		job.Start()
		m.allCronJobs[task.Id] = cj
		klog.Infof("registered cron job for task %s, schedule: %s", task.Id, expression)
	}
	return nil
}

// removeAll is not thread-safe and must be called with the lock held.
func (m *Manager) removeAll() {
	for taskId, cj := range m.allCronJobs {
		cj.job.Stop()
		delete(m.allCronJobs, taskId)
	}
}

// execute runs one scheduled firing: a fresh dispatch run for this task
// followed by the reclaim sweep inside ExecuteDispatch.
func (cj *cronJob) execute() {
	const maxRetry = 10
	waitTime := 200 * time.Millisecond
	maxWaitTime := waitTime * maxRetry

	err := backoff.Retry(func() error {
		_, _, err := cj.dispatcher.ExecuteDispatch(context.Background(), cj.taskId)
		return err
	}, maxWaitTime, waitTime)
	if err != nil {
		klog.ErrorS(err, "failed to cron-dispatch", "task", cj.taskId)
	}
}
