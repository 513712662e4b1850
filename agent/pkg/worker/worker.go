/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"k8s.io/klog/v2"

	"github.com/YourCFP/we-mp-rss/agent/pkg/client"
	commonconfig "github.com/YourCFP/we-mp-rss/common/pkg/config"
	"github.com/YourCFP/we-mp-rss/utils/pkg/channel"
)

// Worker pulls task allocations from the coordinator and executes them. It
// runs one pull loop per configured concurrency slot, plus a heartbeat loop
// and a periodic feed catalog sync, all managed by tombs so Stop drains
// cleanly.
type Worker struct {
	client   client.Interface
	executor Executor

	concurrency       int
	pollInterval      time.Duration
	heartbeatInterval time.Duration
	syncInterval      time.Duration

	mutex sync.Mutex
	tombs []*channel.Tomb
}

func NewWorker(apiClient client.Interface, executor Executor) (*Worker, error) {
	if apiClient == nil {
		return nil, fmt.Errorf("the coordinator client is empty")
	}
	if executor == nil {
		return nil, fmt.Errorf("the executor is empty")
	}
	concurrency := commonconfig.GetMaxConcurrency()
	if concurrency < 1 {
		concurrency = 1
	}
	return &Worker{
		client:            apiClient,
		executor:          executor,
		concurrency:       concurrency,
		pollInterval:      time.Duration(commonconfig.GetPollIntervalSecond()) * time.Second,
		heartbeatInterval: time.Duration(commonconfig.GetHeartbeatIntervalSecond()) * time.Second,
		syncInterval:      time.Duration(commonconfig.GetSyncIntervalSecond()) * time.Second,
	}, nil
}

func (w *Worker) Start(ctx context.Context) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if len(w.tombs) > 0 {
		return fmt.Errorf("the worker has already been started")
	}

	heartbeatTomb := channel.NewTomb()
	go w.heartbeatLoop(heartbeatTomb)
	w.tombs = append(w.tombs, heartbeatTomb)

	syncTomb := channel.NewTomb()
	go w.syncLoop(syncTomb)
	w.tombs = append(w.tombs, syncTomb)

	for i := 0; i < w.concurrency; i++ {
		pullTomb := channel.NewTomb()
		go w.pullLoop(ctx, pullTomb, i)
		w.tombs = append(w.tombs, pullTomb)
	}
	klog.Infof("started worker with %d pull loop(s)", w.concurrency)
	return nil
}

// Stop signals every loop and waits for in-flight allocations to finish.
func (w *Worker) Stop() {
	w.mutex.Lock()
	tombs := w.tombs
	w.tombs = nil
	w.mutex.Unlock()

	for _, tomb := range tombs {
		tomb.Stop()
	}
	klog.Infof("the worker has been stopped")
}

func (w *Worker) heartbeatLoop(tomb *channel.Tomb) {
	defer tomb.Done()
	ticker := time.NewTicker(w.heartbeatInterval)
	defer ticker.Stop()
	w.beat()
	for {
		select {
		case <-tomb.Stopping():
			return
		case <-ticker.C:
			w.beat()
		}
	}
}

// beat reports liveness. Failures are logged and ignored; the coordinator
// classifies the node offline on its own once the window elapses.
func (w *Worker) beat() {
	if err := w.client.Heartbeat(); err != nil {
		klog.ErrorS(err, "failed to send heartbeat")
	}
}

func (w *Worker) syncLoop(tomb *channel.Tomb) {
	defer tomb.Done()
	ticker := time.NewTicker(w.syncInterval)
	defer ticker.Stop()
	w.syncFeeds()
	for {
		select {
		case <-tomb.Stopping():
			return
		case <-ticker.C:
			w.syncFeeds()
		}
	}
}

func (w *Worker) syncFeeds() {
	feeds, err := w.client.SyncFeeds()
	if err != nil {
		klog.ErrorS(err, "failed to sync the feed catalog")
		return
	}
	klog.Infof("synced %d feed(s) from the coordinator", len(feeds))
}

func (w *Worker) pullLoop(ctx context.Context, tomb *channel.Tomb, slot int) {
	defer tomb.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	w.pullOnce(ctx, slot)
	for {
		select {
		case <-tomb.Stopping():
			return
		case <-ticker.C:
			w.pullOnce(ctx, slot)
		}
	}
}

func (w *Worker) pullOnce(ctx context.Context, slot int) {
	pkg, err := w.client.ClaimTask()
	if err != nil {
		klog.ErrorS(err, "failed to claim a task", "slot", slot)
		return
	}
	if pkg == nil {
		return
	}
	klog.Infof("slot %d claimed allocation %s for task %s", slot, pkg.AllocationId, pkg.TaskId)
	w.process(ctx, pkg)
}

// process drives one allocation through its lifecycle. Any failure after the
// claim reports the allocation failed so the coordinator does not wait for
// the reclaim timeout.
func (w *Worker) process(ctx context.Context, pkg *client.TaskPackage) {
	if err := w.client.UpdateTaskStatus(pkg.AllocationId, client.StatusExecuting, ""); err != nil {
		klog.ErrorS(err, "failed to mark the allocation executing", "allocation", pkg.AllocationId)
		w.fail(pkg.AllocationId, err)
		return
	}

	articles, results, err := w.executor.Execute(ctx, pkg)
	if err != nil {
		klog.ErrorS(err, "failed to execute the allocation", "allocation", pkg.AllocationId)
		w.fail(pkg.AllocationId, err)
		return
	}

	if len(articles) > 0 {
		if err = w.client.UploadArticles(pkg.AllocationId, articles); err != nil {
			klog.ErrorS(err, "failed to upload articles", "allocation", pkg.AllocationId)
			w.fail(pkg.AllocationId, err)
			return
		}
	}

	articleCount := 0
	for _, result := range results {
		articleCount += result.ArticleCount
	}
	if err = w.client.ReportCompletion(pkg.AllocationId, pkg.TaskId, results, articleCount); err != nil {
		klog.ErrorS(err, "failed to report completion", "allocation", pkg.AllocationId)
		w.fail(pkg.AllocationId, err)
		return
	}
	klog.Infof("allocation %s completed with %d feed result(s)", pkg.AllocationId, len(results))
}

func (w *Worker) fail(allocationId string, cause error) {
	if err := w.client.UpdateTaskStatus(allocationId, client.StatusFailed, cause.Error()); err != nil {
		klog.ErrorS(err, "failed to report the allocation failure", "allocation", allocationId)
	}
}
