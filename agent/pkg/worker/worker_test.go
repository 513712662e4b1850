/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package worker

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/YourCFP/we-mp-rss/agent/pkg/client"
)

// fakeClient records the coordinator calls the worker makes.
type fakeClient struct {
	pkg       *client.TaskPackage
	claimErr  error
	statusErr error
	uploadErr error
	reportErr error

	statuses []string
	errors   []string
	uploaded []client.Article
	reported []client.FeedResult
}

func (f *fakeClient) Heartbeat() error { return nil }

func (f *fakeClient) ClaimTask() (*client.TaskPackage, error) {
	return f.pkg, f.claimErr
}

func (f *fakeClient) UpdateTaskStatus(_, status, errorMessage string) error {
	f.statuses = append(f.statuses, status)
	f.errors = append(f.errors, errorMessage)
	return f.statusErr
}

func (f *fakeClient) UploadArticles(_ string, articles []client.Article) error {
	f.uploaded = append(f.uploaded, articles...)
	return f.uploadErr
}

func (f *fakeClient) ReportCompletion(_, _ string, results []client.FeedResult, _ int) error {
	f.reported = append(f.reported, results...)
	return f.reportErr
}

func (f *fakeClient) SyncFeeds() ([]client.WorkerFeed, error) { return nil, nil }

type fakeExecutor struct {
	articles []client.Article
	results  []client.FeedResult
	err      error
}

func (f *fakeExecutor) Execute(_ context.Context, _ *client.TaskPackage) ([]client.Article, []client.FeedResult, error) {
	return f.articles, f.results, f.err
}

func testPackage() *client.TaskPackage {
	return &client.TaskPackage{
		AllocationId: "a1",
		TaskId:       "t1",
		Feeds:        []client.FeedInfo{{Id: "f1"}},
	}
}

func newWorkerForTest(t *testing.T, api client.Interface, exec Executor) *Worker {
	w, err := NewWorker(api, exec)
	assert.NoError(t, err)
	return w
}

func TestProcessHappyPath(t *testing.T) {
	api := &fakeClient{}
	exec := &fakeExecutor{
		articles: []client.Article{{Id: "art1", MpId: "f1"}},
		results:  []client.FeedResult{{MpId: "f1", Status: client.FeedResultSuccess, ArticleCount: 1}},
	}
	w := newWorkerForTest(t, api, exec)

	w.process(context.Background(), testPackage())
	assert.Equal(t, []string{client.StatusExecuting}, api.statuses)
	assert.Len(t, api.uploaded, 1)
	assert.Len(t, api.reported, 1)
}

func TestProcessExecutionFailure(t *testing.T) {
	api := &fakeClient{}
	exec := &fakeExecutor{err: fmt.Errorf("browser crashed")}
	w := newWorkerForTest(t, api, exec)

	w.process(context.Background(), testPackage())
	// executing first, then the failure report.
	assert.Equal(t, []string{client.StatusExecuting, client.StatusFailed}, api.statuses)
	assert.Equal(t, "browser crashed", api.errors[1])
	assert.Empty(t, api.uploaded)
	assert.Empty(t, api.reported)
}

func TestProcessUploadFailureReportsFailed(t *testing.T) {
	api := &fakeClient{uploadErr: fmt.Errorf("coordinator unreachable")}
	exec := &fakeExecutor{
		articles: []client.Article{{Id: "art1", MpId: "f1"}},
		results:  []client.FeedResult{{MpId: "f1", Status: client.FeedResultSuccess}},
	}
	w := newWorkerForTest(t, api, exec)

	w.process(context.Background(), testPackage())
	assert.Equal(t, client.StatusFailed, api.statuses[len(api.statuses)-1])
	assert.Empty(t, api.reported)
}

// No articles is a legal outcome; the completion report still goes out with
// the per-feed results.
func TestProcessNoArticles(t *testing.T) {
	api := &fakeClient{}
	exec := &fakeExecutor{
		results: []client.FeedResult{{MpId: "f1", Status: client.FeedResultFailed, Error: "fetch error"}},
	}
	w := newWorkerForTest(t, api, exec)

	w.process(context.Background(), testPackage())
	assert.Empty(t, api.uploaded)
	assert.Len(t, api.reported, 1)
}

func TestPullOnceEmptyQueue(t *testing.T) {
	api := &fakeClient{}
	w := newWorkerForTest(t, api, &fakeExecutor{})

	w.pullOnce(context.Background(), 0)
	assert.Empty(t, api.statuses)
}

func TestPullOnceClaimError(t *testing.T) {
	api := &fakeClient{claimErr: fmt.Errorf("network down")}
	w := newWorkerForTest(t, api, &fakeExecutor{})

	w.pullOnce(context.Background(), 0)
	assert.Empty(t, api.statuses)
}

func TestStartStop(t *testing.T) {
	api := &fakeClient{}
	w := newWorkerForTest(t, api, &fakeExecutor{})

	assert.NoError(t, w.Start(context.Background()))
	assert.Error(t, w.Start(context.Background()))
	w.Stop()
	// Stop again is harmless.
	w.Stop()
}

func TestNewWorkerValidation(t *testing.T) {
	_, err := NewWorker(nil, &fakeExecutor{})
	assert.Error(t, err)
	_, err = NewWorker(&fakeClient{}, nil)
	assert.Error(t, err)
}
