/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeCoordinator serves the cascade API with canned envelopes and records
// what it saw.
type fakeCoordinator struct {
	server     *httptest.Server
	lastAuth   string
	lastMethod string
	lastPath   string
	lastBody   []byte

	status int
	reply  string
}

func newFakeCoordinator(t *testing.T) *fakeCoordinator {
	f := &fakeCoordinator{status: http.StatusOK, reply: `{"code":0,"message":"success","data":null}`}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		f.lastMethod = r.Method
		f.lastPath = r.URL.Path
		f.lastBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.reply))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeCoordinator) client(t *testing.T) *Client {
	c, err := NewClient(f.server.URL, "CNtestkey", "CStestsecret")
	assert.NoError(t, err)
	return c
}

func TestNewClientSanitizes(t *testing.T) {
	c, err := NewClient(" http://parent.example.com/ ", ` "CNkey" `, "'CSsecret'")
	assert.NoError(t, err)
	assert.Equal(t, "http://parent.example.com", c.baseUrl)
	assert.Equal(t, "CNkey", c.apiKey)
	assert.Equal(t, "CSsecret", c.apiSecret)
}

func TestNewClientRejectsEmpties(t *testing.T) {
	_, err := NewClient("", "CNkey", "CSsecret")
	assert.Error(t, err)
	_, err = NewClient("http://parent", "", "CSsecret")
	assert.Error(t, err)
	_, err = NewClient("http://parent", "CNkey", "  ")
	assert.Error(t, err)
}

func TestHeartbeatSendsCredentials(t *testing.T) {
	f := newFakeCoordinator(t)
	c := f.client(t)

	assert.NoError(t, c.Heartbeat())
	assert.Equal(t, "AK-SK CNtestkey:CStestsecret", f.lastAuth)
	assert.Equal(t, http.MethodPost, f.lastMethod)
	assert.Equal(t, "/api/v1/wx/cascade/heartbeat", f.lastPath)
}

func TestClaimTaskEmptyQueueReadsNil(t *testing.T) {
	f := newFakeCoordinator(t)
	c := f.client(t)

	pkg, err := c.ClaimTask()
	assert.NoError(t, err)
	assert.Nil(t, pkg)
	assert.Equal(t, "/api/v1/wx/cascade/claim-task", f.lastPath)
}

func TestClaimTask(t *testing.T) {
	f := newFakeCoordinator(t)
	f.reply = `{"code":0,"message":"success","data":{
		"allocation_id":"a1","task_id":"t1","task_name":"daily",
		"feeds":[{"id":"f1","mp_name":"feed one"}],
		"dispatched_at":"2026-03-01T09:00:00Z"}}`
	c := f.client(t)

	pkg, err := c.ClaimTask()
	assert.NoError(t, err)
	assert.NotNil(t, pkg)
	assert.Equal(t, "a1", pkg.AllocationId)
	assert.Equal(t, "t1", pkg.TaskId)
	assert.Len(t, pkg.Feeds, 1)
	assert.Equal(t, "feed one", pkg.Feeds[0].MpName)
}

func TestUpdateTaskStatus(t *testing.T) {
	f := newFakeCoordinator(t)
	c := f.client(t)

	assert.NoError(t, c.UpdateTaskStatus("a1", StatusFailed, "boom"))
	assert.Equal(t, http.MethodPut, f.lastMethod)
	assert.Equal(t, "/api/v1/wx/cascade/task-status", f.lastPath)

	sent := map[string]string{}
	assert.NoError(t, json.Unmarshal(f.lastBody, &sent))
	assert.Equal(t, "a1", sent["allocation_id"])
	assert.Equal(t, "failed", sent["status"])
	assert.Equal(t, "boom", sent["error_message"])
}

func TestUploadArticlesSkipsEmptyBatch(t *testing.T) {
	f := newFakeCoordinator(t)
	c := f.client(t)

	assert.NoError(t, c.UploadArticles("a1", nil))
	// No round trip happened.
	assert.Empty(t, f.lastPath)
}

func TestReportCompletion(t *testing.T) {
	f := newFakeCoordinator(t)
	c := f.client(t)

	results := []FeedResult{{MpId: "f1", Status: FeedResultSuccess, ArticleCount: 3}}
	assert.NoError(t, c.ReportCompletion("a1", "t1", results, 3))
	assert.Equal(t, "/api/v1/wx/cascade/report-completion", f.lastPath)

	var sent struct {
		AllocationId string       `json:"allocation_id"`
		TaskId       string       `json:"task_id"`
		Results      []FeedResult `json:"results"`
		ArticleCount int          `json:"article_count"`
	}
	assert.NoError(t, json.Unmarshal(f.lastBody, &sent))
	assert.Equal(t, "a1", sent.AllocationId)
	assert.Equal(t, "t1", sent.TaskId)
	assert.Equal(t, 3, sent.ArticleCount)
	assert.Len(t, sent.Results, 1)
}

func TestSyncFeeds(t *testing.T) {
	f := newFakeCoordinator(t)
	f.reply = `{"code":0,"message":"success","data":{
		"list":[{"id":"f1","mp_name":"feed one"},{"id":"f2"}],"total":2}}`
	c := f.client(t)

	feeds, err := c.SyncFeeds()
	assert.NoError(t, err)
	assert.Len(t, feeds, 2)
	assert.Equal(t, "/api/v1/wx/cascade/feeds", f.lastPath)
	assert.Equal(t, http.MethodGet, f.lastMethod)
}

func TestCallSurfacesEnvelopeErrors(t *testing.T) {
	f := newFakeCoordinator(t)
	f.status = http.StatusUnauthorized
	f.reply = `{"code":401,"message":"invalid credentials","data":null}`
	c := f.client(t)

	err := c.Heartbeat()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.Contains(t, err.Error(), "401")
}
