/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package cascade_handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/YourCFP/we-mp-rss/common/pkg/common"
	dbclient "github.com/YourCFP/we-mp-rss/common/pkg/database/client"
	mock_client "github.com/YourCFP/we-mp-rss/common/pkg/database/client/mock"
	dbutils "github.com/YourCFP/we-mp-rss/common/pkg/database/utils"
	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/dispatcher"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/handlers/cascade-handlers/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestHandler(t *testing.T) (*Handler, *mock_client.MockInterface, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	mockDb := mock_client.NewMockInterface(ctrl)
	h, err := NewHandler(mockDb, dispatcher.NewDispatcher(mockDb), nil, nil, nil)
	assert.NoError(t, err)
	return h, mockDb, ctrl
}

type testEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// runAsNode drives one handler the way the worker route group would: with the
// authenticated node id already bound to the context.
func runAsNode(t *testing.T, nodeId string, endpoint gin.HandlerFunc, method string, body interface{}) (int, *testEnvelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(method, "/", reader)
	c.Set(common.NodeId, nodeId)
	endpoint(c)

	env := &testEnvelope{}
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), env))
	return recorder.Code, env
}

func ownedAllocation(id, taskId, nodeId string) *dbclient.TaskAllocation {
	return &dbclient.TaskAllocation{
		Id:      id,
		TaskId:  taskId,
		NodeId:  dbutils.NullString(nodeId),
		FeedIds: `["f1"]`,
		Status:  string(dbclient.AllocationStatusExecuting),
	}
}

func TestHeartbeat(t *testing.T) {
	h, _, ctrl := newTestHandler(t)
	defer ctrl.Finish()

	code, env := runAsNode(t, "n1", h.Heartbeat, http.MethodPost, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, env.Code)
	assert.JSONEq(t, `{"status":"alive"}`, string(env.Data))
}

func TestClaimTaskEmptyQueue(t *testing.T) {
	h, mockDb, ctrl := newTestHandler(t)
	defer ctrl.Finish()

	mockDb.EXPECT().InsertSyncLog(gomock.Any(), gomock.Any()).Return(nil)
	mockDb.EXPECT().ClaimAllocation(gomock.Any(), "n1").Return(nil, nil)
	mockDb.EXPECT().CompleteSyncLog(gomock.Any(), gomock.Any(),
		dbclient.SyncLogStatusOk, 0, "").Return(nil)

	code, env := runAsNode(t, "n1", h.ClaimTask, http.MethodPost, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "null", string(env.Data))
}

func TestUpdateTaskStatus(t *testing.T) {
	h, mockDb, ctrl := newTestHandler(t)
	defer ctrl.Finish()

	mockDb.EXPECT().GetAllocationById(gomock.Any(), "a1").
		Return(ownedAllocation("a1", "t1", "n1"), nil)
	mockDb.EXPECT().UpdateAllocationStatus(gomock.Any(), "a1",
		dbclient.AllocationStatusExecuting,
		&dbclient.AllocationUpdate{}).Return(nil)

	code, env := runAsNode(t, "n1", h.UpdateTaskStatus, http.MethodPut, &types.TaskStatusRequest{
		AllocationId: "a1",
		Status:       "executing",
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, env.Code)
}

func TestUpdateTaskStatusRejectsUnknownStatus(t *testing.T) {
	h, _, ctrl := newTestHandler(t)
	defer ctrl.Finish()

	// Workers cannot claim or time out rows through this endpoint.
	for _, status := range []string{"pending", "claimed", "timeout", "done"} {
		code, env := runAsNode(t, "n1", h.UpdateTaskStatus, http.MethodPut, &types.TaskStatusRequest{
			AllocationId: "a1",
			Status:       status,
		})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, http.StatusBadRequest, env.Code)
	}
}

// A worker touching another node's allocation gets a 404, not a 403: the row
// id space of other nodes stays opaque.
func TestUpdateTaskStatusForeignAllocation(t *testing.T) {
	h, mockDb, ctrl := newTestHandler(t)
	defer ctrl.Finish()

	mockDb.EXPECT().GetAllocationById(gomock.Any(), "a1").
		Return(ownedAllocation("a1", "t1", "other-node"), nil)

	code, env := runAsNode(t, "n1", h.UpdateTaskStatus, http.MethodPut, &types.TaskStatusRequest{
		AllocationId: "a1",
		Status:       "failed",
		ErrorMessage: "boom",
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, http.StatusNotFound, env.Code)
}

func TestUploadArticles(t *testing.T) {
	h, mockDb, ctrl := newTestHandler(t)
	defer ctrl.Finish()

	mockDb.EXPECT().GetAllocationById(gomock.Any(), "a1").
		Return(ownedAllocation("a1", "t1", "n1"), nil)
	mockDb.EXPECT().InsertSyncLog(gomock.Any(), gomock.Any()).Return(nil)
	// Three uploaded, one already known: only two rows are new.
	mockDb.EXPECT().UpsertArticles(gomock.Any(), gomock.Any()).Return(int64(2), nil)
	mockDb.EXPECT().AddAllocationNewArticles(gomock.Any(), "a1", 2).Return(nil)
	mockDb.EXPECT().CompleteSyncLog(gomock.Any(), gomock.Any(),
		dbclient.SyncLogStatusOk, 3, "").Return(nil)

	code, env := runAsNode(t, "n1", h.UploadArticles, http.MethodPost, &types.UploadArticlesRequest{
		AllocationId: "a1",
		Articles: []types.ArticleView{
			{Id: "art1", MpId: "f1", Title: "one"},
			{Id: "art2", MpId: "f1", Title: "two"},
			{Id: "art3", MpId: "f1", Title: "three"},
		},
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, env.Code)

	rsp := &types.UploadArticlesResponse{}
	assert.NoError(t, json.Unmarshal(env.Data, rsp))
	assert.Equal(t, 3, rsp.Received)
	assert.Equal(t, int64(2), rsp.New)
}

func TestUploadArticlesRejectsAnonymousRecords(t *testing.T) {
	h, mockDb, ctrl := newTestHandler(t)
	defer ctrl.Finish()

	mockDb.EXPECT().GetAllocationById(gomock.Any(), "a1").
		Return(ownedAllocation("a1", "t1", "n1"), nil)
	mockDb.EXPECT().InsertSyncLog(gomock.Any(), gomock.Any()).Return(nil)
	mockDb.EXPECT().CompleteSyncLog(gomock.Any(), gomock.Any(),
		dbclient.SyncLogStatusError, 0, gomock.Any()).Return(nil)

	code, env := runAsNode(t, "n1", h.UploadArticles, http.MethodPost, &types.UploadArticlesRequest{
		AllocationId: "a1",
		Articles:     []types.ArticleView{{Title: "no ids"}},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, http.StatusBadRequest, env.Code)
}

func TestReportCompletion(t *testing.T) {
	h, mockDb, ctrl := newTestHandler(t)
	defer ctrl.Finish()

	mockDb.EXPECT().GetAllocationById(gomock.Any(), "a1").
		Return(ownedAllocation("a1", "t1", "n1"), nil)
	mockDb.EXPECT().InsertSyncLog(gomock.Any(), gomock.Any()).Return(nil)
	mockDb.EXPECT().UpdateAllocationStatus(gomock.Any(), "a1",
		dbclient.AllocationStatusCompleted, gomock.Any()).DoAndReturn(
		func(_ interface{}, _ string, _ dbclient.AllocationStatus, update *dbclient.AllocationUpdate) error {
			assert.NotNil(t, update.ArticleCount)
			assert.Equal(t, 5, *update.ArticleCount)
			assert.Contains(t, update.ResultSummary, `"success"`)
			assert.Empty(t, update.ErrorMessage)
			return nil
		})
	mockDb.EXPECT().CompleteSyncLog(gomock.Any(), gomock.Any(),
		dbclient.SyncLogStatusOk, 2, "").Return(nil)

	code, env := runAsNode(t, "n1", h.ReportCompletion, http.MethodPost, &types.ReportCompletionRequest{
		AllocationId: "a1",
		TaskId:       "t1",
		ArticleCount: 5,
		Results: []types.FeedResultView{
			{MpId: "f1", Status: "success", ArticleCount: 5},
			{MpId: "f2", Status: "failed", Error: "fetch error"},
		},
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, env.Code)
}

func TestReportCompletionAllFeedsFailed(t *testing.T) {
	h, mockDb, ctrl := newTestHandler(t)
	defer ctrl.Finish()

	mockDb.EXPECT().GetAllocationById(gomock.Any(), "a1").
		Return(ownedAllocation("a1", "t1", "n1"), nil)
	mockDb.EXPECT().InsertSyncLog(gomock.Any(), gomock.Any()).Return(nil)
	mockDb.EXPECT().UpdateAllocationStatus(gomock.Any(), "a1",
		dbclient.AllocationStatusFailed, gomock.Any()).DoAndReturn(
		func(_ interface{}, _ string, _ dbclient.AllocationStatus, update *dbclient.AllocationUpdate) error {
			assert.Equal(t, "all feeds failed", update.ErrorMessage)
			return nil
		})
	mockDb.EXPECT().CompleteSyncLog(gomock.Any(), gomock.Any(),
		dbclient.SyncLogStatusOk, 1, "").Return(nil)

	code, env := runAsNode(t, "n1", h.ReportCompletion, http.MethodPost, &types.ReportCompletionRequest{
		AllocationId: "a1",
		Results: []types.FeedResultView{
			{MpId: "f1", Status: "failed", Error: "fetch error"},
		},
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, env.Code)
}

func TestReportCompletionTaskMismatch(t *testing.T) {
	h, mockDb, ctrl := newTestHandler(t)
	defer ctrl.Finish()

	mockDb.EXPECT().GetAllocationById(gomock.Any(), "a1").
		Return(ownedAllocation("a1", "t1", "n1"), nil)

	code, env := runAsNode(t, "n1", h.ReportCompletion, http.MethodPost, &types.ReportCompletionRequest{
		AllocationId: "a1",
		TaskId:       "t-other",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, http.StatusBadRequest, env.Code)
}

// Completing twice trips the status state machine, which surfaces as 409.
func TestReportCompletionTwice(t *testing.T) {
	h, mockDb, ctrl := newTestHandler(t)
	defer ctrl.Finish()

	allocation := ownedAllocation("a1", "t1", "n1")
	allocation.Status = string(dbclient.AllocationStatusCompleted)
	mockDb.EXPECT().GetAllocationById(gomock.Any(), "a1").Return(allocation, nil)
	mockDb.EXPECT().InsertSyncLog(gomock.Any(), gomock.Any()).Return(nil)
	mockDb.EXPECT().UpdateAllocationStatus(gomock.Any(), "a1",
		dbclient.AllocationStatusCompleted, gomock.Any()).
		Return(commonerrors.NewConflict("allocation a1 is completed, cannot move to completed"))
	mockDb.EXPECT().CompleteSyncLog(gomock.Any(), gomock.Any(),
		dbclient.SyncLogStatusError, 0, gomock.Any()).Return(nil)

	code, env := runAsNode(t, "n1", h.ReportCompletion, http.MethodPost, &types.ReportCompletionRequest{
		AllocationId: "a1",
		TaskId:       "t1",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, http.StatusConflict, env.Code)
}

func TestListWorkerFeeds(t *testing.T) {
	h, mockDb, ctrl := newTestHandler(t)
	defer ctrl.Finish()

	mockDb.EXPECT().InsertSyncLog(gomock.Any(), gomock.Any()).Return(nil)
	mockDb.EXPECT().SelectFeeds(gomock.Any(), nil, []string{"created_at ASC"}, 0, 0).
		Return([]*dbclient.Feed{
			{Id: "f1", MpName: dbutils.NullString("feed one"), SyncTime: 100},
			{Id: "f2", MpName: dbutils.NullString("feed two")},
		}, nil)
	mockDb.EXPECT().SetNodeLastSync(gomock.Any(), "n1").Return(nil)
	mockDb.EXPECT().CompleteSyncLog(gomock.Any(), gomock.Any(),
		dbclient.SyncLogStatusOk, 2, "").Return(nil)

	code, env := runAsNode(t, "n1", h.ListWorkerFeeds, http.MethodGet, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, env.Code)

	rsp := &types.ListWorkerFeedResponse{}
	assert.NoError(t, json.Unmarshal(env.Data, rsp))
	assert.Equal(t, 2, rsp.Total)
	assert.Equal(t, "feed one", rsp.List[0].MpName)
}
