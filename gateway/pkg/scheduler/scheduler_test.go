/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package scheduler

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	dbclient "github.com/YourCFP/we-mp-rss/common/pkg/database/client"
	mock_client "github.com/YourCFP/we-mp-rss/common/pkg/database/client/mock"
	dbutils "github.com/YourCFP/we-mp-rss/common/pkg/database/utils"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/dispatcher"
)

func scheduledTask(id, cronExp string) *dbclient.MessageTask {
	return &dbclient.MessageTask{
		Id:      id,
		Name:    dbutils.NullString("task-" + id),
		MpsId:   dbutils.NullString(`["f1"]`),
		CronExp: dbutils.NullString(cronExp),
		Status:  dbclient.TaskStatusEnabled,
	}
}

func newTestManager(t *testing.T) (*Manager, *mock_client.MockInterface, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	mockDb := mock_client.NewMockInterface(ctrl)
	return NewManager(mockDb, dispatcher.NewDispatcher(mockDb)), mockDb, ctrl
}

func TestStartRegistersEnabledTasks(t *testing.T) {
	m, mockDb, ctrl := newTestManager(t)
	defer ctrl.Finish()
	defer m.Stop()
	ctx := context.Background()

	mockDb.EXPECT().SelectEnabledTasks(ctx).Return([]*dbclient.MessageTask{
		scheduledTask("t1", "*/5 * * * *"),
		scheduledTask("t2", "0 3 * * *"),
	}, nil)

	count, err := m.Start(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.True(t, m.IsRunning())
	assert.Equal(t, 2, m.JobCount())
}

func TestStartIsIdempotent(t *testing.T) {
	m, mockDb, ctrl := newTestManager(t)
	defer ctrl.Finish()
	defer m.Stop()
	ctx := context.Background()

	mockDb.EXPECT().SelectEnabledTasks(ctx).Return([]*dbclient.MessageTask{
		scheduledTask("t1", "*/5 * * * *"),
	}, nil).Times(1)

	_, err := m.Start(ctx)
	assert.NoError(t, err)
	count, err := m.Start(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStartSkipsInvalidCron(t *testing.T) {
	m, mockDb, ctrl := newTestManager(t)
	defer ctrl.Finish()
	defer m.Stop()
	ctx := context.Background()

	mockDb.EXPECT().SelectEnabledTasks(ctx).Return([]*dbclient.MessageTask{
		scheduledTask("t1", "not a cron"),
		scheduledTask("t2", "*/5 * * * *"),
	}, nil)

	count, err := m.Start(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

// Each cron job must carry its own task id; a closure over the loop variable
// would make every job dispatch the task registered last.
func TestJobsBindTheirOwnTaskId(t *testing.T) {
	m, mockDb, ctrl := newTestManager(t)
	defer ctrl.Finish()
	defer m.Stop()
	ctx := context.Background()

	mockDb.EXPECT().SelectEnabledTasks(ctx).Return([]*dbclient.MessageTask{
		scheduledTask("t1", "*/5 * * * *"),
		scheduledTask("t2", "*/5 * * * *"),
	}, nil)
	_, err := m.Start(ctx)
	assert.NoError(t, err)

	seen := map[string]bool{}
	for taskId, cj := range m.allCronJobs {
		assert.Equal(t, taskId, cj.taskId)
		seen[cj.taskId] = true
	}
	assert.True(t, seen["t1"])
	assert.True(t, seen["t2"])
}

func TestReloadPicksUpTaskChanges(t *testing.T) {
	m, mockDb, ctrl := newTestManager(t)
	defer ctrl.Finish()
	defer m.Stop()
	ctx := context.Background()

	mockDb.EXPECT().SelectEnabledTasks(ctx).Return([]*dbclient.MessageTask{
		scheduledTask("t1", "*/5 * * * *"),
	}, nil)
	_, err := m.Start(ctx)
	assert.NoError(t, err)

	mockDb.EXPECT().SelectEnabledTasks(ctx).Return([]*dbclient.MessageTask{
		scheduledTask("t2", "*/10 * * * *"),
		scheduledTask("t3", "0 * * * *"),
	}, nil)
	count, err := m.Reload(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	_, hasOld := m.allCronJobs["t1"]
	assert.False(t, hasOld)
}

func TestReloadWhileStopped(t *testing.T) {
	m, _, ctrl := newTestManager(t)
	defer ctrl.Finish()

	count, err := m.Reload(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.False(t, m.IsRunning())
}

func TestStopClearsJobs(t *testing.T) {
	m, mockDb, ctrl := newTestManager(t)
	defer ctrl.Finish()
	ctx := context.Background()

	mockDb.EXPECT().SelectEnabledTasks(ctx).Return([]*dbclient.MessageTask{
		scheduledTask("t1", "*/5 * * * *"),
	}, nil)
	_, err := m.Start(ctx)
	assert.NoError(t, err)

	m.Stop()
	assert.False(t, m.IsRunning())
	assert.Equal(t, 0, m.JobCount())
	// A second Stop is harmless.
	m.Stop()
}
