/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package registry

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	dbclient "github.com/YourCFP/we-mp-rss/common/pkg/database/client"
	mock_client "github.com/YourCFP/we-mp-rss/common/pkg/database/client/mock"
	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
)

func workerNode(id string, status int, active bool, heartbeatAge time.Duration) *dbclient.CascadeNode {
	node := &dbclient.CascadeNode{
		Id:       id,
		Name:     id,
		NodeType: dbclient.NodeTypeWorker,
		Status:   status,
		IsActive: active,
	}
	if heartbeatAge >= 0 {
		node.LastHeartbeatAt = pq.NullTime{
			Time:  time.Now().UTC().Add(-heartbeatAge),
			Valid: true,
		}
	}
	return node
}

func TestClassify(t *testing.T) {
	now := time.Now().UTC()
	heartbeatAt := func(age time.Duration) pq.NullTime {
		return pq.NullTime{Time: now.Add(-age), Valid: true}
	}

	tests := []struct {
		name string
		node *dbclient.CascadeNode
		want bool
	}{
		{
			"fresh heartbeat",
			&dbclient.CascadeNode{Status: dbclient.NodeStatusOnline, IsActive: true,
				LastHeartbeatAt: heartbeatAt(10 * time.Second)},
			true,
		},
		{
			"just inside the window",
			&dbclient.CascadeNode{Status: dbclient.NodeStatusOnline, IsActive: true,
				LastHeartbeatAt: heartbeatAt(179 * time.Second)},
			true,
		},
		{
			"exactly on the window",
			&dbclient.CascadeNode{Status: dbclient.NodeStatusOnline, IsActive: true,
				LastHeartbeatAt: heartbeatAt(180 * time.Second)},
			true,
		},
		{
			"just outside the window",
			&dbclient.CascadeNode{Status: dbclient.NodeStatusOnline, IsActive: true,
				LastHeartbeatAt: heartbeatAt(181 * time.Second)},
			false,
		},
		{
			"never heartbeated",
			&dbclient.CascadeNode{Status: dbclient.NodeStatusOnline, IsActive: true},
			false,
		},
		{
			"reported status 0",
			&dbclient.CascadeNode{Status: dbclient.NodeStatusOffline, IsActive: true,
				LastHeartbeatAt: heartbeatAt(10 * time.Second)},
			false,
		},
		{
			"inactive node",
			&dbclient.CascadeNode{Status: dbclient.NodeStatusOnline, IsActive: false,
				LastHeartbeatAt: heartbeatAt(10 * time.Second)},
			false,
		},
		{
			"nil node",
			nil,
			false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Classify(test.node, now))
		})
	}
}

func TestParseSyncConfig(t *testing.T) {
	cfg, err := ParseSyncConfig("")
	assert.NoError(t, err)
	assert.Equal(t, uint16(10), cfg.MaxCapacity)

	cfg, err = ParseSyncConfig(`{"max_capacity": 25}`)
	assert.NoError(t, err)
	assert.Equal(t, uint16(25), cfg.MaxCapacity)

	cfg, err = ParseSyncConfig(`{"max_capacity": 5, "feed_quota": {"mp-1": 3}}`)
	assert.NoError(t, err)
	assert.Equal(t, uint16(3), cfg.FeedQuota["mp-1"])

	// Zero capacity falls back to the default rather than starving the node.
	cfg, err = ParseSyncConfig(`{"max_capacity": 0}`)
	assert.NoError(t, err)
	assert.Equal(t, uint16(10), cfg.MaxCapacity)

	_, err = ParseSyncConfig(`{"max_capacity": 5, "bogus": true}`)
	assert.True(t, commonerrors.IsBadRequest(err))

	_, err = ParseSyncConfig(`not json`)
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_client.NewMockInterface(ctrl)
	r := NewRegistry(mockDB)

	fresh := workerNode("w1", dbclient.NodeStatusOnline, true, 10*time.Second)
	fresh.SyncConfig = sql.NullString{String: `{"max_capacity": 3}`, Valid: true}
	stale := workerNode("w2", dbclient.NodeStatusOnline, true, 10*time.Minute)

	mockDB.EXPECT().SelectNodes(gomock.Any(), gomock.Any(), gomock.Any(), 0, 0).
		Return([]*dbclient.CascadeNode{fresh, stale}, nil)
	mockDB.EXPECT().GetNodeInFlightCounts(gomock.Any()).
		Return(map[string]int{"w1": 5}, nil)

	online, states, err := r.Refresh(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, online)
	assert.Equal(t, 2, len(states))

	assert.True(t, states[0].IsOnline)
	assert.Equal(t, 5, states[0].CurrentTasks)
	assert.Equal(t, 3, states[0].MaxCapacity)
	// Over-committed node reports zero, not negative, capacity.
	assert.Equal(t, 0, states[0].AvailableCapacity)

	assert.False(t, states[1].IsOnline)
	assert.Equal(t, 0, states[1].CurrentTasks)
	assert.Equal(t, 10, states[1].MaxCapacity)
	assert.Equal(t, 10, states[1].AvailableCapacity)
}

func TestRefreshTracksOfflineTransitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_client.NewMockInterface(ctrl)
	r := NewRegistry(mockDB)

	mockDB.EXPECT().SelectNodes(gomock.Any(), gomock.Any(), gomock.Any(), 0, 0).
		Return([]*dbclient.CascadeNode{workerNode("w1", dbclient.NodeStatusOnline, true, 10*time.Second)}, nil)
	mockDB.EXPECT().GetNodeInFlightCounts(gomock.Any()).Return(map[string]int{}, nil)

	_, _, err := r.Refresh(context.Background())
	assert.NoError(t, err)
	assert.True(t, r.lastOnline["w1"])

	mockDB.EXPECT().SelectNodes(gomock.Any(), gomock.Any(), gomock.Any(), 0, 0).
		Return([]*dbclient.CascadeNode{workerNode("w1", dbclient.NodeStatusOnline, true, 10*time.Minute)}, nil)
	mockDB.EXPECT().GetNodeInFlightCounts(gomock.Any()).Return(map[string]int{}, nil)

	_, _, err = r.Refresh(context.Background())
	assert.NoError(t, err)
	assert.False(t, r.lastOnline["w1"])
}
