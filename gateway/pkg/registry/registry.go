/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	sqrl "github.com/Masterminds/squirrel"
	"k8s.io/klog/v2"

	commonconfig "github.com/YourCFP/we-mp-rss/common/pkg/config"
	dbclient "github.com/YourCFP/we-mp-rss/common/pkg/database/client"
	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
	"github.com/YourCFP/we-mp-rss/common/pkg/notification"
	notificationmodel "github.com/YourCFP/we-mp-rss/common/pkg/notification/model"
	jsonutils "github.com/YourCFP/we-mp-rss/utils/pkg/json"
)

// SyncConfig is the per-node sync budget stored as JSON on the node row.
// The schema is closed: updates carrying unknown keys are rejected so a
// typo in an operator request cannot silently disable a quota.
type SyncConfig struct {
	MaxCapacity uint16            `json:"max_capacity"`
	FeedQuota   map[string]uint16 `json:"feed_quota,omitempty"`
}

// ParseSyncConfig decodes a node's sync_config column. Empty input yields
// the configured default capacity.
func ParseSyncConfig(raw string) (*SyncConfig, error) {
	cfg := &SyncConfig{
		MaxCapacity: uint16(commonconfig.GetDefaultMaxCapacity()),
	}
	if strings.TrimSpace(raw) == "" {
		return cfg, nil
	}
	if err := jsonutils.UnmarshalWithCheck([]byte(raw), cfg); err != nil {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf("invalid sync_config: %v", err))
	}
	if cfg.MaxCapacity == 0 {
		cfg.MaxCapacity = uint16(commonconfig.GetDefaultMaxCapacity())
	}
	return cfg, nil
}

// Classify reports whether a node counts as online at the given instant:
// active, reporting status 1, and heartbeated within the window. The
// classification is always computed, never persisted, so a worker that
// resumes heartbeating flips back to online without any repair write.
func Classify(node *dbclient.CascadeNode, now time.Time) bool {
	if node == nil || !node.IsActive || node.Status != dbclient.NodeStatusOnline {
		return false
	}
	if !node.LastHeartbeatAt.Valid {
		return false
	}
	window := time.Duration(commonconfig.GetHeartbeatWindowSecond()) * time.Second
	return now.Sub(node.LastHeartbeatAt.Time) <= window
}

// NodeState is one worker's liveness and capacity snapshot.
type NodeState struct {
	Node              *dbclient.CascadeNode
	IsOnline          bool
	CurrentTasks      int
	MaxCapacity       int
	AvailableCapacity int
}

// Registry answers liveness questions about worker nodes. It remembers the
// previous classification per node so a refresh can detect online-to-offline
// transitions and raise a notification exactly once per outage.
type Registry struct {
	dbClient dbclient.Interface

	mu         sync.Mutex
	lastOnline map[string]bool
}

func NewRegistry(dbClient dbclient.Interface) *Registry {
	return &Registry{
		dbClient:   dbClient,
		lastOnline: map[string]bool{},
	}
}

// Refresh loads all workers and computes the current snapshot: online count,
// in-flight task count and remaining capacity per node.
func (r *Registry) Refresh(ctx context.Context) (int, []*NodeState, error) {
	nodes, err := r.dbClient.SelectNodes(ctx,
		sqrl.Eq{"node_type": dbclient.NodeTypeWorker}, []string{"created_at ASC"}, 0, 0)
	if err != nil {
		return 0, nil, err
	}
	inFlight, err := r.dbClient.GetNodeInFlightCounts(ctx)
	if err != nil {
		return 0, nil, err
	}

	now := time.Now().UTC()
	online := 0
	var wentOffline []string
	states := make([]*NodeState, 0, len(nodes))

	r.mu.Lock()
	for _, node := range nodes {
		isOnline := Classify(node, now)
		if isOnline {
			online++
		}
		cfg, err := ParseSyncConfig(node.SyncConfig.String)
		if err != nil {
			klog.Warningf("node %s carries an invalid sync_config, using defaults: %v", node.Id, err)
			cfg = &SyncConfig{MaxCapacity: uint16(commonconfig.GetDefaultMaxCapacity())}
		}
		current := inFlight[node.Id]
		available := int(cfg.MaxCapacity) - current
		if available < 0 {
			available = 0
		}
		states = append(states, &NodeState{
			Node:              node,
			IsOnline:          isOnline,
			CurrentTasks:      current,
			MaxCapacity:       int(cfg.MaxCapacity),
			AvailableCapacity: available,
		})
		if was, seen := r.lastOnline[node.Id]; seen && was && !isOnline {
			wentOffline = append(wentOffline, node.Name)
		}
		r.lastOnline[node.Id] = isOnline
	}
	r.mu.Unlock()

	if len(wentOffline) > 0 {
		r.notifyOffline(ctx, wentOffline)
	}
	return online, states, nil
}

// OnlineCount is Refresh reduced to the number the stats block needs.
func (r *Registry) OnlineCount(ctx context.Context) (int, error) {
	online, _, err := r.Refresh(ctx)
	return online, err
}

func (r *Registry) notifyOffline(ctx context.Context, nodes []string) {
	klog.Warningf("%d worker node(s) fell out of the heartbeat window: %s",
		len(nodes), strings.Join(nodes, ", "))
	mgr := notification.GetNotificationManager()
	if mgr == nil {
		return
	}
	data := map[string]interface{}{
		"nodes":  nodes,
		"window": fmt.Sprintf("%ds", commonconfig.GetHeartbeatWindowSecond()),
	}
	if err := mgr.SubmitNotification(ctx, notificationmodel.TopicNodeOffline, data); err != nil {
		klog.ErrorS(err, "failed to submit node offline notification")
	}
}
