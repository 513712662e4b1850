/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package cascade_handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/YourCFP/we-mp-rss/common/pkg/common"
	dbclient "github.com/YourCFP/we-mp-rss/common/pkg/database/client"
	dbutils "github.com/YourCFP/we-mp-rss/common/pkg/database/utils"
	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/handlers/cascade-handlers/types"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/registry"
	jsonutils "github.com/YourCFP/we-mp-rss/utils/pkg/json"
)

func (h *Handler) CreateNode(c *gin.Context) {
	handle(c, h.createNode)
}

func (h *Handler) ListNode(c *gin.Context) {
	handle(c, h.listNode)
}

func (h *Handler) GetNode(c *gin.Context) {
	handle(c, h.getNode)
}

func (h *Handler) UpdateNode(c *gin.Context) {
	handle(c, h.updateNode)
}

func (h *Handler) DeleteNode(c *gin.Context) {
	handle(c, h.deleteNode)
}

func (h *Handler) IssueCredentials(c *gin.Context) {
	handle(c, h.issueCredentials)
}

func (h *Handler) TestConnection(c *gin.Context) {
	handle(c, h.testConnection)
}

func (h *Handler) createNode(c *gin.Context) (interface{}, error) {
	req := &types.CreateNodeRequest{}
	if _, err := getBodyFromRequest(c.Request, req); err != nil {
		klog.ErrorS(err, "failed to parse request")
		return nil, err
	}
	if req.Name == "" {
		return nil, commonerrors.NewBadRequest("node name is required")
	}
	nodeType := dbclient.NodeTypeWorker
	if req.NodeType != nil {
		nodeType = *req.NodeType
	}
	if nodeType != dbclient.NodeTypeCoordinator && nodeType != dbclient.NodeTypeWorker {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf("invalid node_type %d", nodeType))
	}
	ctx := c.Request.Context()
	if nodeType == dbclient.NodeTypeCoordinator {
		// There is exactly one coordinator per cascade.
		count, err := h.dbClient.CountNodes(ctx, sqrl.Eq{"node_type": dbclient.NodeTypeCoordinator})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, commonerrors.NewConflict("a coordinator node already exists")
		}
	}

	now := time.Now().UTC()
	node := &dbclient.CascadeNode{
		Id:          uuid.NewString(),
		NodeType:    nodeType,
		Name:        req.Name,
		Description: dbutils.NullString(req.Description),
		ApiUrl:      dbutils.NullString(req.ApiUrl),
		Status:      dbclient.NodeStatusOffline,
		IsActive:    true,
		CreatedAt:   dbutils.NullTime(now),
		UpdatedAt:   dbutils.NullTime(now),
	}
	if err := h.dbClient.InsertNode(ctx, node); err != nil {
		klog.ErrorS(err, "failed to create node", "name", req.Name)
		return nil, err
	}
	klog.Infof("created cascade node %s (%s)", node.Id, node.Name)
	return &types.CreateNodeResponse{NodeId: node.Id}, nil
}

func (h *Handler) listNode(c *gin.Context) (interface{}, error) {
	ctx := c.Request.Context()
	var query sqrl.Sqlizer
	if kind := c.Query("node_type"); kind != "" {
		nodeType, err := strconv.Atoi(kind)
		if err != nil {
			return nil, commonerrors.NewBadRequest("invalid node_type filter")
		}
		query = sqrl.Eq{"node_type": nodeType}
	}
	nodes, err := h.dbClient.SelectNodes(ctx, query, []string{"created_at ASC"}, 0, 0)
	if err != nil {
		return nil, err
	}
	// One refresh serves classification and capacity for the whole listing.
	_, states, err := h.registry.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	stateById := make(map[string]*registry.NodeState, len(states))
	for _, state := range states {
		stateById[state.Node.Id] = state
	}

	views := make([]*types.NodeView, 0, len(nodes))
	for _, node := range nodes {
		views = append(views, cvtToNodeView(node, stateById[node.Id]))
	}
	return &types.ListNodeResponse{List: views, Total: len(views)}, nil
}

func (h *Handler) getNode(c *gin.Context) (interface{}, error) {
	ctx := c.Request.Context()
	node, err := h.dbClient.GetNodeById(ctx, c.GetString(common.Id))
	if err != nil {
		return nil, err
	}
	_, states, err := h.registry.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	for _, state := range states {
		if state.Node.Id == node.Id {
			return cvtToNodeView(node, state), nil
		}
	}
	return cvtToNodeView(node, nil), nil
}

func (h *Handler) updateNode(c *gin.Context) (interface{}, error) {
	req := &types.UpdateNodeRequest{}
	if _, err := getBodyFromRequest(c.Request, req); err != nil {
		klog.ErrorS(err, "failed to parse request")
		return nil, err
	}
	ctx := c.Request.Context()
	node, err := h.dbClient.GetNodeById(ctx, c.GetString(common.Id))
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, commonerrors.NewBadRequest("node name cannot be empty")
		}
		node.Name = *req.Name
	}
	if req.Description != nil {
		node.Description = dbutils.NullString(*req.Description)
	}
	if req.ApiUrl != nil {
		node.ApiUrl = dbutils.NullString(*req.ApiUrl)
	}
	if req.IsActive != nil {
		node.IsActive = *req.IsActive
	}
	if req.SyncConfig != nil {
		node.SyncConfig = dbutils.NullString(string(jsonutils.MarshalSilently(req.SyncConfig)))
	}
	node.UpdatedAt = dbutils.NullTime(time.Now().UTC())
	if err = h.dbClient.UpdateNode(ctx, node); err != nil {
		klog.ErrorS(err, "failed to update node", "node", node.Id)
		return nil, err
	}
	return cvtToNodeView(node, nil), nil
}

func (h *Handler) deleteNode(c *gin.Context) (interface{}, error) {
	nodeId := c.GetString(common.Id)
	if err := h.dbClient.DeleteNode(c.Request.Context(), nodeId); err != nil {
		klog.ErrorS(err, "failed to delete node", "node", nodeId)
		return nil, err
	}
	klog.Infof("deleted cascade node %s", nodeId)
	return nil, nil
}

func (h *Handler) issueCredentials(c *gin.Context) (interface{}, error) {
	nodeId := c.GetString(common.Id)
	apiKey, apiSecret, err := h.verifier.Issue(c.Request.Context(), nodeId)
	if err != nil {
		klog.ErrorS(err, "failed to issue credentials", "node", nodeId)
		return nil, err
	}
	return &types.CredentialsResponse{
		NodeId:    nodeId,
		ApiKey:    apiKey,
		ApiSecret: apiSecret,
	}, nil
}

// testConnection probes a worker's api_url from the coordinator side. With
// credentials in the body the probe is an authenticated heartbeat; without,
// any HTTP response from the base URL counts as connected.
func (h *Handler) testConnection(c *gin.Context) (interface{}, error) {
	req := &types.TestConnectionRequest{}
	if _, err := getBodyFromRequest(c.Request, req); err != nil {
		klog.ErrorS(err, "failed to parse request")
		return nil, err
	}
	node, err := h.dbClient.GetNodeById(c.Request.Context(), c.GetString(common.Id))
	if err != nil {
		return nil, err
	}
	apiUrl := node.ApiUrl.String
	if apiUrl == "" {
		return nil, commonerrors.NewBadRequest("the node has no api_url")
	}

	if req.ApiKey != "" && req.ApiSecret != "" {
		url := fmt.Sprintf("%s/%s/cascade/heartbeat", apiUrl, common.WeRssRouterRootPath)
		rsp, err := h.httpClient.Post(url, nil, common.AuthorizationHeader,
			common.AkSkScheme+req.ApiKey+":"+req.ApiSecret)
		if err != nil {
			return &types.TestConnectionResponse{Connected: false, Error: err.Error()}, nil
		}
		if rsp.StatusCode != http.StatusOK {
			return &types.TestConnectionResponse{
				Connected: false,
				Error:     fmt.Sprintf("heartbeat returned status %d", rsp.StatusCode),
			}, nil
		}
		return &types.TestConnectionResponse{Connected: true}, nil
	}

	if _, err = h.httpClient.Get(apiUrl); err != nil {
		return &types.TestConnectionResponse{Connected: false, Error: err.Error()}, nil
	}
	return &types.TestConnectionResponse{Connected: true}, nil
}

func cvtToNodeView(node *dbclient.CascadeNode, state *registry.NodeState) *types.NodeView {
	view := &types.NodeView{
		Id:              node.Id,
		NodeType:        node.NodeType,
		Name:            node.Name,
		Description:     node.Description.String,
		ApiUrl:          node.ApiUrl.String,
		ApiKey:          node.ApiKey.String,
		Status:          node.Status,
		IsActive:        node.IsActive,
		LastSyncAt:      dbutils.ParseNullTimeToString(node.LastSyncAt),
		LastHeartbeatAt: dbutils.ParseNullTimeToString(node.LastHeartbeatAt),
		CreatedAt:       dbutils.ParseNullTimeToString(node.CreatedAt),
		UpdatedAt:       dbutils.ParseNullTimeToString(node.UpdatedAt),
	}
	if cfg, err := registry.ParseSyncConfig(node.SyncConfig.String); err == nil {
		view.SyncConfig = cfg
	}
	if state != nil {
		view.IsOnline = state.IsOnline
		view.CurrentTasks = state.CurrentTasks
		view.MaxCapacity = state.MaxCapacity
		view.AvailableCapacity = state.AvailableCapacity
	}
	return view
}
