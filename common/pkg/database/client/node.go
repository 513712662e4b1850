/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"
	"fmt"

	sqrl "github.com/Masterminds/squirrel"
	"k8s.io/klog/v2"

	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
)

const (
	TNode = "cascade_nodes"
)

var (
	insertNodeFormat = `INSERT INTO ` + TNode + ` (%s) VALUES (%s)`
	updateNodeCmd    = fmt.Sprintf(`UPDATE %s
		SET node_type = :node_type,
		    name = :name,
		    description = :description,
		    api_url = :api_url,
		    api_key = :api_key,
		    api_secret_hash = :api_secret_hash,
		    parent_id = :parent_id,
		    status = :status,
		    sync_config = :sync_config,
		    last_sync_at = :last_sync_at,
		    last_heartbeat_at = :last_heartbeat_at,
		    is_active = :is_active,
		    updated_at = :updated_at
		WHERE id = :id`, TNode)
	heartbeatNodeCmd = fmt.Sprintf(`UPDATE %s SET status = %d, last_heartbeat_at = NOW(), updated_at = NOW() WHERE id = $1`,
		TNode, NodeStatusOnline)
)

// InsertNode inserts a new cascade node record.
func (c *Client) InsertNode(ctx context.Context, node *CascadeNode) error {
	if node == nil {
		return commonerrors.NewBadRequest("the input is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}

	_, err = db.NamedExecContext(ctx, generateCommand(*node, insertNodeFormat, ""), node)
	if err != nil {
		return fmt.Errorf("failed to insert cascade node to db: %v", err)
	}
	return nil
}

// UpdateNode writes back a full node row loaded through GetNodeById.
func (c *Client) UpdateNode(ctx context.Context, node *CascadeNode) error {
	if node == nil {
		return commonerrors.NewBadRequest("the input is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}

	_, err = db.NamedExecContext(ctx, updateNodeCmd, node)
	if err != nil {
		klog.ErrorS(err, "failed to update cascade node", "id", node.Id)
		return err
	}
	return nil
}

// SelectNodes retrieves cascade nodes based on query conditions.
func (c *Client) SelectNodes(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*CascadeNode, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}

	builder := sqrl.StatementBuilder.PlaceholderFormat(sqrl.Dollar).
		Select("*").From(TNode)

	if query != nil {
		builder = builder.Where(query)
	}
	for _, order := range orderBy {
		builder = builder.OrderBy(order)
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select cascade_nodes query: %v", err)
	}

	var nodes []*CascadeNode
	err = db.SelectContext(ctx, &nodes, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select cascade_nodes from db: %v", err)
	}
	return nodes, nil
}

// CountNodes counts cascade nodes based on query conditions.
func (c *Client) CountNodes(ctx context.Context, query sqrl.Sqlizer) (int, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}

	builder := sqrl.StatementBuilder.PlaceholderFormat(sqrl.Dollar).
		Select("COUNT(*)").From(TNode)

	if query != nil {
		builder = builder.Where(query)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count cascade_nodes query: %v", err)
	}

	var count int
	err = db.GetContext(ctx, &count, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count cascade_nodes from db: %v", err)
	}
	return count, nil
}

// GetNodeById retrieves a cascade node by ID.
func (c *Client) GetNodeById(ctx context.Context, nodeId string) (*CascadeNode, error) {
	if nodeId == "" {
		return nil, commonerrors.NewBadRequest("nodeId is empty")
	}
	dbTags := GetCascadeNodeFieldTags()
	nodes, err := c.SelectNodes(ctx, sqrl.Eq{GetFieldTag(dbTags, "Id"): nodeId}, nil, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, commonerrors.NewNotFound(fmt.Sprintf("cascade node %s not found", nodeId))
	}
	return nodes[0], nil
}

// GetNodeByApiKey retrieves a cascade node by its access key.
func (c *Client) GetNodeByApiKey(ctx context.Context, apiKey string) (*CascadeNode, error) {
	if apiKey == "" {
		return nil, commonerrors.NewBadRequest("api key is empty")
	}
	dbTags := GetCascadeNodeFieldTags()
	nodes, err := c.SelectNodes(ctx, sqrl.Eq{GetFieldTag(dbTags, "ApiKey"): apiKey}, nil, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, commonerrors.NewNotFound("cascade node not found for the given api key")
	}
	return nodes[0], nil
}

// UpdateNodeHeartbeat marks the node online and stamps last_heartbeat_at.
// Staleness is decided by the registry classifier, never here.
func (c *Client) UpdateNodeHeartbeat(ctx context.Context, nodeId string) error {
	if nodeId == "" {
		return commonerrors.NewBadRequest("nodeId is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}
	result, err := db.ExecContext(ctx, heartbeatNodeCmd, nodeId)
	if err != nil {
		klog.ErrorS(err, "failed to update node heartbeat", "id", nodeId)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return commonerrors.NewNotFound(fmt.Sprintf("cascade node %s not found", nodeId))
	}
	return nil
}

// UpdateNodeCredentials stores a freshly issued access key and secret hash.
func (c *Client) UpdateNodeCredentials(ctx context.Context, nodeId, apiKey, secretHash string) error {
	if nodeId == "" {
		return commonerrors.NewBadRequest("nodeId is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}
	cmd := fmt.Sprintf(`UPDATE %s SET api_key=$1, api_secret_hash=$2, updated_at=NOW() WHERE id=$3`, TNode)
	result, err := db.ExecContext(ctx, cmd, apiKey, secretHash, nodeId)
	if err != nil {
		klog.ErrorS(err, "failed to update node credentials", "id", nodeId)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return commonerrors.NewNotFound(fmt.Sprintf("cascade node %s not found", nodeId))
	}
	return nil
}

// SetNodeLastSync stamps last_sync_at after a successful catalog pull.
func (c *Client) SetNodeLastSync(ctx context.Context, nodeId string) error {
	db, err := c.getDB()
	if err != nil {
		return err
	}
	cmd := fmt.Sprintf(`UPDATE %s SET last_sync_at=NOW(), updated_at=NOW() WHERE id=$1`, TNode)
	_, err = db.ExecContext(ctx, cmd, nodeId)
	if err != nil {
		klog.ErrorS(err, "failed to update node last_sync_at", "id", nodeId)
		return err
	}
	return nil
}

// DeleteNode removes a cascade node record.
func (c *Client) DeleteNode(ctx context.Context, nodeId string) error {
	if nodeId == "" {
		return commonerrors.NewBadRequest("nodeId is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}
	cmd := fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, TNode)
	result, err := db.ExecContext(ctx, cmd, nodeId)
	if err != nil {
		klog.ErrorS(err, "failed to delete cascade node", "id", nodeId)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return commonerrors.NewNotFound(fmt.Sprintf("cascade node %s not found", nodeId))
	}
	return nil
}
