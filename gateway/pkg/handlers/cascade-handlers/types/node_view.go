/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package types

import (
	"github.com/YourCFP/we-mp-rss/gateway/pkg/registry"
)

type CreateNodeRequest struct {
	NodeType    *int   `json:"node_type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ApiUrl      string `json:"api_url,omitempty"`
}

type CreateNodeResponse struct {
	NodeId string `json:"node_id"`
}

// UpdateNodeRequest carries the mutable node fields; nil means unchanged.
// SyncConfig is a closed schema, unknown keys are rejected at parse time.
type UpdateNodeRequest struct {
	Name        *string              `json:"name,omitempty"`
	Description *string              `json:"description,omitempty"`
	ApiUrl      *string              `json:"api_url,omitempty"`
	IsActive    *bool                `json:"is_active,omitempty"`
	SyncConfig  *registry.SyncConfig `json:"sync_config,omitempty"`
}

// NodeView is the operator-facing node shape. The secret hash never appears
// here; the api_key is the public half of the credential pair.
type NodeView struct {
	Id                string               `json:"id"`
	NodeType          int                  `json:"node_type"`
	Name              string               `json:"name"`
	Description       string               `json:"description,omitempty"`
	ApiUrl            string               `json:"api_url,omitempty"`
	ApiKey            string               `json:"api_key,omitempty"`
	Status            int                  `json:"status"`
	IsActive          bool                 `json:"is_active"`
	IsOnline          bool                 `json:"is_online"`
	CurrentTasks      int                  `json:"current_tasks"`
	MaxCapacity       int                  `json:"max_capacity"`
	AvailableCapacity int                  `json:"available_capacity"`
	SyncConfig        *registry.SyncConfig `json:"sync_config,omitempty"`
	LastSyncAt        string               `json:"last_sync_at,omitempty"`
	LastHeartbeatAt   string               `json:"last_heartbeat_at,omitempty"`
	CreatedAt         string               `json:"created_at,omitempty"`
	UpdatedAt         string               `json:"updated_at,omitempty"`
}

type ListNodeResponse struct {
	List  []*NodeView `json:"list"`
	Total int         `json:"total"`
}

// CredentialsResponse returns a freshly issued pair. The secret is shown
// exactly once and cannot be recovered afterwards.
type CredentialsResponse struct {
	NodeId    string `json:"node_id"`
	ApiKey    string `json:"api_key"`
	ApiSecret string `json:"api_secret"`
}

type TestConnectionRequest struct {
	ApiKey    string `json:"api_key,omitempty"`
	ApiSecret string `json:"api_secret,omitempty"`
}

type TestConnectionResponse struct {
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}
