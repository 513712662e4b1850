/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package config

const (
	// server
	serverPrefix     = "server."
	serverPort       = serverPrefix + "port"
	serverAdminToken = serverPrefix + "admin_token"

	// log
	logPrefix     = "log."
	logFilePath   = logPrefix + "file_path"
	logFileSizeMB = logPrefix + "file_size_mb"

	// db
	dbPrefix               = "db."
	dbHost                 = dbPrefix + "host"
	dbPort                 = dbPrefix + "port"
	dbName                 = dbPrefix + "dbname"
	dbUser                 = dbPrefix + "user"
	dbPassword             = dbPrefix + "password"
	dbPasswordFile         = dbPrefix + "password_file"
	dbSslMode              = dbPrefix + "ssl_mode"
	dbMaxOpenConns         = dbPrefix + "max_open_conns"
	dbMaxIdleConns         = dbPrefix + "max_idle_conns"
	dbMaxLifetime          = dbPrefix + "max_life_time_second"
	dbMaxIdleTimeSecond    = dbPrefix + "max_idle_time_second"
	dbConnectTimeoutSecond = dbPrefix + "connect_timeout_second"
	dbRequestTimeoutSecond = dbPrefix + "request_timeout_second"

	// cascade
	cascadePrefix                  = "cascade."
	cascadeEnable                  = cascadePrefix + "enable"
	cascadeNodeType                = cascadePrefix + "node_type"
	cascadeParentApiUrl            = cascadePrefix + "parent_api_url"
	cascadeApiKey                  = cascadePrefix + "api_key"
	cascadeApiSecret               = cascadePrefix + "api_secret"
	cascadeSyncIntervalSecond      = cascadePrefix + "sync_interval_second"
	cascadeHeartbeatIntervalSecond = cascadePrefix + "heartbeat_interval_second"
	cascadePollIntervalSecond      = cascadePrefix + "poll_interval_second"
	cascadeFeedTimeoutSecond       = cascadePrefix + "feed_timeout_second"
	cascadeHeartbeatWindowSecond   = cascadePrefix + "heartbeat_window_second"
	cascadeReclaimAfterMinute      = cascadePrefix + "reclaim_after_minute"
	cascadeDefaultMaxCapacity      = cascadePrefix + "default_max_capacity"
	cascadeMaxConcurrency          = cascadePrefix + "max_concurrency"
	cascadeSyncServiceUrl          = cascadePrefix + "sync_service_url"

	// notification
	notificationPrefix     = "notification."
	notificationEnable     = notificationPrefix + "enable"
	notificationConfigFile = notificationPrefix + "config_file"
)

// cascade.node_type values. The coordinator is the parent of the tree,
// workers are its children.
const (
	NodeTypeParent = "parent"
	NodeTypeChild  = "child"
)
