/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package common

const (
	WeRssRouterRootPath = "api/v1/wx"

	AuthorizationHeader = "Authorization"
	// BearerScheme marks operator requests.
	BearerScheme = "Bearer "
	// AkSkScheme marks worker requests: "AK-SK <access_key>:<secret_key>".
	AkSkScheme = "AK-SK "

	Id = "id"

	// Gin context keys populated by the node authority middleware.
	NodeId   = "nodeId"
	NodeName = "nodeName"

	DefaultQueryLimit = 10

	DefaultSyncLogLimit = 50
	MaxSyncLogLimit     = 200
)
