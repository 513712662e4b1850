/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
	cascadehandlers "github.com/YourCFP/we-mp-rss/gateway/pkg/handlers/cascade-handlers"
	apiutils "github.com/YourCFP/we-mp-rss/gateway/pkg/utils"
)

// InitHttpHandlers assembles the gin engine: access logging, panic recovery,
// a 404 in the response envelope, and the cascade routes.
func InitHttpHandlers(_ context.Context, h *cascadehandlers.Handler) (*gin.Engine, error) {
	engine := gin.New()
	engine.Use(apiutils.Logger(), gin.Recovery())
	engine.NoRoute(func(c *gin.Context) {
		apiutils.AbortWithApiError(c, commonerrors.NewNotFound(c.Request.RequestURI+" not found"))
	})

	cascadehandlers.InitCascadeRouters(engine, h)
	return engine, nil
}
