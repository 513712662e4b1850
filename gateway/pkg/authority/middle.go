/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package authority

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/YourCFP/we-mp-rss/common/pkg/common"
	apiutils "github.com/YourCFP/we-mp-rss/gateway/pkg/utils"
)

func Prepare(_ ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(common.Id, strings.TrimSpace(c.Param(common.Id)))
	}
}

// Authorize guards the operator route group.
func Authorize(_ ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ParseOperatorToken(c); err != nil {
			apiutils.AbortWithApiError(c, err)
		}
	}
}

// AuthorizeNode guards the worker route group.
func AuthorizeNode(_ ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ParseNodeCredentials(c); err != nil {
			apiutils.AbortWithApiError(c, err)
		}
	}
}
