/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package authority

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/YourCFP/we-mp-rss/common/pkg/common"
	commonconfig "github.com/YourCFP/we-mp-rss/common/pkg/config"
	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/credential"
)

// ParseOperatorToken checks the bearer token against the configured admin
// token in constant time. An empty configured token locks the operator
// surface rather than opening it.
func ParseOperatorToken(c *gin.Context) error {
	header := c.GetHeader(common.AuthorizationHeader)
	if !strings.HasPrefix(header, common.BearerScheme) {
		return errOperatorUnauthorized()
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, common.BearerScheme))
	configured := commonconfig.GetAdminToken()
	if token == "" || configured == "" {
		return errOperatorUnauthorized()
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(configured)) != 1 {
		return errOperatorUnauthorized()
	}
	return nil
}

// ParseNodeCredentials authenticates the AK-SK header and binds the node
// identity into the gin context. The secret may itself contain ':' so only
// the first colon splits the pair.
func ParseNodeCredentials(c *gin.Context) error {
	header := c.GetHeader(common.AuthorizationHeader)
	if !strings.HasPrefix(header, common.AkSkScheme) {
		return errNodeUnauthorized()
	}
	pair := strings.TrimSpace(strings.TrimPrefix(header, common.AkSkScheme))
	accessKey, secretKey, found := strings.Cut(pair, ":")
	if !found {
		return errNodeUnauthorized()
	}
	verifier := credential.VerifierInstance()
	if verifier == nil {
		return commonerrors.NewInternalError("the credential verifier has not been initialized")
	}
	node, err := verifier.Verify(c.Request.Context(), accessKey, secretKey)
	if err != nil {
		return err
	}
	c.Set(common.NodeId, node.Id)
	c.Set(common.NodeName, node.Name)
	return nil
}

func errOperatorUnauthorized() error {
	return commonerrors.NewUnauthorized("invalid operator token")
}

func errNodeUnauthorized() error {
	return commonerrors.NewUnauthorized("invalid node credentials")
}
