/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package authority

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/YourCFP/we-mp-rss/common/pkg/common"
	commonconfig "github.com/YourCFP/we-mp-rss/common/pkg/config"
	dbclient "github.com/YourCFP/we-mp-rss/common/pkg/database/client"
	mock_client "github.com/YourCFP/we-mp-rss/common/pkg/database/client/mock"
	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/credential"
	apiutils "github.com/YourCFP/we-mp-rss/gateway/pkg/utils"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	rsp := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rsp)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, rsp
}

func TestParseOperatorToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	commonconfig.SetValue("server.admin_token", "operator-secret")

	tests := []struct {
		name   string
		header string
		wantOk bool
	}{
		{"valid token", "Bearer operator-secret", true},
		{"wrong token", "Bearer nope", false},
		{"missing scheme", "operator-secret", false},
		{"empty token", "Bearer ", false},
		{"no header", "", false},
		{"aksk scheme on operator route", "AK-SK a:b", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, _ := newTestContext(t)
			if test.header != "" {
				c.Request.Header.Set(common.AuthorizationHeader, test.header)
			}
			err := ParseOperatorToken(c)
			if test.wantOk {
				assert.NoError(t, err)
			} else {
				assert.True(t, commonerrors.IsUnauthorized(err))
			}
		})
	}
}

func TestParseOperatorTokenUnconfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	commonconfig.SetValue("server.admin_token", "")

	c, _ := newTestContext(t)
	c.Request.Header.Set(common.AuthorizationHeader, "Bearer anything")
	err := ParseOperatorToken(c)
	assert.True(t, commonerrors.IsUnauthorized(err))

	commonconfig.SetValue("server.admin_token", "operator-secret")
}

func TestPrepare(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := newTestContext(t)
	c.Params = gin.Params{gin.Param{Key: common.Id, Value: " node-1 "}}
	Prepare()(c)
	assert.Equal(t, "node-1", c.GetString(common.Id))
}

func TestParseNodeCredentialsMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Parsing rejects these before the verifier is ever consulted.
	headers := []string{
		"",
		"Bearer sometoken",
		"AK-SK no-colon-here",
		"AK-SK",
	}
	for _, header := range headers {
		c, _ := newTestContext(t)
		if header != "" {
			c.Request.Header.Set(common.AuthorizationHeader, header)
		}
		err := ParseNodeCredentials(c)
		assert.True(t, commonerrors.IsUnauthorized(err), "header %q", header)
	}
}

func TestAuthorizeNode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_client.NewMockInterface(ctrl)
	credential.NewVerifier(mockDB)

	accessKey := "CNtest-access-key"
	secretKey := "CStest-secret-key"
	node := &dbclient.CascadeNode{
		Id:            "node-1",
		Name:          "worker-1",
		NodeType:      dbclient.NodeTypeWorker,
		ApiKey:        sql.NullString{String: accessKey, Valid: true},
		ApiSecretHash: sql.NullString{String: credential.HashSecret(secretKey), Valid: true},
		IsActive:      true,
	}

	t.Run("valid credentials bind the node", func(t *testing.T) {
		mockDB.EXPECT().GetNodeByApiKey(gomock.Any(), accessKey).Return(node, nil)
		mockDB.EXPECT().UpdateNodeHeartbeat(gomock.Any(), "node-1").Return(nil)

		c, _ := newTestContext(t)
		c.Request.Header.Set(common.AuthorizationHeader, common.AkSkScheme+accessKey+":"+secretKey)
		err := ParseNodeCredentials(c)
		assert.NoError(t, err)
		assert.Equal(t, "node-1", c.GetString(common.NodeId))
		assert.Equal(t, "worker-1", c.GetString(common.NodeName))
	})

	t.Run("wrong secret aborts with 401 envelope", func(t *testing.T) {
		mockDB.EXPECT().GetNodeByApiKey(gomock.Any(), accessKey).Return(node, nil)

		c, rsp := newTestContext(t)
		c.Request.Header.Set(common.AuthorizationHeader, common.AkSkScheme+accessKey+":CSwrong")
		AuthorizeNode()(c)
		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, rsp.Code)

		apiErr := &apiutils.ApiError{}
		assert.NoError(t, json.Unmarshal(rsp.Body.Bytes(), apiErr))
		assert.Equal(t, http.StatusUnauthorized, apiErr.Code)
		assert.Equal(t, "invalid node credentials", apiErr.Message)
	})
}
