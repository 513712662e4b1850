/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gotest.tools/assert"

	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
)

func TestAbortWithApiError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		httpCode int
	}{
		{
			"fmt.error",
			fmt.Errorf("test"),
			http.StatusInternalServerError,
		},
		{
			"commonErrors.badRequest",
			commonerrors.NewBadRequest("test"),
			http.StatusBadRequest,
		},
		{
			"commonErrors.unauthorized",
			commonerrors.NewUnauthorized("test"),
			http.StatusUnauthorized,
		},
		{
			"commonErrors.forbidden",
			commonerrors.NewForbidden("test"),
			http.StatusForbidden,
		},
		{
			"commonErrors.notFound",
			commonerrors.NewNotFound("test"),
			http.StatusNotFound,
		},
		{
			"commonErrors.alreadyExist",
			commonerrors.NewAlreadyExist("test"),
			http.StatusConflict,
		},
		{
			"commonErrors.conflict",
			commonerrors.NewConflict("test"),
			http.StatusConflict,
		},
		{
			"apiError",
			NewApiError(http.StatusTeapot, "test"),
			http.StatusTeapot,
		},
	}
	gin.SetMode(gin.ReleaseMode)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rsp := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rsp)
			AbortWithApiError(c, test.err)
			assert.Equal(t, rsp.Code, test.httpCode)

			apiErr := &ApiError{}
			err := json.Unmarshal(rsp.Body.Bytes(), apiErr)
			assert.NilError(t, err)
			assert.Equal(t, apiErr.Code, test.httpCode)
			assert.Equal(t, apiErr.Message, "test")
			assert.Assert(t, apiErr.Data == nil)
		})
	}
}

func TestAbortWithApiErrorJoined(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	rsp := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rsp)

	joined := errors.Join(fmt.Errorf("first"), fmt.Errorf("second"))
	AbortWithApiError(c, joined)
	assert.Equal(t, rsp.Code, http.StatusInternalServerError)
	assert.Equal(t, len(c.Errors), 2)
}

// The envelope must never expose stack frames, file paths, or internal error
// codes; those stay in the access log. A wrapped cause stays hidden too.
func TestAbortWithApiErrorHidesInternals(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	rsp := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rsp)

	wrapped := commonerrors.WrapError(fmt.Errorf("pq: connection refused"),
		"invalid node credentials", commonerrors.Unauthorized)
	AbortWithApiError(c, wrapped)
	assert.Equal(t, rsp.Code, http.StatusUnauthorized)

	apiErr := &ApiError{}
	assert.NilError(t, json.Unmarshal(rsp.Body.Bytes(), apiErr))
	assert.Equal(t, apiErr.Message, "invalid node credentials")
	assert.Assert(t, !strings.Contains(apiErr.Message, "stack"))
	assert.Assert(t, !strings.Contains(apiErr.Message, ".go:"))
	assert.Assert(t, !strings.Contains(apiErr.Message, "connection refused"))
	assert.Assert(t, !strings.Contains(apiErr.Message, commonerrors.WeRssPrefix))
}

func TestSuccessEnvelope(t *testing.T) {
	rsp := Success(map[string]string{"status": "alive"})
	assert.Equal(t, rsp.Code, 0)
	assert.Equal(t, rsp.Message, SuccessMessage)

	data, err := json.Marshal(rsp)
	assert.NilError(t, err)
	assert.Equal(t, string(data), `{"code":0,"message":"success","data":{"status":"alive"}}`)
}

func TestSuccessEnvelopeNullData(t *testing.T) {
	data, err := json.Marshal(Success(nil))
	assert.NilError(t, err)
	assert.Equal(t, string(data), `{"code":0,"message":"success","data":null}`)
}
