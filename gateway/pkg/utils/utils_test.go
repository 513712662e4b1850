/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package utils

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gotest.tools/assert"

	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
)

func TestReadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"w1"}`))
	data, err := ReadBody(req)
	assert.NilError(t, err)
	assert.Equal(t, string(data), `{"name":"w1"}`)
}

func TestReadBodyTooLarge(t *testing.T) {
	big := bytes.Repeat([]byte("a"), int(DefaultMaxRequestBodyBytes)+1)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(big))
	_, err := ReadBody(req)
	assert.Assert(t, commonerrors.IsBadRequest(err))
}

func TestParseRequestBody(t *testing.T) {
	var body struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"w1"}`))
	raw, err := ParseRequestBody(req, &body)
	assert.NilError(t, err)
	assert.Equal(t, string(raw), `{"name":"w1"}`)
	assert.Equal(t, body.Name, "w1")
}

func TestParseRequestBodyEmpty(t *testing.T) {
	var body struct{}
	req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	raw, err := ParseRequestBody(req, &body)
	assert.NilError(t, err)
	assert.Assert(t, raw == nil)
}

func TestParseRequestBodyUnknownField(t *testing.T) {
	var body struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"w1","bogus":1}`))
	_, err := ParseRequestBody(req, &body)
	assert.Assert(t, commonerrors.IsBadRequest(err))
}
