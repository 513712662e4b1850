/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package errors

import (
	"database/sql"
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAlreadyExist(t *testing.T) {
	err := NewAlreadyExist("test")
	assert.Equal(t, IsAlreadyExist(err), true)
	err2 := fmt.Errorf("test")
	assert.Equal(t, IsAlreadyExist(err2), false)
	err3 := NewInternalError("test")
	assert.Equal(t, IsAlreadyExist(err3), false)
}

func TestWrapError(t *testing.T) {
	err := WrapError(sql.ErrNoRows, "node not found", NotFound)
	assert.Equal(t, IsNotFound(err), true)
	assert.Equal(t, goerrors.Is(err, sql.ErrNoRows), true)
	assert.Equal(t, GetErrorCode(err), NotFound)

	wrapped := fmt.Errorf("claim failed: %w", err)
	assert.Equal(t, IsNotFound(wrapped), true)
}

func TestIgnoreNotFound(t *testing.T) {
	assert.Equal(t, IgnoreNotFound(nil), nil)
	assert.Equal(t, IgnoreNotFound(NewNotFound("gone")), nil)
	err := NewConflict("already completed")
	assert.Equal(t, IgnoreNotFound(err), error(err))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, GetErrorCode(nil), "")
	assert.Equal(t, GetErrorCode(fmt.Errorf("plain")), "")
	assert.Equal(t, GetErrorCode(NewUnauthorized("bad key")), Unauthorized)
	assert.Equal(t, GetErrorCode(NewConflict("dup")), Conflict)
}

func TestGetMessage(t *testing.T) {
	assert.Equal(t, GetMessage(nil), "")
	assert.Equal(t, GetMessage(fmt.Errorf("plain failure")), "plain failure")
	assert.Equal(t, GetMessage(NewUnauthorized("invalid node credentials")), "invalid node credentials")

	// Neither the wrapped cause nor the stack leaks through.
	wrapped := WrapError(sql.ErrNoRows, "cascade node not found", NotFound)
	assert.Equal(t, GetMessage(wrapped), "cascade node not found")
	rewrapped := fmt.Errorf("lookup: %w", wrapped)
	assert.Equal(t, GetMessage(rewrapped), "cascade node not found")
}
