/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
)

const SuccessMessage = "success"

// ApiResponse is the envelope returned by every gateway endpoint.
// Code is 0 on success; on error it mirrors the HTTP status code.
type ApiResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success wraps data in a zero-code envelope.
func Success(data interface{}) *ApiResponse {
	return &ApiResponse{
		Code:    0,
		Message: SuccessMessage,
		Data:    data,
	}
}

// ApiError is an error that already knows its envelope form.
// Handlers may return one directly to pin a specific HTTP status.
type ApiError struct {
	HttpCode int         `json:"-"`
	Code     int         `json:"code"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
}

func (err *ApiError) Error() string {
	return err.Message
}

func NewApiError(httpCode int, message string) *ApiError {
	return &ApiError{
		HttpCode: httpCode,
		Code:     httpCode,
		Message:  message,
	}
}

// AbortWithApiError handles the error, converts it into the envelope format,
// and aborts the request with the matching HTTP status.
func AbortWithApiError(c *gin.Context, err error) {
	handleErrors(c, err)
	rsp := cvtToErrResponse(err)
	c.AbortWithStatusJSON(rsp.HttpCode, rsp)
}

// cvtToErrResponse converts an error into the envelope format. An *ApiError is
// used as-is; otherwise the error code decides the HTTP status. AlreadyExist
// and Conflict both map to 409: a duplicate dispatch and a rejected status
// transition are the same condition from the caller's point of view.
func cvtToErrResponse(err error) ApiError {
	var result *ApiError
	if errors.As(err, &result) {
		return *result
	}
	httpCode := http.StatusInternalServerError
	switch {
	case commonerrors.IsBadRequest(err):
		httpCode = http.StatusBadRequest
	case commonerrors.IsUnauthorized(err):
		httpCode = http.StatusUnauthorized
	case commonerrors.IsForbidden(err):
		httpCode = http.StatusForbidden
	case commonerrors.IsNotFound(err):
		httpCode = http.StatusNotFound
	case commonerrors.IsAlreadyExist(err), commonerrors.IsConflict(err):
		httpCode = http.StatusConflict
	}
	// Only the message goes to the caller; the stack and wrapped cause stay
	// in the access log.
	return ApiError{
		HttpCode: httpCode,
		Code:     httpCode,
		Message:  commonerrors.GetMessage(err),
	}
}

// handleErrors attaches the error (or every error of a joined error) to the
// gin context so the access log middleware can report them.
func handleErrors(c *gin.Context, err error) {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}
	for _, val := range errs {
		if val != nil {
			_ = c.Error(val)
		}
	}
}
