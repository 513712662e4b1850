/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package errors

import (
	goerrors "errors"
	"strings"
)

const WeRssPrefix = "WeRss."

/*
   5-digit Error Code Convention: [xx][yyy]
   [xx] Business ID (00–99), used to distinguish errors from different business interfaces.
   00: General errors
   [yyy] Error code range (000–999)
*/

// public: 00xxx
const (
	InternalError = WeRssPrefix + "00001"
	BadRequest    = WeRssPrefix + "00002"
	Forbidden     = WeRssPrefix + "00003"
	AlreadyExist  = WeRssPrefix + "00004"
	NotFound      = WeRssPrefix + "00005"
	Unauthorized  = WeRssPrefix + "00006"
	Conflict      = WeRssPrefix + "00007"
)

// codeForError walks the unwrap chain and returns the code of the
// outermost *Error, or "" when the chain carries none.
func codeForError(err error) string {
	var e *Error
	if goerrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// returns true if the specified error carries a WeRss error code.
func IsWeRss(err error) bool {
	if err == nil {
		return false
	}
	return strings.HasPrefix(codeForError(err), WeRssPrefix)
}

func IsInternal(err error) bool {
	return codeForError(err) == InternalError
}

func IsBadRequest(err error) bool {
	return codeForError(err) == BadRequest
}

func IsForbidden(err error) bool {
	return codeForError(err) == Forbidden
}

func IsAlreadyExist(err error) bool {
	return codeForError(err) == AlreadyExist
}

func IsNotFound(err error) bool {
	return codeForError(err) == NotFound
}

func IsUnauthorized(err error) bool {
	return codeForError(err) == Unauthorized
}

func IsConflict(err error) bool {
	return codeForError(err) == Conflict
}

func IgnoreNotFound(err error) error {
	if err == nil || IsNotFound(err) {
		return nil
	}
	return err
}

func GetErrorCode(err error) string {
	if err == nil || !IsWeRss(err) {
		return ""
	}
	return codeForError(err)
}

// GetMessage returns the caller-facing message of an error. The stack and
// wrapped cause stay out of it; they belong in logs, not in API responses.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var werssErr *Error
	if goerrors.As(err, &werssErr) && werssErr.Message != "" {
		return werssErr.Message
	}
	return err.Error()
}

func NewInternalError(message string) *Error {
	return newError(2).WithCode(InternalError).WithMessage(message)
}

func NewBadRequest(message string) *Error {
	return newError(2).WithCode(BadRequest).WithMessage(message)
}

func NewForbidden(message string) *Error {
	return newError(2).WithCode(Forbidden).WithMessage(message)
}

func NewAlreadyExist(message string) *Error {
	return newError(2).WithCode(AlreadyExist).WithMessage(message)
}

func NewNotFound(message string) *Error {
	return newError(2).WithCode(NotFound).WithMessage(message)
}

func NewUnauthorized(message string) *Error {
	return newError(2).WithCode(Unauthorized).WithMessage(message)
}

func NewConflict(message string) *Error {
	return newError(2).WithCode(Conflict).WithMessage(message)
}
