// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package api

import (
	stderrors "errors"
	"net/http"

	"github.com/geohub-io/geohub/internal/errors"
	"github.com/geohub-io/geohub/internal/event"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  uint32 `json:"code,omitempty"`
}

// statusFromError maps a domain error to an HTTP status.  Anything
// unclassified, including resolution failures, is a 500: a failed rights
// resolution is a system error and must never read as a denial.
func statusFromError(err error) int {
	var domainErr *errors.Err
	if !stderrors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}
	switch domainErr.Code {
	case errors.Unauthenticated:
		return http.StatusUnauthorized
	case errors.Forbidden:
		return http.StatusForbidden
	case errors.RecordNotFound:
		return http.StatusNotFound
	case errors.InvalidParameter, errors.InvalidConnectorId, errors.MalformedGrant:
		return http.StatusBadRequest
	case errors.NotUnique:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError finishes the request with the status and body for err.
// Server-side failures are also written to the error event stream.
func abortWithError(c *gin.Context, caller event.Op, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		event.WriteError(c.Request.Context(), caller, err)
	}
	resp := ErrorResponse{Error: err.Error()}
	var domainErr *errors.Err
	if stderrors.As(err, &domainErr) {
		resp.Code = uint32(domainErr.Code)
	}
	c.AbortWithStatusJSON(status, resp)
}
