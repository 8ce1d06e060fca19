// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package api

import (
	"strings"

	"github.com/geohub-io/geohub/internal/authz"
	"github.com/geohub-io/geohub/internal/errors"
	"github.com/geohub-io/geohub/internal/event"
	"github.com/geohub-io/geohub/internal/token"
	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

// identityKey is the gin context key the authenticated Identity is stored
// under.
const identityKey = "geohub.identity"

// RequestInfo assigns every request an id and threads a RequestInfo through
// the request context for the event stream.
func RequestInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		const op = "api.RequestInfo"
		id, err := event.NewId("req")
		if err != nil {
			abortWithError(c, op, errors.Wrap(c.Request.Context(), err, op, errors.WithCode(errors.Internal)))
			return
		}
		info := &event.RequestInfo{
			Id:       id,
			Method:   c.Request.Method,
			Path:     c.Request.URL.Path,
			ClientIp: c.ClientIP(),
		}
		ctx, err := event.NewRequestInfoContext(c.Request.Context(), info)
		if err != nil {
			abortWithError(c, op, errors.Wrap(c.Request.Context(), err, op, errors.WithCode(errors.Internal)))
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Authenticate validates the bearer token with the given keyfunc and stores
// the decoded Identity in the gin context.  Requests without a valid
// credential never reach a handler.
func Authenticate(keyfunc jwt.Keyfunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		const op = "api.Authenticate"
		ctx := c.Request.Context()

		raw := c.GetHeader("Authorization")
		switch {
		case raw == "":
			abortWithError(c, op, errors.New(ctx, errors.Unauthenticated, op, "missing authorization header"))
			return
		case !strings.HasPrefix(raw, "Bearer "):
			abortWithError(c, op, errors.New(ctx, errors.Unauthenticated, op, "authorization header is not a bearer token"))
			return
		}

		ident, err := token.Parse(ctx, strings.TrimPrefix(raw, "Bearer "), keyfunc)
		if err != nil {
			abortWithError(c, op, errors.Wrap(ctx, err, op))
			return
		}
		if info, ok := event.RequestInfoFromContext(ctx); ok {
			info.CallerId = ident.CallerId
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// identityFrom returns the Identity the Authenticate middleware stored.
func identityFrom(c *gin.Context) (authz.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return authz.Identity{}, false
	}
	ident, ok := v.(authz.Identity)
	return ident, ok
}
