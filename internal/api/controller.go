// Copyright (c) GeoHub, Inc.
// SPDX-License-Identifier: MPL-2.0

package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/geohub-io/geohub/internal/authz"
	"github.com/geohub-io/geohub/internal/connector"
	"github.com/geohub-io/geohub/internal/errors"
	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

// Controller holds the collaborators the connector routes need.
type Controller struct {
	repo  connector.Repository
	authz *authz.Service
}

// NewController creates a Controller backed by the given repository.  The
// same repository serves both persistence and ownership resolution.
func NewController(ctx context.Context, repo connector.Repository) (*Controller, error) {
	const op = "api.NewController"
	if repo == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing repository")
	}
	svc, err := authz.NewService(ctx, repo)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return &Controller{repo: repo, authz: svc}, nil
}

// NewRouter builds the gin engine with the connector routes registered
// behind request-info and bearer-token middleware.
func NewRouter(ctx context.Context, c *Controller, keyfunc jwt.Keyfunc) (*gin.Engine, error) {
	const op = "api.NewRouter"
	if c == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing controller")
	}
	if keyfunc == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing keyfunc")
	}
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), RequestInfo())

	grp := r.Group("/connectors", Authenticate(keyfunc))
	grp.GET("", c.ListConnectors)
	grp.POST("", c.CreateConnector)
	grp.GET("/:connectorId", c.GetConnector)
	grp.PUT("/:connectorId", c.ReplaceConnector)
	grp.PATCH("/:connectorId", c.PatchConnector)
	grp.DELETE("/:connectorId", c.DeleteConnector)
	return r, nil
}

// ListConnectors handles GET /connectors.  Without query parameters it
// returns the caller's own connectors; with one or more id parameters it
// returns exactly those connectors, each of which the caller must be
// entitled to manage.
func (ctl *Controller) ListConnectors(c *gin.Context) {
	const op = "api.(Controller).ListConnectors"
	ctx := c.Request.Context()
	ident, ok := identityFrom(c)
	if !ok {
		abortWithError(c, op, errors.New(ctx, errors.Unauthenticated, op, "no identity on request"))
		return
	}

	ids := c.QueryArray("id")
	if len(ids) == 0 {
		if err := ctl.authz.AuthorizeManageAll(ctx, ident); err != nil {
			abortWithError(c, op, err)
			return
		}
		ret, err := ctl.repo.ListConnectors(ctx, connector.WithOwner(ident.CallerId))
		if err != nil {
			abortWithError(c, op, errors.Wrap(ctx, err, op))
			return
		}
		c.JSON(http.StatusOK, ret)
		return
	}

	if err := ctl.authz.AuthorizeManage(ctx, ident, ids...); err != nil {
		abortWithError(c, op, err)
		return
	}
	ret, err := ctl.repo.ListConnectors(ctx, connector.WithIds(ids...))
	if err != nil {
		abortWithError(c, op, errors.Wrap(ctx, err, op))
		return
	}
	c.JSON(http.StatusOK, ret)
}

// CreateConnector handles POST /connectors.  The body must carry the new
// connector's id; the caller becomes its owner.
func (ctl *Controller) CreateConnector(c *gin.Context) {
	const op = "api.(Controller).CreateConnector"
	ctx := c.Request.Context()
	ident, ok := identityFrom(c)
	if !ok {
		abortWithError(c, op, errors.New(ctx, errors.Unauthenticated, op, "no identity on request"))
		return
	}

	in, err := bindConnector(c)
	if err != nil {
		abortWithError(c, op, err)
		return
	}
	if in.Id == "" {
		abortWithError(c, op, errors.New(ctx, errors.InvalidParameter, op, "request body has no connector id"))
		return
	}
	if err := connector.ValidateId(ctx, in.Id); err != nil {
		abortWithError(c, op, errors.Wrap(ctx, err, op))
		return
	}
	if in.Owner != "" && in.Owner != ident.CallerId {
		abortWithError(c, op, errors.New(ctx, errors.InvalidParameter, op, "owner must be the caller"))
		return
	}
	in.Owner = ident.CallerId

	if err := ctl.authz.AuthorizeManage(ctx, ident, in.Id); err != nil {
		abortWithError(c, op, err)
		return
	}
	ret, err := ctl.repo.CreateConnector(ctx, in)
	if err != nil {
		abortWithError(c, op, errors.Wrap(ctx, err, op))
		return
	}
	c.JSON(http.StatusCreated, ret)
}

// GetConnector handles GET /connectors/:connectorId.
func (ctl *Controller) GetConnector(c *gin.Context) {
	const op = "api.(Controller).GetConnector"
	ctx := c.Request.Context()
	ident, ok := identityFrom(c)
	if !ok {
		abortWithError(c, op, errors.New(ctx, errors.Unauthenticated, op, "no identity on request"))
		return
	}
	id := c.Param("connectorId")

	if err := ctl.authz.AuthorizeManage(ctx, ident, id); err != nil {
		abortWithError(c, op, err)
		return
	}
	ret, err := ctl.repo.LookupConnector(ctx, id)
	if err != nil {
		abortWithError(c, op, errors.Wrap(ctx, err, op))
		return
	}
	c.JSON(http.StatusOK, ret)
}

// ReplaceConnector handles PUT /connectors/:connectorId, replacing the
// connector or creating it when it does not exist yet.  A body id, when
// present, must match the path.
func (ctl *Controller) ReplaceConnector(c *gin.Context) {
	const op = "api.(Controller).ReplaceConnector"
	ctx := c.Request.Context()
	ident, ok := identityFrom(c)
	if !ok {
		abortWithError(c, op, errors.New(ctx, errors.Unauthenticated, op, "no identity on request"))
		return
	}
	id := c.Param("connectorId")

	in, err := bindConnector(c)
	if err != nil {
		abortWithError(c, op, err)
		return
	}
	if in.Id != "" && in.Id != id {
		abortWithError(c, op, errors.New(ctx, errors.InvalidParameter, op, "body id does not match the path"))
		return
	}
	in.Id = id
	if err := connector.ValidateId(ctx, in.Id); err != nil {
		abortWithError(c, op, errors.Wrap(ctx, err, op))
		return
	}

	if err := ctl.authz.AuthorizeManage(ctx, ident, id); err != nil {
		abortWithError(c, op, err)
		return
	}

	prev, err := ctl.repo.LookupConnector(ctx, id)
	switch {
	case err == nil:
		// replacement keeps the stored owner
		if in.Owner != "" && in.Owner != prev.Owner {
			abortWithError(c, op, errors.New(ctx, errors.InvalidParameter, op, "owner must not change"))
			return
		}
		in.Owner = prev.Owner
		ret, err := ctl.repo.ReplaceConnector(ctx, in)
		if err != nil {
			abortWithError(c, op, errors.Wrap(ctx, err, op))
			return
		}
		c.JSON(http.StatusOK, ret)
	case errors.IsNotFoundError(err):
		if in.Owner != "" && in.Owner != ident.CallerId {
			abortWithError(c, op, errors.New(ctx, errors.InvalidParameter, op, "owner must be the caller"))
			return
		}
		in.Owner = ident.CallerId
		ret, err := ctl.repo.CreateConnector(ctx, in)
		if err != nil {
			abortWithError(c, op, errors.Wrap(ctx, err, op))
			return
		}
		c.JSON(http.StatusCreated, ret)
	default:
		abortWithError(c, op, errors.Wrap(ctx, err, op))
	}
}

// PatchConnector handles PATCH /connectors/:connectorId with a JSON merge
// document.
func (ctl *Controller) PatchConnector(c *gin.Context) {
	const op = "api.(Controller).PatchConnector"
	ctx := c.Request.Context()
	ident, ok := identityFrom(c)
	if !ok {
		abortWithError(c, op, errors.New(ctx, errors.Unauthenticated, op, "no identity on request"))
		return
	}
	id := c.Param("connectorId")

	patch, err := io.ReadAll(c.Request.Body)
	if err != nil {
		abortWithError(c, op, errors.New(ctx, errors.Io, op, "unable to read request body", errors.WithWrap(err)))
		return
	}

	if err := ctl.authz.AuthorizeManage(ctx, ident, id); err != nil {
		abortWithError(c, op, err)
		return
	}
	prev, err := ctl.repo.LookupConnector(ctx, id)
	if err != nil {
		abortWithError(c, op, errors.Wrap(ctx, err, op))
		return
	}
	next, err := prev.Patch(ctx, patch)
	if err != nil {
		abortWithError(c, op, errors.Wrap(ctx, err, op))
		return
	}
	ret, err := ctl.repo.ReplaceConnector(ctx, next)
	if err != nil {
		abortWithError(c, op, errors.Wrap(ctx, err, op))
		return
	}
	c.JSON(http.StatusOK, ret)
}

// DeleteConnector handles DELETE /connectors/:connectorId and returns the
// deleted record.
func (ctl *Controller) DeleteConnector(c *gin.Context) {
	const op = "api.(Controller).DeleteConnector"
	ctx := c.Request.Context()
	ident, ok := identityFrom(c)
	if !ok {
		abortWithError(c, op, errors.New(ctx, errors.Unauthenticated, op, "no identity on request"))
		return
	}
	id := c.Param("connectorId")

	if err := ctl.authz.AuthorizeManage(ctx, ident, id); err != nil {
		abortWithError(c, op, err)
		return
	}
	ret, err := ctl.repo.DeleteConnector(ctx, id)
	if err != nil {
		abortWithError(c, op, errors.Wrap(ctx, err, op))
		return
	}
	c.JSON(http.StatusOK, ret)
}

// bindConnector decodes the request body into a Connector.
func bindConnector(c *gin.Context) (*connector.Connector, error) {
	const op = "api.bindConnector"
	ctx := c.Request.Context()
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, errors.New(ctx, errors.Io, op, "unable to read request body", errors.WithWrap(err))
	}
	if len(body) == 0 {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing request body")
	}
	in := &connector.Connector{}
	if err := json.Unmarshal(body, in); err != nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "invalid request body", errors.WithWrap(err))
	}
	return in, nil
}
