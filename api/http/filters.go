// Copyright 2023 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/mendersoftware/deviceregistry/app"
	"github.com/mendersoftware/deviceregistry/model"
)

const (
	defaultRecentFilters = 10
)

// FilterController container for the filter end-points
type FilterController struct {
	app app.App
}

// NewFilterController returns a new FilterController
func NewFilterController(app app.App) *FilterController {
	return &FilterController{app: app}
}

// NameExistsResponse is the body returned by GET /filters/name/:name/exists
type NameExistsResponse struct {
	Exists bool `json:"exists"`
}

// List responds to GET /filters
func (h FilterController) List(c *gin.Context) {
	ctx := c.Request.Context()
	skip, take, err := paging(c, 0)
	if err != nil {
		badRequest(c, err)
		return
	}
	excludeTemporary, err := queryBool(c, ParamExcludeTemporary, true)
	if err != nil {
		badRequest(c, err)
		return
	}
	filters, err := h.app.Filters().List(ctx,
		scopeFromContext(c), skip, take, excludeTemporary)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, filters)
}

// Recent responds to GET /filters/recent
func (h FilterController) Recent(c *gin.Context) {
	ctx := c.Request.Context()
	max, err := queryInt(c, ParamMax, defaultRecentFilters)
	if err != nil {
		badRequest(c, err)
		return
	}
	excludeTemporary, err := queryBool(c, ParamExcludeTemporary, true)
	if err != nil {
		badRequest(c, err)
		return
	}
	filters, err := h.app.Filters().ListRecent(ctx,
		scopeFromContext(c), max, excludeTemporary)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, filters)
}

// Get responds to GET /filters/:filterId
func (h FilterController) Get(c *gin.Context) {
	ctx := c.Request.Context()
	filter, err := h.app.Filters().Get(ctx, scopeFromContext(c), c.Param("filterId"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, filter)
}

// Save responds to POST /filters
func (h FilterController) Save(c *gin.Context) {
	ctx := c.Request.Context()
	force, err := queryBool(c, ParamForce, false)
	if err != nil {
		badRequest(c, err)
		return
	}
	var filter model.DeviceListFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		badRequest(c, errors.Wrap(err, "malformed request body"))
		return
	}
	res, err := h.app.Filters().Save(ctx, scopeFromContext(c), filter, force)
	if err != nil {
		renderError(c, err)
		return
	}
	h.syncJobFilterNames(c, res)
	c.JSON(http.StatusOK, res)
}

// syncJobFilterNames records the current name of filter on the jobs
// started from it. The filter is saved already, failures are only logged.
func (h FilterController) syncJobFilterNames(c *gin.Context, filter *model.DeviceListFilter) {
	ctx := c.Request.Context()
	sc := scopeFromContext(c)
	l := log.FromContext(ctx)
	jobs, err := h.app.Jobs().GetByFilterID(ctx, sc, filter.ID)
	if err != nil {
		l.Warnf("failed to look up the jobs of filter %s: %s", filter.ID, err)
		return
	}
	stale := make([]model.JobRepositoryModel, 0, len(jobs))
	for _, job := range jobs {
		if job.FilterName != filter.Name {
			job.FilterName = filter.Name
			stale = append(stale, job)
		}
	}
	if len(stale) == 0 {
		return
	}
	_, err = h.app.Jobs().UpdateAssociatedFilterName(ctx, sc, stale)
	if err != nil {
		l.Warnf("failed to rename the jobs of filter %s: %s", filter.ID, err)
	}
}

// Delete responds to DELETE /filters/:filterId
func (h FilterController) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	err := h.app.Filters().Delete(ctx, scopeFromContext(c), c.Param("filterId"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Touch responds to PUT /filters/:filterId/touch
func (h FilterController) Touch(c *gin.Context) {
	ctx := c.Request.Context()
	ok, err := h.app.Filters().Touch(ctx, scopeFromContext(c), c.Param("filterId"))
	if err != nil {
		renderError(c, err)
		return
	} else if !ok {
		renderError(c, app.ErrNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// NameExists responds to GET /filters/name/:name/exists
func (h FilterController) NameExists(c *gin.Context) {
	ctx := c.Request.Context()
	exists, err := h.app.Filters().CheckNameExists(ctx,
		scopeFromContext(c), c.Param("name"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, NameExistsResponse{Exists: exists})
}
