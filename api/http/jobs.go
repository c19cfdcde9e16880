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
	"github.com/pkg/errors"

	"github.com/mendersoftware/deviceregistry/app"
	"github.com/mendersoftware/deviceregistry/model"
)

// JobController container for the job end-points
type JobController struct {
	app app.App
}

// NewJobController returns a new JobController
func NewJobController(app app.App) *JobController {
	return &JobController{app: app}
}

// List responds to GET /jobs
func (h JobController) List(c *gin.Context) {
	ctx := c.Request.Context()
	jobs, err := h.app.Jobs().ListJobs(ctx, scopeFromContext(c))
	if err != nil {
		renderError(c, err)
		return
	}
	if jobs == nil {
		jobs = []model.DeviceJobModel{}
	}
	c.JSON(http.StatusOK, jobs)
}

// ListByStatus responds to GET /jobs/status/:status
func (h JobController) ListByStatus(c *gin.Context) {
	ctx := c.Request.Context()
	status, ok := model.ParseJobStatus(c.Param("status"))
	if !ok {
		badRequest(c, errors.Errorf("unknown job status %q", c.Param("status")))
		return
	}
	jobs, err := h.app.Jobs().GetResponsesByStatus(ctx, scopeFromContext(c), status)
	if err != nil {
		renderError(c, err)
		return
	}
	if jobs == nil {
		jobs = []model.JobResponse{}
	}
	c.JSON(http.StatusOK, jobs)
}

// Add responds to POST /jobs
func (h JobController) Add(c *gin.Context) {
	ctx := c.Request.Context()
	var job model.JobRepositoryModel
	if err := c.ShouldBindJSON(&job); err != nil {
		badRequest(c, errors.Wrap(err, "malformed request body"))
		return
	}
	res, err := h.app.Jobs().Add(ctx, scopeFromContext(c), &job)
	if err != nil {
		renderError(c, err)
		return
	}
	c.Header("Location", APIURLManagementJobs+"/"+res.JobID)
	c.JSON(http.StatusCreated, res)
}

// Get responds to GET /jobs/:jobId
func (h JobController) Get(c *gin.Context) {
	ctx := c.Request.Context()
	job, err := h.app.Jobs().GetByJobID(ctx, scopeFromContext(c), c.Param("jobId"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Delete responds to DELETE /jobs/:jobId
func (h JobController) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	err := h.app.Jobs().Delete(ctx, scopeFromContext(c), c.Param("jobId"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Cancel responds to PUT /jobs/:jobId/cancel
func (h JobController) Cancel(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.app.Jobs().CancelJob(ctx, scopeFromContext(c), c.Param("jobId"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Results responds to GET /jobs/:jobId/results
func (h JobController) Results(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.app.Jobs().JobResults(ctx, scopeFromContext(c), c.Param("jobId"))
	if err != nil {
		renderError(c, err)
		return
	}
	if res == nil {
		res = []model.DeviceJob{}
	}
	c.JSON(http.StatusOK, res)
}

// ListByFilter responds to GET /filters/:filterId/jobs
func (h JobController) ListByFilter(c *gin.Context) {
	ctx := c.Request.Context()
	jobs, err := h.app.Jobs().GetByFilterID(ctx, scopeFromContext(c), c.Param("filterId"))
	if err != nil {
		renderError(c, err)
		return
	}
	if jobs == nil {
		jobs = []model.JobRepositoryModel{}
	}
	c.JSON(http.StatusOK, jobs)
}

// ListByUser responds to GET /users/:userName/jobs
func (h JobController) ListByUser(c *gin.Context) {
	ctx := c.Request.Context()
	ids, err := h.app.Jobs().JobIDsByUser(ctx, scopeFromContext(c), c.Param("userName"))
	if err != nil {
		renderError(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, ids)
}
