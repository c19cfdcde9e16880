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

package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/mendersoftware/go-lib-micro/requestid"
	"github.com/pkg/errors"

	"github.com/mendersoftware/deviceregistry/model"
)

const (
	URIQuery      = "/api/internal/v1/jobs/tenants/:tid/query"
	URIJob        = "/api/internal/v1/jobs/tenants/:tid/jobs/:id"
	URIJobCancel  = "/api/internal/v1/jobs/tenants/:tid/jobs/:id/cancel"
	URIDeviceJobs = "/api/internal/v1/jobs/tenants/:tid/jobs/:id/devices"

	defaultTimeout  = 10 * time.Second
	defaultPageSize = 100
)

var (
	ErrJobNotFound = errors.New("jobs: job not found")
)

// Client is the job service client
//
//go:generate ../../utils/mockgen.sh
type Client interface {
	CreateQuery(condition string, status *model.JobStatus) Query
	GetJob(ctx context.Context, jobID string) (*model.JobResponse, error)
	CancelJob(ctx context.Context, jobID string) (*model.JobResponse, error)
	DeviceJobs(ctx context.Context, jobID string) ([]model.DeviceJob, error)
}

// Query is a paged job query; Next fetches the following page until
// HasMoreResults reports false.
//
//go:generate ../../utils/mockgen.sh
type Query interface {
	HasMoreResults() bool
	Next(ctx context.Context) ([]model.JobResponse, error)
}

type client struct {
	client  *http.Client
	uriBase string
}

// NewClient returns a job service client; timeout is in seconds
func NewClient(uriBase string, timeout int) Client {
	t := time.Duration(timeout) * time.Second
	if t <= 0 {
		t = defaultTimeout
	}
	return &client{
		uriBase: strings.TrimSuffix(uriBase, "/"),
		client:  &http.Client{Timeout: t},
	}
}

type queryRequest struct {
	Condition         string           `json:"condition,omitempty"`
	Status            *model.JobStatus `json:"status,omitempty"`
	PageSize          int              `json:"page_size"`
	ContinuationToken string           `json:"continuation_token,omitempty"`
}

type queryResponse struct {
	Jobs              []model.JobResponse `json:"jobs"`
	ContinuationToken string              `json:"continuation_token,omitempty"`
}

func (c *client) url(ctx context.Context, uri, jobID string) string {
	var tenantID string
	if id := identity.FromContext(ctx); id != nil {
		tenantID = id.Tenant
	}
	repl := strings.NewReplacer(
		":tid", url.PathEscape(tenantID),
		":id", url.PathEscape(jobID),
	)
	return c.uriBase + repl.Replace(uri)
}

func (c *client) do(
	ctx context.Context,
	method, url string,
	body interface{},
	v interface{},
) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "jobs: failed to serialize request")
		}
		payload = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return errors.Wrap(err, "jobs: error preparing HTTP request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID := requestid.FromContext(ctx); reqID != "" {
		req.Header.Set(requestid.RequestIdHeader, reqID)
	}
	rsp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "jobs: %s request failed", method)
	}
	defer rsp.Body.Close()

	switch rsp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrJobNotFound
	default:
		return errors.Errorf(
			"jobs: unexpected HTTP status from job service: %s",
			rsp.Status,
		)
	}
	if err := json.NewDecoder(rsp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "jobs: error parsing response")
	}
	return nil
}

func (c *client) CreateQuery(condition string, status *model.JobStatus) Query {
	return &query{
		client: c,
		request: queryRequest{
			Condition: condition,
			Status:    status,
			PageSize:  defaultPageSize,
		},
		more: true,
	}
}

func (c *client) GetJob(ctx context.Context, jobID string) (*model.JobResponse, error) {
	job := &model.JobResponse{}
	err := c.do(ctx, http.MethodGet, c.url(ctx, URIJob, jobID), nil, job)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (c *client) CancelJob(ctx context.Context, jobID string) (*model.JobResponse, error) {
	log.FromContext(ctx).Infof("cancel job %s", jobID)
	job := &model.JobResponse{}
	err := c.do(ctx, http.MethodPost, c.url(ctx, URIJobCancel, jobID), nil, job)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (c *client) DeviceJobs(ctx context.Context, jobID string) ([]model.DeviceJob, error) {
	jobs := []model.DeviceJob{}
	err := c.do(ctx, http.MethodGet, c.url(ctx, URIDeviceJobs, jobID), nil, &jobs)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

type query struct {
	client  *client
	request queryRequest
	more    bool
}

func (q *query) HasMoreResults() bool {
	return q.more
}

func (q *query) Next(ctx context.Context) ([]model.JobResponse, error) {
	if !q.more {
		return []model.JobResponse{}, nil
	}
	var rsp queryResponse
	err := q.client.do(ctx, http.MethodPost,
		q.client.url(ctx, URIQuery, ""),
		q.request,
		&rsp,
	)
	if err != nil {
		return nil, err
	}
	q.request.ContinuationToken = rsp.ContinuationToken
	q.more = rsp.ContinuationToken != ""
	if rsp.Jobs == nil {
		rsp.Jobs = []model.JobResponse{}
	}
	return rsp.Jobs, nil
}
