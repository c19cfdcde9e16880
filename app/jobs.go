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

package app

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/mendersoftware/deviceregistry/client/jobs"
	"github.com/mendersoftware/deviceregistry/model"
	"github.com/mendersoftware/deviceregistry/scope"
	"github.com/mendersoftware/deviceregistry/store"
)

// JobRegistry keeps the metadata of the jobs started from device lists
// and relays job queries to the job service.
//
//nolint:lll
//go:generate ../utils/mockgen.sh
type JobRegistry interface {
	Add(ctx context.Context, sc scope.Scope, job *model.JobRepositoryModel) (*model.JobRepositoryModel, error)
	Delete(ctx context.Context, sc scope.Scope, jobID string) error
	GetByJobID(ctx context.Context, sc scope.Scope, jobID string) (*model.JobRepositoryModel, error)
	JobIDsByUser(ctx context.Context, sc scope.Scope, userName string) ([]string, error)
	GetByFilterID(ctx context.Context, sc scope.Scope, filterID string) ([]model.JobRepositoryModel, error)
	GetResponsesByStatus(ctx context.Context, sc scope.Scope, status model.JobStatus) ([]model.JobResponse, error)
	UpdateAssociatedFilterName(ctx context.Context, sc scope.Scope, records []model.JobRepositoryModel) ([]*model.JobRepositoryModel, error)
	ListJobs(ctx context.Context, sc scope.Scope) ([]model.DeviceJobModel, error)
	CancelJob(ctx context.Context, sc scope.Scope, jobID string) (*model.JobResponse, error)
	JobResults(ctx context.Context, sc scope.Scope, jobID string) ([]model.DeviceJob, error)
}

// JobRegistryConfig holds the job service client and the creator policy
type JobRegistryConfig struct {
	Jobs jobs.Client
	// RequireJobCreator stamps the creator on new jobs and restricts
	// the job list of a user to the jobs the user created.
	RequireJobCreator bool
}

type jobRegistry struct {
	store             store.DataStore
	jobs              jobs.Client
	requireJobCreator bool
}

// NewJobRegistry returns the JobRegistry backed by ds
func NewJobRegistry(ds store.DataStore, config JobRegistryConfig) JobRegistry {
	return &jobRegistry{
		store:             ds,
		jobs:              config.Jobs,
		requireJobCreator: config.RequireJobCreator,
	}
}

func (r *jobRegistry) Add(
	ctx context.Context,
	sc scope.Scope,
	job *model.JobRepositoryModel,
) (*model.JobRepositoryModel, error) {
	if job == nil {
		return nil, ErrRequiredPropertyMissing
	}
	if err := job.Validate(); err != nil {
		return nil, withKind(ErrRequiredPropertyMissing, err)
	}
	existing, err := r.record(ctx, job.JobID, job.FilterID)
	if err != nil {
		return nil, err
	}
	if existing != nil && !r.mayModify(sc, existing) {
		return nil, ErrForbidden
	}
	if r.requireJobCreator || sc.MultiTenant {
		job.UserName = sc.UserName
	}
	if err := r.store.InsertOrReplaceJob(ctx, job); err != nil {
		return nil, withKind(ErrSaveFailed, err)
	}
	return job, nil
}

// single returns the only job record with the given id
func (r *jobRegistry) single(ctx context.Context, jobID string) (*model.JobRepositoryModel, error) {
	if jobID == "" {
		return nil, ErrInvalidArgument
	}
	records, err := r.store.QueryJobs(ctx, store.TableQuery{PartitionKey: jobID})
	if err != nil {
		return nil, storeError(err, "app: failed to query jobs")
	}
	switch len(records) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &records[0], nil
	default:
		return nil, errors.Wrapf(ErrDataIntegrity,
			"%d records share the job id %s", len(records), jobID)
	}
}

// record returns the job record keyed by jobID and filterID, nil if absent
func (r *jobRegistry) record(
	ctx context.Context,
	jobID, filterID string,
) (*model.JobRepositoryModel, error) {
	records, err := r.store.QueryJobs(ctx, store.TableQuery{
		PartitionKey: jobID,
		RowKey:       filterID,
	})
	if err != nil {
		return nil, storeError(err, "app: failed to query jobs")
	}
	for i := range records {
		if records[i].JobID == jobID && records[i].FilterID == filterID {
			return &records[i], nil
		}
	}
	return nil, nil
}

// mayModify returns true if the caller may act on job
func (r *jobRegistry) mayModify(sc scope.Scope, job *model.JobRepositoryModel) bool {
	if !sc.Owns(job.UserName) {
		return false
	}
	return !r.requireJobCreator || sc.SuperAdmin || job.CreatorAlias() == sc.ShortName
}

func (r *jobRegistry) Delete(ctx context.Context, sc scope.Scope, jobID string) error {
	job, err := r.GetByJobID(ctx, sc, jobID)
	if err != nil {
		return err
	}
	err = r.store.DeleteJob(ctx, job.JobID, job.FilterID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return withKind(ErrDeleteFailed, err)
	}
	return nil
}

// GetByJobID returns the job record; jobs of other users are reported
// as not found.
func (r *jobRegistry) GetByJobID(
	ctx context.Context,
	sc scope.Scope,
	jobID string,
) (*model.JobRepositoryModel, error) {
	job, err := r.single(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !sc.Owns(job.UserName) {
		return nil, ErrNotFound
	}
	return job, nil
}

// JobIDsByUser returns the ids of the jobs created by userName, the
// caller by default.
func (r *jobRegistry) JobIDsByUser(
	ctx context.Context,
	sc scope.Scope,
	userName string,
) ([]string, error) {
	if userName == "" {
		userName = sc.UserName
	}
	if !sc.Owns(userName) {
		return nil, ErrForbidden
	}
	records, err := r.store.QueryJobs(ctx, store.TableQuery{UserName: userName})
	if err != nil {
		return nil, storeError(err, "app: failed to query jobs")
	}
	ids := make([]string, 0, len(records))
	for _, job := range records {
		ids = append(ids, job.JobID)
	}
	return ids, nil
}

func (r *jobRegistry) GetByFilterID(
	ctx context.Context,
	sc scope.Scope,
	filterID string,
) ([]model.JobRepositoryModel, error) {
	if filterID == "" {
		return nil, ErrInvalidArgument
	}
	records, err := r.store.QueryJobs(ctx, store.TableQuery{RowKey: filterID})
	if err != nil {
		return nil, storeError(err, "app: failed to query jobs")
	}
	owned := make([]model.JobRepositoryModel, 0, len(records))
	for _, job := range records {
		if sc.Owns(job.UserName) {
			owned = append(owned, job)
		}
	}
	return owned, nil
}

// allResponses drains a job service query
func (r *jobRegistry) allResponses(
	ctx context.Context,
	status *model.JobStatus,
) ([]model.JobResponse, error) {
	q := r.jobs.CreateQuery("", status)
	responses := []model.JobResponse{}
	for q.HasMoreResults() {
		page, err := q.Next(ctx)
		if err != nil {
			return nil, storeError(err, "app: failed to query job service")
		}
		responses = append(responses, page...)
	}
	return responses, nil
}

// ownedJobs returns the set of job ids the caller may see, nil when the
// caller is not restricted.
func (r *jobRegistry) ownedJobs(ctx context.Context, sc scope.Scope) (map[string]bool, error) {
	if !sc.Active() {
		return nil, nil
	}
	ids, err := r.JobIDsByUser(ctx, sc, sc.UserName)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]bool, len(ids))
	for _, id := range ids {
		owned[id] = true
	}
	return owned, nil
}

// GetResponsesByStatus returns the jobs with the given status. The job
// service cannot query scheduled jobs, those are filtered here.
func (r *jobRegistry) GetResponsesByStatus(
	ctx context.Context,
	sc scope.Scope,
	status model.JobStatus,
) ([]model.JobResponse, error) {
	var queryStatus *model.JobStatus
	if status != model.JobStatusScheduled {
		queryStatus = &status
	}
	responses, err := r.allResponses(ctx, queryStatus)
	if err != nil {
		return nil, err
	}
	owned, err := r.ownedJobs(ctx, sc)
	if err != nil {
		return nil, err
	}
	result := make([]model.JobResponse, 0, len(responses))
	for _, rsp := range responses {
		if queryStatus == nil && rsp.Status != status {
			continue
		}
		if owned != nil && !owned[rsp.JobID] {
			continue
		}
		result = append(result, rsp)
	}
	return result, nil
}

// UpdateAssociatedFilterName copies the filter name of the given records
// onto the stored jobs. The result holds the stored record for every job,
// nil where the job is missing, owned by someone else or the write failed.
func (r *jobRegistry) UpdateAssociatedFilterName(
	ctx context.Context,
	sc scope.Scope,
	records []model.JobRepositoryModel,
) ([]*model.JobRepositoryModel, error) {
	updated := make([]*model.JobRepositoryModel, len(records))
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	_, err := fanOut(ctx, "update_job_filter_name", idx,
		func(ctx context.Context, i int) error {
			job, err := r.record(ctx, records[i].JobID, records[i].FilterID)
			if err != nil {
				return err
			} else if job == nil {
				return ErrNotFound
			}
			if !sc.Owns(job.UserName) {
				return ErrForbidden
			}
			job.FilterName = records[i].FilterName
			if err := r.store.InsertOrReplaceJob(ctx, job); err != nil {
				return err
			}
			updated[i] = job
			return nil
		})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// ListJobs returns every visible job, newest first, decorated with the
// registry metadata.
func (r *jobRegistry) ListJobs(ctx context.Context, sc scope.Scope) ([]model.DeviceJobModel, error) {
	responses, err := r.allResponses(ctx, nil)
	if err != nil {
		return nil, err
	}
	records, err := r.store.QueryJobs(ctx, store.TableQuery{})
	if err != nil {
		return nil, storeError(err, "app: failed to query jobs")
	}
	known := make(map[string]model.JobRepositoryModel, len(records))
	for _, job := range records {
		known[job.JobID] = job
	}

	sort.SliceStable(responses, func(i, j int) bool {
		return timeOrZero(responses[i].CreatedTime).
			After(timeOrZero(responses[j].CreatedTime))
	})
	result := make([]model.DeviceJobModel, 0, len(responses))
	for _, rsp := range responses {
		job, ok := known[rsp.JobID]
		if sc.Active() && (!ok || job.UserName != sc.UserName) {
			continue
		}
		if r.requireJobCreator && !sc.SuperAdmin && job.CreatorAlias() != sc.ShortName {
			continue
		}
		result = append(result, model.DeviceJobModel{
			JobResponse:  rsp,
			JobName:      job.JobName,
			FilterID:     job.FilterID,
			FilterName:   job.FilterName,
			MethodName:   job.MethodName,
			CreatorAlias: job.CreatorAlias(),
		})
	}
	return result, nil
}

// authorize checks the caller may act on jobID
func (r *jobRegistry) authorize(ctx context.Context, sc scope.Scope, jobID string) error {
	if jobID == "" {
		return ErrInvalidArgument
	}
	restricted := r.requireJobCreator && !sc.SuperAdmin
	if !sc.Active() && !restricted {
		return nil
	}
	job, err := r.single(ctx, jobID)
	if err != nil {
		return err
	}
	if !r.mayModify(sc, job) {
		return ErrAccessDenied
	}
	return nil
}

func jobServiceError(err error) error {
	if errors.Is(err, jobs.ErrJobNotFound) {
		return ErrNotFound
	}
	return storeError(err, "app: job service request failed")
}

func (r *jobRegistry) CancelJob(
	ctx context.Context,
	sc scope.Scope,
	jobID string,
) (*model.JobResponse, error) {
	if err := r.authorize(ctx, sc, jobID); err != nil {
		return nil, err
	}
	rsp, err := r.jobs.CancelJob(ctx, jobID)
	if err != nil {
		return nil, jobServiceError(err)
	}
	return rsp, nil
}

// JobResults returns the per device outcome of a job, newest first
func (r *jobRegistry) JobResults(
	ctx context.Context,
	sc scope.Scope,
	jobID string,
) ([]model.DeviceJob, error) {
	if err := r.authorize(ctx, sc, jobID); err != nil {
		return nil, err
	}
	results, err := r.jobs.DeviceJobs(ctx, jobID)
	if err != nil {
		return nil, jobServiceError(err)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return timeOrZero(results[i].CreatedDateTimeUtc).
			After(timeOrZero(results[j].CreatedDateTimeUtc))
	})
	return results, nil
}
