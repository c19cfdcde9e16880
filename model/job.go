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

package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// JobStatus is the status of a device job as reported by the job service
type JobStatus string

// Job statuses
const (
	JobStatusUnknown   JobStatus = "unknown"
	JobStatusEnqueued  JobStatus = "enqueued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
	JobStatusScheduled JobStatus = "scheduled"
	JobStatusQueued    JobStatus = "queued"
)

var jobStatuses = []JobStatus{
	JobStatusUnknown, JobStatusEnqueued, JobStatusRunning,
	JobStatusCompleted, JobStatusFailed, JobStatusCancelled,
	JobStatusScheduled, JobStatusQueued,
}

// ParseJobStatus parses s case-insensitively
func ParseJobStatus(s string) (JobStatus, bool) {
	for _, st := range jobStatuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return JobStatusUnknown, false
}

// JobRepositoryModel is the job metadata kept by the registry
type JobRepositoryModel struct {
	JobID      string `json:"jobId" bson:"partition_key"`
	FilterID   string `json:"filterId" bson:"row_key"`
	JobName    string `json:"jobName" bson:"job_name"`
	FilterName string `json:"filterName" bson:"filter_name"`
	MethodName string `json:"methodName,omitempty" bson:"method_name,omitempty"`
	UserName   string `json:"userName,omitempty" bson:"user_name,omitempty"`
}

// Validate checks the job identity is present
func (j JobRepositoryModel) Validate() error {
	return validation.ValidateStruct(&j,
		validation.Field(&j.JobID, validation.Required),
	)
}

// CreatorAlias returns the local part of the creator user name
func (j JobRepositoryModel) CreatorAlias() string {
	return ShortUserName(j.UserName)
}

// ShortUserName returns the part of name before '@'
func ShortUserName(name string) string {
	if i := strings.IndexByte(name, '@'); i >= 0 {
		return name[:i]
	}
	return name
}

// DeviceJobStatistics summarizes the per device outcome of a job
type DeviceJobStatistics struct {
	DeviceCount    int `json:"deviceCount"`
	FailedCount    int `json:"failedCount"`
	SucceededCount int `json:"succeededCount"`
	RunningCount   int `json:"runningCount"`
	PendingCount   int `json:"pendingCount"`
}

// JobResponse is a job as reported by the job service
type JobResponse struct {
	JobID               string               `json:"jobId"`
	QueryCondition      string               `json:"queryCondition,omitempty"`
	CreatedTime         *time.Time           `json:"createdTime,omitempty"`
	StartTime           *time.Time           `json:"startTime,omitempty"`
	EndTime             *time.Time           `json:"endTime,omitempty"`
	Type                string               `json:"type,omitempty"`
	Status              JobStatus            `json:"status"`
	FailureReason       string               `json:"failureReason,omitempty"`
	StatusMessage       string               `json:"statusMessage,omitempty"`
	DeviceJobStatistics *DeviceJobStatistics `json:"deviceJobStatistics,omitempty"`
}

// DeviceJob is the outcome of a job on a single device
type DeviceJob struct {
	JobID                  string     `json:"jobId"`
	DeviceID               string     `json:"deviceId"`
	Status                 string     `json:"status"`
	CreatedDateTimeUtc     *time.Time `json:"createdDateTimeUtc,omitempty"`
	LastUpdatedDateTimeUtc *time.Time `json:"lastUpdatedDateTimeUtc,omitempty"`
	StartTimeUtc           *time.Time `json:"startTimeUtc,omitempty"`
	EndTimeUtc             *time.Time `json:"endTimeUtc,omitempty"`
}

// DeviceJobModel is a job response decorated with the registry metadata
type DeviceJobModel struct {
	JobResponse
	JobName      string `json:"jobName,omitempty"`
	FilterID     string `json:"filterId,omitempty"`
	FilterName   string `json:"filterName,omitempty"`
	MethodName   string `json:"methodName,omitempty"`
	CreatorAlias string `json:"creatorAlias,omitempty"`
}
